// Copyright 2019 The ebakus/go-ebakus Authors
// This file is part of the ebakus/go-ebakus library.
//
// The ebakus/go-ebakus library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ebakus/go-ebakus library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ebakus/go-ebakus library. If not, see <http://www.gnu.org/licenses/>.

// Package headnet holds the wire-facing helpers shared by the shell and the
// signing code: deterministic encodings of the types exchanged over the
// network or signed over, kept out of the pure head package since they
// pull in an RLP/hashing dependency. headlogic imports this package only
// for SigningPayload.
package headnet

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"golang.org/x/crypto/sha3"

	"github.com/sk-saru/hydra-poc/head"
)

// SigningPayload returns the bytes a party signs (and a peer verifies) to
// ack snapshot sn. Every honest node recomputes the same bytes from the
// same inputs, so no copy of the payload itself travels the wire.
func SigningPayload(sn head.Snapshot) []byte {
	h := hashSnapshot(sn)
	return h[:]
}

func hashSnapshot(sn head.Snapshot) (hash [32]byte) {
	hasher := sha3.NewLegacyKeccak256()
	encodeSnapshot(hasher, sn)
	hasher.Sum(hash[:0])
	return hash
}

func encodeSnapshot(w io.Writer, sn head.Snapshot) {
	utxoHash := sn.UTxO.Hash()

	ids := make([][32]byte, len(sn.Confirmed))
	for i, tx := range sn.Confirmed {
		ids[i] = tx.ID()
	}

	err := rlp.Encode(w, []interface{}{
		sn.Number,
		utxoHash,
		ids,
	})
	if err != nil {
		panic("headnet: can't encode snapshot: " + err.Error())
	}
}

// EncodeSnapshot returns the canonical RLP encoding of sn: the same bytes
// SigningPayload hashes, for callers that need a stable byte
// representation of a snapshot.
func EncodeSnapshot(sn head.Snapshot) []byte {
	var buf bytes.Buffer
	encodeSnapshot(&buf, sn)
	return buf.Bytes()
}

// EncodeUint64 is a small helper for components that need a big-endian
// encoding of a snapshot number, e.g. as a map/DB key.
func EncodeUint64(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
