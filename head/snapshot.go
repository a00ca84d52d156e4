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

package head

// Snapshot is a numbered, signed agreement on a ledger state plus the
// transactions applied to reach it.
type Snapshot struct {
	Number    uint64
	UTxO      UTxO
	Confirmed []Tx
}

// ConfirmedSnapshot is either the initial snapshot (number 0, no
// signatures required) or a confirmed snapshot bundling a Snapshot with
// an aggregated multi-signature over it.
type ConfirmedSnapshot struct {
	Snapshot Snapshot
	// Multisig is nil for the initial snapshot.
	Multisig Signature
}

// InitialConfirmedSnapshot builds the snapshot a freshly opened head
// starts from: number 0, carrying the union of committed utxos, no
// signature required.
func InitialConfirmedSnapshot(u0 UTxO) ConfirmedSnapshot {
	return ConfirmedSnapshot{Snapshot: Snapshot{Number: 0, UTxO: u0}}
}

// IsInitial reports whether this is the unsigned genesis snapshot.
func (cs ConfirmedSnapshot) IsInitial() bool {
	return cs.Multisig == nil
}

// SeenSnapshotStatus is the three-way state of CoordinatedHeadState's
// seenSnapshot field.
type SeenSnapshotStatus int

const (
	SeenNone SeenSnapshotStatus = iota
	SeenRequested
	SeenCollecting
)

func (s SeenSnapshotStatus) String() string {
	switch s {
	case SeenNone:
		return "None"
	case SeenRequested:
		return "Requested"
	case SeenCollecting:
		return "Collecting"
	default:
		return "Unknown"
	}
}

// SeenSnapshot tracks the in-flight next snapshot. Snapshot and
// Signatures are only meaningful when Status is SeenCollecting.
type SeenSnapshot struct {
	Status     SeenSnapshotStatus
	Snapshot   Snapshot
	Signatures map[Party]Signature
}

// CoordinatedHeadState holds the off-chain ledger view maintained while
// the head is Open.
type CoordinatedHeadState struct {
	SeenUTxO          UTxO
	SeenTxs           []Tx
	ConfirmedSnapshot ConfirmedSnapshot
	SeenSnapshot      SeenSnapshot
}
