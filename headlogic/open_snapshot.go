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

package headlogic

import (
	"github.com/sk-saru/hydra-poc/head"
	"github.com/sk-saru/hydra-poc/headnet"
)

// reqSn implements the leader-initiated side of the coordinated snapshot
// protocol: the named leader proposes a batch of its seen transactions as
// the next snapshot, and every party (leader included, via the loopback)
// validates and acks it.
func reqSn(env Environment, ledger head.Ledger, s *head.OpenState, msg head.ReqSn) head.Outcome {
	if !s.Parameters.IsLeader(msg.From, msg.Number) {
		return invalidEvent(s, head.NetworkEvent{Message: msg})
	}

	confirmedNumber := s.Coordinated.ConfirmedSnapshot.Snapshot.Number
	switch {
	case msg.Number <= confirmedNumber:
		return invalidEvent(s, head.NetworkEvent{Message: msg})

	case msg.Number > confirmedNumber+1:
		// Not our turn yet — wait until the confirmed snapshot catches up.
		return wait(head.WaitOnSnapshotNumber{Number: msg.Number})

	case s.Coordinated.SeenSnapshot.Status == head.SeenCollecting:
		// A second proposal for the round already in flight; an honest
		// leader never sends two ReqSn for the same number.
		return invalidEvent(s, head.NetworkEvent{Message: msg})
	}

	// Status is SeenNone (a follower seeing this round for the first time)
	// or SeenRequested (the leader's own ReqSn looping back to itself via
	// the broadcast); both fall through to accept-and-sign.

	newUTxO, err := ledger.ApplyTransactions(s.Coordinated.ConfirmedSnapshot.Snapshot.UTxO, msg.Txs)
	if err != nil {
		return wait(head.WaitOnNotApplicableTx{Err: err})
	}

	candidate := head.Snapshot{Number: msg.Number, UTxO: newUTxO, Confirmed: msg.Txs}
	ownSig, err := env.Signer.Sign(headnet.SigningPayload(candidate))
	if err != nil {
		return head.Error{Err: &head.LogicError{Kind: head.LedgerErrorKind, Cause: err}}
	}

	next := *s
	next.Coordinated.SeenSnapshot = head.SeenSnapshot{
		Status:     head.SeenCollecting,
		Snapshot:   candidate,
		Signatures: map[head.Party]head.Signature{},
	}

	return newState(&next, networkEffect(head.AckSn{From: env.Party, Signature: ownSig, Number: msg.Number}))
}

// ackSn implements the follower side of the coordinated snapshot protocol:
// collect signatures for the snapshot currently being proposed, and
// confirm it once every party has acked.
func ackSn(env Environment, s *head.OpenState, msg head.AckSn) head.Outcome {
	confirmedNumber := s.Coordinated.ConfirmedSnapshot.Snapshot.Number
	if msg.Number <= confirmedNumber {
		return noEffects()
	}

	seen := s.Coordinated.SeenSnapshot
	if seen.Status != head.SeenCollecting || seen.Snapshot.Number != msg.Number {
		return wait(head.WaitOnSeenSnapshot{})
	}

	if !env.Verifier.Verify(msg.From, msg.Signature, headnet.SigningPayload(seen.Snapshot)) {
		return invalidEvent(s, head.NetworkEvent{Message: msg})
	}

	signatures := make(map[head.Party]head.Signature, len(seen.Signatures)+1)
	for p, sig := range seen.Signatures {
		signatures[p] = sig
	}
	signatures[msg.From] = msg.Signature

	next := *s

	if len(signatures) < len(s.Parameters.Parties) {
		next.Coordinated.SeenSnapshot = head.SeenSnapshot{
			Status:     head.SeenCollecting,
			Snapshot:   seen.Snapshot,
			Signatures: signatures,
		}
		return newState(&next)
	}

	multisig := aggregateInOrder(s.Parameters.Parties, signatures)
	confirmed := head.ConfirmedSnapshot{Snapshot: seen.Snapshot, Multisig: multisig}

	next.Coordinated.ConfirmedSnapshot = confirmed
	next.Coordinated.SeenSnapshot = head.SeenSnapshot{Status: head.SeenNone}
	next.Coordinated.SeenTxs = subtractTxs(s.Coordinated.SeenTxs, seen.Snapshot.Confirmed)

	return newState(&next, clientEffect(head.SnapshotConfirmed{Snapshot: confirmed.Snapshot, Multisig: multisig}))
}

// subtractTxs returns the txs in seenTxs whose ID does not appear in
// confirmed, preserving seenTxs' order. confirmedSnapshot.confirmed must
// never reappear in seenTxs once a snapshot including them is confirmed.
func subtractTxs(seenTxs, confirmed []head.Tx) []head.Tx {
	if len(confirmed) == 0 {
		return seenTxs
	}

	done := make(map[[32]byte]struct{}, len(confirmed))
	for _, tx := range confirmed {
		done[tx.ID()] = struct{}{}
	}

	remaining := make([]head.Tx, 0, len(seenTxs))
	for _, tx := range seenTxs {
		if _, ok := done[tx.ID()]; !ok {
			remaining = append(remaining, tx)
		}
	}
	return remaining
}

// aggregateSignature concatenates per-party signatures in HeadParameters'
// fixed party order, so every honest node that collects the same set of
// signatures produces byte-identical output.
type aggregateSignature struct {
	order []head.Party
	sigs  map[head.Party]head.Signature
}

func (a aggregateSignature) Bytes() []byte {
	var buf []byte
	for _, p := range a.order {
		if sig, ok := a.sigs[p]; ok {
			buf = append(buf, sig.Bytes()...)
		}
	}
	return buf
}

func aggregateInOrder(parties []head.Party, sigs map[head.Party]head.Signature) head.Signature {
	return aggregateSignature{order: parties, sigs: sigs}
}
