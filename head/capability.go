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

// UTxO is the off-chain ledger state type. Implementations are immutable
// value types: ApplyTransactions on a Ledger returns a new UTxO rather
// than mutating an existing one in place.
type UTxO interface {
	// Hash returns a deterministic digest of the set's contents, used to
	// build a snapshot's signing payload (headnet.SigningPayload).
	Hash() [32]byte
}

// Tx is an opaque ledger transaction. The core never inspects a Tx beyond
// ID, which must be stable and content-addressed.
type Tx interface {
	ID() [32]byte
}

// ChainState is an opaque token supplied by the chain collaborator. It
// must expose at least the chain slot it was observed at, which
// the rollback resolver compares against the rollback target.
type ChainState interface {
	Slot() uint64
}

// Ledger is the capability the transition function uses to validate and
// apply transactions against a UTxO set. It is a parameter of every
// call into headlogic, never a package global.
type Ledger interface {
	// CanApply reports whether tx may be applied to utxo, without
	// mutating anything.
	CanApply(utxo UTxO, tx Tx) error
	// ApplyTransactions applies txs, in order, to utxo, returning the
	// resulting UTxO or the first error encountered.
	ApplyTransactions(utxo UTxO, txs []Tx) (UTxO, error)
	// Union merges independently-committed UTxO sets into one, used to
	// fold Initial's per-party commits into u0 and to fold a
	// still-pending commit map for Abort.
	Union(utxos ...UTxO) UTxO
}

// Signature is an opaque signature over a byte payload.
type Signature interface {
	Bytes() []byte
}

// Signer signs payloads on behalf of the local party. The core never
// holds key material directly: Environment carries a Signer, not a raw
// signing key, so no transition handler ever touches a private key.
type Signer interface {
	Sign(payload []byte) (Signature, error)
}

// Verifier verifies that a signature over a payload was produced by the
// given party.
type Verifier interface {
	Verify(party Party, sig Signature, payload []byte) bool
}
