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

// Package ledgerimpl is a minimal reference Ledger capability
// implementation: a balance-sheet UTxO model good enough to exercise the
// full head/headlogic protocol in tests and the demo CLI, not a production
// settlement ledger.
package ledgerimpl

import (
	"fmt"
	"sort"

	"golang.org/x/crypto/sha3"

	"github.com/sk-saru/hydra-poc/head"
)

// Account is the output side of a transaction: a credit to one address.
type Account string

// UTxO is a balance sheet keyed by account. It is copy-on-write: every
// method that changes it returns a new UTxO, never mutates the receiver.
type UTxO map[Account]uint64

// Hash returns a deterministic digest of the balance sheet, built over
// accounts in sorted order so two equal UTxOs always hash equal.
func (u UTxO) Hash() (hash [32]byte) {
	accounts := make([]string, 0, len(u))
	for a := range u {
		accounts = append(accounts, string(a))
	}
	sort.Strings(accounts)

	hasher := sha3.NewLegacyKeccak256()
	for _, a := range accounts {
		hasher.Write([]byte(a))
		var amount [8]byte
		putUint64(amount[:], u[Account(a)])
		hasher.Write(amount[:])
	}
	hasher.Sum(hash[:0])
	return hash
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[7-i] = byte(v)
		v >>= 8
	}
}

// clone returns a shallow copy of u.
func (u UTxO) clone() UTxO {
	next := make(UTxO, len(u))
	for a, v := range u {
		next[a] = v
	}
	return next
}

// Tx moves Amount from From to To. Negative balances are never allowed.
type Tx struct {
	TxID   [32]byte
	From   Account
	To     Account
	Amount uint64
}

func (tx Tx) ID() [32]byte { return tx.TxID }

// Ledger implements head.Ledger over the UTxO balance sheet.
type Ledger struct{}

// New returns the balance-sheet Ledger.
func New() *Ledger {
	return &Ledger{}
}

func (*Ledger) CanApply(utxo head.UTxO, tx head.Tx) error {
	u, t, err := asUTxOAndTx(utxo, tx)
	if err != nil {
		return err
	}
	if u[t.From] < t.Amount {
		return fmt.Errorf("ledgerimpl: insufficient balance for %s: have %d, need %d", t.From, u[t.From], t.Amount)
	}
	return nil
}

func (l *Ledger) ApplyTransactions(utxo head.UTxO, txs []head.Tx) (head.UTxO, error) {
	u, ok := utxo.(UTxO)
	if !ok {
		return nil, fmt.Errorf("ledgerimpl: not a UTxO: %T", utxo)
	}
	next := u.clone()
	for _, htx := range txs {
		t, ok := htx.(Tx)
		if !ok {
			return nil, fmt.Errorf("ledgerimpl: not a Tx: %T", htx)
		}
		if next[t.From] < t.Amount {
			return nil, fmt.Errorf("ledgerimpl: insufficient balance for %s: have %d, need %d", t.From, next[t.From], t.Amount)
		}
		next[t.From] -= t.Amount
		next[t.To] += t.Amount
	}
	return next, nil
}

func (*Ledger) Union(utxos ...head.UTxO) head.UTxO {
	merged := make(UTxO)
	for _, hu := range utxos {
		u, ok := hu.(UTxO)
		if !ok {
			continue
		}
		for a, v := range u {
			merged[a] += v
		}
	}
	return merged
}

func asUTxOAndTx(utxo head.UTxO, tx head.Tx) (UTxO, Tx, error) {
	u, ok := utxo.(UTxO)
	if !ok {
		return nil, Tx{}, fmt.Errorf("ledgerimpl: not a UTxO: %T", utxo)
	}
	t, ok := tx.(Tx)
	if !ok {
		return nil, Tx{}, fmt.Errorf("ledgerimpl: not a Tx: %T", tx)
	}
	return u, t, nil
}
