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

// Package head holds the pure vocabulary of the Head protocol: parties and
// parameters, the state model for the four protocol phases, snapshots, and
// the Event/Effect/Outcome types the transition function in headlogic
// consumes and produces. Nothing in this package performs I/O, reads a
// clock, or touches cryptographic material.
package head

import (
	"encoding/hex"
	"time"
)

// Party identifies a protocol participant by its verification key.
type Party struct {
	VerificationKey [32]byte
}

func (p Party) String() string {
	return hex.EncodeToString(p.VerificationKey[:])
}

// HeadParameters is fixed for the lifetime of a head once observed on
// chain. Parties order is significant: it defines the leader schedule
// and the signature-aggregation order (aggregateInOrder).
type HeadParameters struct {
	ContestationPeriod time.Duration
	Parties            []Party
}

// IndexOf returns the position of p in Parties, used for the leader
// schedule and for checking membership.
func (hp HeadParameters) IndexOf(p Party) (int, bool) {
	for i, party := range hp.Parties {
		if party == p {
			return i, true
		}
	}
	return 0, false
}

// Contains reports whether p is one of the head's parties.
func (hp HeadParameters) Contains(p Party) bool {
	_, ok := hp.IndexOf(p)
	return ok
}

// IsLeader reports whether party is the leader for snapshot number sn,
// per the round-robin schedule: snapshot n (>=1) is led by the
// party at index (n-1) mod len(parties).
func (hp HeadParameters) IsLeader(party Party, sn uint64) bool {
	if len(hp.Parties) == 0 || sn == 0 {
		return false
	}
	idx, ok := hp.IndexOf(party)
	if !ok {
		return false
	}
	return uint64(idx) == (sn-1)%uint64(len(hp.Parties))
}
