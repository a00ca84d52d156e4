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

// Package headlogic implements the Head protocol's transition function:
// a pure dispatcher over (phase, event) pairs, the coordinated snapshot
// sub-protocol, the post-transition snapshot emitter, and the rollback
// resolver. Nothing here performs I/O, reads a clock, dials a peer, or
// touches a signing key directly — those are all capabilities threaded
// through Environment and Ledger on every call.
package headlogic

import (
	"time"

	"github.com/sk-saru/hydra-poc/head"
)

// Environment is immutable for the lifetime of a node and threaded
// through every Transition call — there is no package-level mutable
// state.
type Environment struct {
	Party               head.Party
	Signer              head.Signer
	Verifier            head.Verifier
	OtherParties        []head.Party
	ContestationPeriod  time.Duration
}

// Parties returns the local party followed by OtherParties, in the
// fixed order an InitTx's HeadParameters.Parties is built from.
func (e Environment) Parties() []head.Party {
	parties := make([]head.Party, 0, len(e.OtherParties)+1)
	parties = append(parties, e.Party)
	parties = append(parties, e.OtherParties...)
	return parties
}
