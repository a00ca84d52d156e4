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

import "time"

// DefaultTTL is the re-enqueue counter a NetworkEvent starts with.
const DefaultTTL = 5

// Event is the top-level input vocabulary the transition function
// dispatches on.
type Event interface {
	event()
}

// ClientEvent carries a user intent.
type ClientEvent struct {
	Input ClientInput
}

func (ClientEvent) event() {}

// NetworkEvent carries peer gossip. TTL is decremented by the shell each
// time the event is re-enqueued after a Wait outcome; once it reaches 0
// the core treats the carried transaction as expired rather than waiting
// forever.
type NetworkEvent struct {
	TTL     int
	Message NetworkMessage
}

func (NetworkEvent) event() {}

// ChainEvent is the sub-vocabulary of on-chain observations.
type ChainEvent interface {
	chainEvent()
}

// Observation reports a transaction seen on chain, alongside the chain
// state token it was observed with.
type Observation struct {
	Tx            ObservedTx
	NewChainState ChainState
}

func (Observation) chainEvent() {}

// Rollback reports a chain reorganization invalidating everything
// observed after Slot.
type Rollback struct {
	Slot uint64
}

func (Rollback) chainEvent() {}

// Tick reports the current wall-clock time, driving contestation-deadline
// and fanout-readiness checks.
type Tick struct {
	Time time.Time
}

func (Tick) chainEvent() {}

// OnChainEvent wraps one of Observation/Rollback/Tick.
type OnChainEvent struct {
	Chain ChainEvent
}

func (OnChainEvent) event() {}

// PostTxError re-ingests a chain-submission failure for client
// notification.
type PostTxError struct {
	PostChainTx PostChainTx
	Err         error
}

func (PostTxError) event() {}
