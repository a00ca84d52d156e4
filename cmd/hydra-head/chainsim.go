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

package main

import (
	"sync"
	"time"

	"github.com/sk-saru/hydra-poc/head"
	"github.com/sk-saru/hydra-poc/node"
)

// chainState is the demo's stand-in for a real chain client's opaque
// state token: nothing but an increasing slot counter.
type chainState struct {
	slot uint64
}

func (c chainState) Slot() uint64 { return c.slot }

// chainSimulator plays the part of the on-chain collaborator for the demo
// CLI: every PostChainTx is "confirmed" after a short fixed delay and fed
// back as the matching ObservedTx, advancing the simulated slot by one.
// A real deployment replaces this with a client for an actual settlement
// chain; nothing in node, headlogic, or head needs to change to swap it.
type chainSimulator struct {
	contestationPeriod time.Duration
	confirmDelay       time.Duration

	mu      sync.Mutex
	slot    uint64
	runtime *node.HeadRuntime
}

func (s *chainSimulator) Submit(_ head.ChainState, tx head.PostChainTx) error {
	delay := s.confirmDelay
	if delay <= 0 {
		delay = 50 * time.Millisecond
	}

	go func() {
		time.Sleep(delay)

		s.mu.Lock()
		s.slot++
		newChain := chainState{slot: s.slot}
		s.mu.Unlock()

		if obs := s.observe(tx); obs != nil {
			s.runtime.Enqueue(head.OnChainEvent{Chain: head.Observation{Tx: obs, NewChainState: newChain}})
		}
	}()

	return nil
}

func (s *chainSimulator) observe(tx head.PostChainTx) head.ObservedTx {
	switch t := tx.(type) {
	case head.InitTx:
		return head.OnInitTx{ContestationPeriod: t.Parameters.ContestationPeriod, Parties: t.Parameters.Parties}
	case head.CommitTx:
		return head.OnCommitTx{Party: t.Party, UTxO: t.UTxO}
	case head.AbortTx:
		return head.OnAbortTx{}
	case head.CollectComTx:
		return head.OnCollectComTx{}
	case head.CloseTx:
		return head.OnCloseTx{
			SnapshotNumber:       t.ConfirmedSnapshot.Snapshot.Number,
			ContestationDeadline: time.Now().Add(s.contestationPeriod),
		}
	case head.ContestTx:
		return head.OnContestTx{SnapshotNumber: t.ConfirmedSnapshot.Snapshot.Number}
	case head.FanoutTx:
		return head.OnFanoutTx{}
	default:
		return nil
	}
}

// noopTransport stands in for a real peer-to-peer transport: a single-party
// demo has nobody to broadcast to.
type noopTransport struct{}

func (noopTransport) Broadcast(head.NetworkMessage) error { return nil }
