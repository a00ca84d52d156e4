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

import "github.com/sk-saru/hydra-poc/head"

// idleTransition dispatches Idle-phase client inputs and observations.
func idleTransition(env Environment, s *head.IdleState, ev head.Event) head.Outcome {
	switch e := ev.(type) {
	case head.ClientEvent:
		return idleClientInput(env, s, e.Input)

	case head.OnChainEvent:
		obs, ok := e.Chain.(head.Observation)
		if !ok {
			// Tick is benign outside Closed.
			if _, ok := e.Chain.(head.Tick); ok {
				return noEffects()
			}
			return invalidEvent(s, ev)
		}
		onInit, ok := obs.Tx.(head.OnInitTx)
		if !ok {
			return invalidEvent(s, ev)
		}
		return onInitTx(s, obs.NewChainState, onInit)

	default:
		return invalidEvent(s, ev)
	}
}

func idleClientInput(env Environment, s *head.IdleState, input head.ClientInput) head.Outcome {
	switch input.(type) {
	case head.Init:
		parameters := head.HeadParameters{
			ContestationPeriod: env.ContestationPeriod,
			Parties:            env.Parties(),
		}
		return onlyEffects(onChainEffect(s.ChainState, head.InitTx{Parameters: parameters}))
	default:
		return commandFailed(input)
	}
}

// onInitTx implements the OnInitTx observation: transition to
// Initial with pendingCommits = set(parties), empty committed.
func onInitTx(s *head.IdleState, newChainState head.ChainState, onInit head.OnInitTx) head.Outcome {
	pending := make(map[head.Party]struct{}, len(onInit.Parties))
	for _, p := range onInit.Parties {
		pending[p] = struct{}{}
	}

	next := &head.InitialState{
		Parameters: head.HeadParameters{
			ContestationPeriod: onInit.ContestationPeriod,
			Parties:            onInit.Parties,
		},
		PendingCommits: pending,
		Committed:      make(map[head.Party]head.UTxO),
		Previous:       s,
		ChainState:     newChainState,
	}

	return newState(next, clientEffect(head.ReadyToCommit{Parties: onInit.Parties}))
}
