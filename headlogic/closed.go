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

// closedTransition dispatches Closed-phase client inputs and observations.
func closedTransition(env Environment, s *head.ClosedState, ev head.Event) head.Outcome {
	switch e := ev.(type) {
	case head.ClientEvent:
		return closedClientInput(s, e.Input)

	case head.OnChainEvent:
		switch chain := e.Chain.(type) {
		case head.Observation:
			return closedObservation(s, chain)
		case head.Tick:
			return closedTick(s, chain)
		default:
			return invalidEvent(s, ev)
		}

	default:
		return invalidEvent(s, ev)
	}
}

func closedClientInput(s *head.ClosedState, input head.ClientInput) head.Outcome {
	switch input.(type) {
	case head.Contest:
		return onlyEffects(onChainEffect(s.ChainState, head.ContestTx{ConfirmedSnapshot: s.ConfirmedSnapshot}))

	case head.Fanout:
		return onlyEffects(onChainEffect(s.ChainState, head.FanoutTx{
			UTxO:     s.ConfirmedSnapshot.Snapshot.UTxO,
			Deadline: s.ContestationDeadline,
		}))

	case head.GetUTxO:
		return onlyEffects(clientEffect(head.GetUTxOResponse{UTxO: s.ConfirmedSnapshot.Snapshot.UTxO}))

	default:
		return commandFailed(input)
	}
}

func closedObservation(s *head.ClosedState, obs head.Observation) head.Outcome {
	switch tx := obs.Tx.(type) {
	case head.OnContestTx:
		return onContestTx(s, obs.NewChainState, tx)
	case head.OnFanoutTx:
		return onFanoutTx(s, obs.NewChainState)
	default:
		return invalidEvent(s, head.OnChainEvent{Chain: obs})
	}
}

// onContestTx records that a (necessarily higher-numbered, per the
// contest check in openTransition's onCloseTx) snapshot was submitted
// on-chain during the contestation window.
func onContestTx(s *head.ClosedState, newChainState head.ChainState, tx head.OnContestTx) head.Outcome {
	next := *s
	next.Previous = s
	next.ChainState = newChainState
	return newState(&next, clientEffect(head.HeadIsContested{SnapshotNumber: tx.SnapshotNumber}))
}

func onFanoutTx(s *head.ClosedState, newChainState head.ChainState) head.Outcome {
	u := s.ConfirmedSnapshot.Snapshot.UTxO
	next := &head.IdleState{ChainState: newChainState}
	return newState(next, clientEffect(head.HeadIsFinalized{UTxO: u}))
}

// closedTick checks the contestation deadline once per observed tick and
// fires ReadyToFanout exactly once.
func closedTick(s *head.ClosedState, tick head.Tick) head.Outcome {
	if s.ReadyToFanoutSent || tick.Time.Before(s.ContestationDeadline) {
		return noEffects()
	}

	next := *s
	next.ReadyToFanoutSent = true
	return newState(&next, clientEffect(head.ReadyToFanout{}))
}
