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

// initialTransition dispatches Initial-phase client inputs and observations.
func initialTransition(env Environment, ledger head.Ledger, s *head.InitialState, ev head.Event) head.Outcome {
	switch e := ev.(type) {
	case head.ClientEvent:
		return initialClientInput(env, ledger, s, e.Input)

	case head.OnChainEvent:
		switch chain := e.Chain.(type) {
		case head.Observation:
			return initialObservation(env, ledger, s, chain)
		case head.Tick:
			return noEffects()
		default:
			return invalidEvent(s, ev)
		}

	default:
		return invalidEvent(s, ev)
	}
}

func initialClientInput(env Environment, ledger head.Ledger, s *head.InitialState, input head.ClientInput) head.Outcome {
	switch in := input.(type) {
	case head.Commit:
		if _, pending := s.PendingCommits[env.Party]; !pending {
			return commandFailed(input)
		}
		return onlyEffects(onChainEffect(s.ChainState, head.CommitTx{Party: env.Party, UTxO: in.UTxO}))

	case head.Abort:
		u0 := head.FoldCommitted(ledger, s.Parameters.Parties, s.Committed)
		return onlyEffects(onChainEffect(s.ChainState, head.AbortTx{UTxO: u0}))

	case head.GetUTxO:
		u0 := head.FoldCommitted(ledger, s.Parameters.Parties, s.Committed)
		return onlyEffects(clientEffect(head.GetUTxOResponse{UTxO: u0}))

	default:
		return commandFailed(input)
	}
}

func initialObservation(env Environment, ledger head.Ledger, s *head.InitialState, obs head.Observation) head.Outcome {
	switch tx := obs.Tx.(type) {
	case head.OnCommitTx:
		return onCommitTx(env, ledger, s, obs.NewChainState, tx)
	case head.OnAbortTx:
		return onAbortTx(ledger, s, obs.NewChainState)
	case head.OnCollectComTx:
		return onCollectComTx(ledger, s, obs.NewChainState)
	default:
		return invalidEvent(s, head.OnChainEvent{Chain: obs})
	}
}

// onCommitTx records a party's commit. The party whose commit empties
// pendingCommits is responsible for posting CollectComTx: every
// node observes commits in the same chain order, so exactly one of them
// computes env.Party == tx.Party at that moment.
func onCommitTx(env Environment, ledger head.Ledger, s *head.InitialState, newChainState head.ChainState, tx head.OnCommitTx) head.Outcome {
	committed := make(map[head.Party]head.UTxO, len(s.Committed)+1)
	for p, u := range s.Committed {
		committed[p] = u
	}
	committed[tx.Party] = tx.UTxO

	pending := make(map[head.Party]struct{}, len(s.PendingCommits))
	for p := range s.PendingCommits {
		pending[p] = struct{}{}
	}
	delete(pending, tx.Party)

	next := &head.InitialState{
		Parameters:     s.Parameters,
		PendingCommits: pending,
		Committed:      committed,
		Previous:       s,
		ChainState:     newChainState,
	}

	effects := []head.Effect{clientEffect(head.Committed{Party: tx.Party, UTxO: tx.UTxO})}
	if len(pending) == 0 && tx.Party == env.Party {
		u0 := head.FoldCommitted(ledger, s.Parameters.Parties, committed)
		effects = append(effects, onChainEffect(newChainState, head.CollectComTx{UTxO: u0}))
	}

	return head.NewState{State: next, Effects: effects}
}

func onAbortTx(ledger head.Ledger, s *head.InitialState, newChainState head.ChainState) head.Outcome {
	u0 := head.FoldCommitted(ledger, s.Parameters.Parties, s.Committed)
	next := &head.IdleState{ChainState: newChainState}
	return newState(next, clientEffect(head.HeadIsAborted{UTxO: u0}))
}

func onCollectComTx(ledger head.Ledger, s *head.InitialState, newChainState head.ChainState) head.Outcome {
	u0 := head.FoldCommitted(ledger, s.Parameters.Parties, s.Committed)
	next := &head.OpenState{
		Parameters: s.Parameters,
		Coordinated: head.CoordinatedHeadState{
			SeenUTxO:          u0,
			ConfirmedSnapshot: head.InitialConfirmedSnapshot(u0),
		},
		Previous:   s,
		ChainState: newChainState,
	}
	return newState(next, clientEffect(head.HeadIsOpen{UTxO: u0}))
}
