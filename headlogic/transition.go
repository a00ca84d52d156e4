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

// Transition is the core's single entry point: given the current state
// and an incoming event, it yields a new state together with the effects
// to dispatch. It is deterministic: equal inputs yield equal
// outcomes.
func Transition(env Environment, ledger head.Ledger, state head.HeadState, ev head.Event) head.Outcome {
	// Rollback, peer connectivity and chain-submission failure are all
	// phase-independent: every phase carries the same chain-state/
	// predecessor shape, peer connectivity never changes protocol state,
	// and a failed submission is reported to the client regardless of
	// which phase produced the PostChainTx. Handling them once here keeps
	// the per-phase dispatchers exhaustive over only the phase-specific
	// event shapes.
	if onChain, ok := ev.(head.OnChainEvent); ok {
		if rb, ok := onChain.Chain.(head.Rollback); ok {
			return handleRollback(state, rb)
		}
	}
	if net, ok := ev.(head.NetworkEvent); ok {
		switch msg := net.Message.(type) {
		case head.Connected:
			return onlyEffects(clientEffect(head.PeerConnected{Party: msg.NodeID}))
		case head.Disconnected:
			return onlyEffects(clientEffect(head.PeerDisconnected{Party: msg.NodeID}))
		}
	}
	if txErr, ok := ev.(head.PostTxError); ok {
		return onlyEffects(clientEffect(head.PostTxOnChainFailed{PostChainTx: txErr.PostChainTx, Err: txErr.Err}))
	}

	switch s := state.(type) {
	case *head.IdleState:
		return idleTransition(env, s, ev)
	case *head.InitialState:
		return initialTransition(env, ledger, s, ev)
	case *head.OpenState:
		return openTransition(env, ledger, s, ev)
	case *head.ClosedState:
		return closedTransition(env, s, ev)
	default:
		return invalidState(state)
	}
}

func invalidState(s head.HeadState) head.Outcome {
	return head.Error{Err: &head.LogicError{Kind: head.InvalidState, State: s}}
}

func invalidEvent(s head.HeadState, ev head.Event) head.Outcome {
	return head.Error{Err: &head.LogicError{Kind: head.InvalidEvent, Event: ev, State: s}}
}

func noEffects() head.Outcome {
	return head.OnlyEffects{}
}

func onlyEffects(effects ...head.Effect) head.Outcome {
	return head.OnlyEffects{Effects: effects}
}

func newState(s head.HeadState, effects ...head.Effect) head.Outcome {
	return head.NewState{State: s, Effects: effects}
}

func wait(reason head.WaitReason) head.Outcome {
	return head.Wait{Reason: reason}
}

func clientEffect(out head.ServerOutput) head.Effect {
	return head.ClientEffect{Output: out}
}

func networkEffect(msg head.NetworkMessage) head.Effect {
	return head.NetworkEffect{Message: msg}
}

func onChainEffect(chain head.ChainState, tx head.PostChainTx) head.Effect {
	return head.OnChainEffect{ChainState: chain, PostChainTx: tx}
}

func commandFailed(input head.ClientInput) head.Outcome {
	return onlyEffects(clientEffect(head.CommandFailed{Input: input}))
}
