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

// openTransition dispatches Open-phase client inputs and observations, and
// routes the coordinated snapshot messages to their own handlers.
func openTransition(env Environment, ledger head.Ledger, s *head.OpenState, ev head.Event) head.Outcome {
	switch e := ev.(type) {
	case head.ClientEvent:
		return openClientInput(env, ledger, s, e.Input)

	case head.NetworkEvent:
		return openNetworkMessage(env, ledger, s, e)

	case head.OnChainEvent:
		switch chain := e.Chain.(type) {
		case head.Observation:
			if onClose, ok := chain.Tx.(head.OnCloseTx); ok {
				return onCloseTx(s, chain.NewChainState, onClose)
			}
			return invalidEvent(s, ev)
		case head.Tick:
			return noEffects()
		default:
			return invalidEvent(s, ev)
		}

	default:
		return invalidEvent(s, ev)
	}
}

func openClientInput(env Environment, ledger head.Ledger, s *head.OpenState, input head.ClientInput) head.Outcome {
	switch in := input.(type) {
	case head.NewTx:
		return newTx(env, ledger, s, in.Tx)

	case head.Close:
		return onlyEffects(onChainEffect(s.ChainState, head.CloseTx{ConfirmedSnapshot: s.Coordinated.ConfirmedSnapshot}))

	case head.GetUTxO:
		return onlyEffects(clientEffect(head.GetUTxOResponse{UTxO: s.Coordinated.SeenUTxO}))

	default:
		return commandFailed(input)
	}
}

func newTx(env Environment, ledger head.Ledger, s *head.OpenState, tx head.Tx) head.Outcome {
	if err := ledger.CanApply(s.Coordinated.SeenUTxO, tx); err != nil {
		return onlyEffects(clientEffect(head.TxInvalid{UTxO: s.Coordinated.SeenUTxO, Tx: tx, Err: err}))
	}

	newUTxO, err := ledger.ApplyTransactions(s.Coordinated.SeenUTxO, []head.Tx{tx})
	if err != nil {
		return onlyEffects(clientEffect(head.TxInvalid{UTxO: s.Coordinated.SeenUTxO, Tx: tx, Err: err}))
	}

	next := *s
	next.Coordinated.SeenUTxO = newUTxO
	next.Coordinated.SeenTxs = append(append([]head.Tx{}, s.Coordinated.SeenTxs...), tx)

	return head.NewState{
		State: &next,
		Effects: []head.Effect{
			clientEffect(head.TxValid{Tx: tx}),
			networkEffect(head.ReqTx{From: env.Party, Tx: tx}),
		},
	}
}

func openNetworkMessage(env Environment, ledger head.Ledger, s *head.OpenState, e head.NetworkEvent) head.Outcome {
	switch msg := e.Message.(type) {
	case head.ReqTx:
		return reqTx(env, ledger, s, e.TTL, msg)
	case head.ReqSn:
		return reqSn(env, ledger, s, msg)
	case head.AckSn:
		return ackSn(env, s, msg)
	default:
		return invalidEvent(s, e)
	}
}

func reqTx(env Environment, ledger head.Ledger, s *head.OpenState, ttl int, msg head.ReqTx) head.Outcome {
	if msg.From == env.Party {
		// The shell's NetworkEffect loopback delivers our own broadcast
		// back to us; we already applied it in newTx.
		return noEffects()
	}

	if err := ledger.CanApply(s.Coordinated.SeenUTxO, msg.Tx); err != nil {
		if ttl <= 0 {
			return onlyEffects(clientEffect(head.TxExpired{Tx: msg.Tx}))
		}
		return wait(head.WaitOnNotApplicableTx{Err: err})
	}

	newUTxO, err := ledger.ApplyTransactions(s.Coordinated.SeenUTxO, []head.Tx{msg.Tx})
	if err != nil {
		if ttl <= 0 {
			return onlyEffects(clientEffect(head.TxExpired{Tx: msg.Tx}))
		}
		return wait(head.WaitOnNotApplicableTx{Err: err})
	}

	next := *s
	next.Coordinated.SeenUTxO = newUTxO
	next.Coordinated.SeenTxs = append(append([]head.Tx{}, s.Coordinated.SeenTxs...), msg.Tx)

	return newState(&next, clientEffect(head.TxSeen{Tx: msg.Tx}))
}

func onCloseTx(s *head.OpenState, newChainState head.ChainState, tx head.OnCloseTx) head.Outcome {
	next := &head.ClosedState{
		Parameters:           s.Parameters,
		ConfirmedSnapshot:    s.Coordinated.ConfirmedSnapshot,
		ContestationDeadline: tx.ContestationDeadline,
		Previous:             s,
		ChainState:           newChainState,
	}

	effects := []head.Effect{clientEffect(head.HeadIsClosed{
		SnapshotNumber:       tx.SnapshotNumber,
		ContestationDeadline: tx.ContestationDeadline,
	})}

	// A node closed with a snapshot older than the one it had itself
	// already confirmed off-chain: contest immediately rather than wait
	// for a client to notice and issue Contest by hand. The contest is
	// posted against the Open state's chain state, the one in effect
	// before the close transaction was observed.
	if s.Coordinated.ConfirmedSnapshot.Snapshot.Number > tx.SnapshotNumber {
		effects = append(effects, onChainEffect(s.ChainState, head.ContestTx{
			ConfirmedSnapshot: s.Coordinated.ConfirmedSnapshot,
		}))
	}

	return head.NewState{State: next, Effects: effects}
}
