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

// Emit is the post-transition snapshot emitter: a second, pure pass
// the shell runs after every Transition call, given the state and effects
// Transition just produced. It is the only place a ReqSn is ever
// generated — Transition itself never proposes a snapshot, it only reacts
// to one.
//
// If the local party leads the next snapshot round and has transactions
// worth proposing, Emit appends a ReqSn broadcast and marks the round as
// requested so a second Transition call in the same batch can't emit it
// twice.
func Emit(env Environment, state head.HeadState, effects []head.Effect) (head.HeadState, []head.Effect) {
	open, ok := state.(*head.OpenState)
	if !ok {
		return state, effects
	}

	coordinated := open.Coordinated
	if coordinated.SeenSnapshot.Status != head.SeenNone {
		return state, effects
	}
	if len(coordinated.SeenTxs) == 0 {
		return state, effects
	}

	nextNumber := coordinated.ConfirmedSnapshot.Snapshot.Number + 1
	if !open.Parameters.IsLeader(env.Party, nextNumber) {
		return state, effects
	}

	txs := append([]head.Tx{}, coordinated.SeenTxs...)

	next := *open
	next.Coordinated.SeenSnapshot = head.SeenSnapshot{Status: head.SeenRequested}

	req := head.NetworkEffect{Message: head.ReqSn{From: env.Party, Number: nextNumber, Txs: txs}}
	return &next, append(effects, req)
}
