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

// handleRollback walks the predecessor chain, discarding
// states observed at a chain slot past the rollback target, until the
// carried chain state is at or before it. Idle is the fixed point: a deep
// enough rollback always terminates there.
func handleRollback(state head.HeadState, rb head.Rollback) head.Outcome {
	cur := state
	for {
		chain := head.StateChain(cur)
		if chain == nil || chain.Slot() <= rb.Slot {
			break
		}
		prev := head.Predecessor(cur)
		if prev == cur {
			break
		}
		cur = prev
	}

	if cur == state {
		return noEffects()
	}
	return newState(cur, clientEffect(head.RolledBack{}))
}
