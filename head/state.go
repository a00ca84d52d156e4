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

// Phase is one of the four protocol phases.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInitial
	PhaseOpen
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseInitial:
		return "Initial"
	case PhaseOpen:
		return "Open"
	case PhaseClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// HeadState is implemented by IdleState, InitialState, OpenState and
// ClosedState. It is a sealed interface: headState is unexported so no
// type outside this package may implement it, keeping the dispatcher in
// headlogic exhaustive over exactly these four cases.
type HeadState interface {
	headState()
	Phase() Phase
}

// IdleState is the phase before a head has been initialized on chain.
type IdleState struct {
	ChainState ChainState
}

func (*IdleState) headState()   {}
func (*IdleState) Phase() Phase { return PhaseIdle }

// InitialState is the phase between observing OnInitTx and the last
// OnCommitTx / OnAbortTx.
type InitialState struct {
	Parameters     HeadParameters
	PendingCommits map[Party]struct{}
	Committed      map[Party]UTxO
	Previous       HeadState
	ChainState     ChainState
}

func (*InitialState) headState()   {}
func (*InitialState) Phase() Phase { return PhaseInitial }

// OpenState is the phase in which the head processes off-chain
// transactions and coordinates snapshots.
type OpenState struct {
	Parameters  HeadParameters
	Coordinated CoordinatedHeadState
	Previous    HeadState
	ChainState  ChainState
}

func (*OpenState) headState()   {}
func (*OpenState) Phase() Phase { return PhaseOpen }

// ClosedState is the phase between observing OnCloseTx and OnFanoutTx.
type ClosedState struct {
	Parameters           HeadParameters
	ConfirmedSnapshot    ConfirmedSnapshot
	ContestationDeadline time.Time
	ReadyToFanoutSent    bool
	Previous             HeadState
	ChainState           ChainState
}

func (*ClosedState) headState()   {}
func (*ClosedState) Phase() Phase { return PhaseClosed }

// Predecessor returns s's immediate pre-chain-event predecessor. Idle is
// its own predecessor, the fixed point every chain of back-links reaches
//.
func Predecessor(s HeadState) HeadState {
	switch st := s.(type) {
	case *IdleState:
		return st
	case *InitialState:
		return st.Previous
	case *OpenState:
		return st.Previous
	case *ClosedState:
		return st.Previous
	default:
		return s
	}
}

// StateChain returns the opaque chain-state token carried by s.
func StateChain(s HeadState) ChainState {
	switch st := s.(type) {
	case *IdleState:
		return st.ChainState
	case *InitialState:
		return st.ChainState
	case *OpenState:
		return st.ChainState
	case *ClosedState:
		return st.ChainState
	default:
		return nil
	}
}

// FoldCommitted unions a set of per-party committed utxos into a single
// UTxO using the Ledger capability, in Parties order so the result is
// deterministic across nodes.
func FoldCommitted(ledger Ledger, parties []Party, committed map[Party]UTxO) UTxO {
	utxos := make([]UTxO, 0, len(parties))
	for _, p := range parties {
		if u, ok := committed[p]; ok {
			utxos = append(utxos, u)
		}
	}
	return ledger.Union(utxos...)
}
