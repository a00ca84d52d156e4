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

import "fmt"

// Outcome is what a single Transition call returns.
type Outcome interface {
	outcome()
}

// OnlyEffects carries effects with no state change.
type OnlyEffects struct {
	Effects []Effect
}

func (OnlyEffects) outcome() {}

// NewState carries a freshly computed state plus the effects to dispatch
// alongside applying it. The shell must apply State before dispatching
// Effects.
type NewState struct {
	State   HeadState
	Effects []Effect
}

func (NewState) outcome() {}

// Wait instructs the shell to re-enqueue the same event later. It is not
// an error — used for out-of-order peer messages and not-yet-
// applicable transactions.
type Wait struct {
	Reason WaitReason
}

func (Wait) outcome() {}

// Error is a hard protocol violation.
type Error struct {
	Err *LogicError
}

func (Error) outcome() {}

// WaitReason explains why a Wait outcome was produced.
type WaitReason interface {
	waitReason()
}

type WaitOnNotApplicableTx struct {
	Err error
}

func (WaitOnNotApplicableTx) waitReason() {}

type WaitOnSnapshotNumber struct {
	Number uint64
}

func (WaitOnSnapshotNumber) waitReason() {}

type WaitOnSeenSnapshot struct{}

func (WaitOnSeenSnapshot) waitReason() {}

// LogicErrorKind is one of the four error kinds the core can report.
type LogicErrorKind int

const (
	// InvalidEvent is a hard protocol violation; the shell should log
	// and drop the event.
	InvalidEvent LogicErrorKind = iota
	// InvalidState is an internal inconsistency; fatal.
	InvalidState
	// InvalidSnapshot is reserved for future tightening.
	InvalidSnapshot
	// LedgerErrorKind is surfaced from the Ledger capability.
	LedgerErrorKind
)

func (k LogicErrorKind) String() string {
	switch k {
	case InvalidEvent:
		return "InvalidEvent"
	case InvalidState:
		return "InvalidState"
	case InvalidSnapshot:
		return "InvalidSnapshot"
	case LedgerErrorKind:
		return "LedgerError"
	default:
		return "Unknown"
	}
}

// LogicError is a hard protocol violation. Event and State are
// populated for InvalidEvent/InvalidState, Expected/Actual for
// InvalidSnapshot, Cause for LedgerErrorKind.
type LogicError struct {
	Kind     LogicErrorKind
	Event    Event
	State    HeadState
	Expected uint64
	Actual   uint64
	Cause    error
}

func (e *LogicError) Error() string {
	switch e.Kind {
	case InvalidSnapshot:
		return fmt.Sprintf("invalid snapshot: expected %d, got %d", e.Expected, e.Actual)
	case LedgerErrorKind:
		return fmt.Sprintf("ledger error: %v", e.Cause)
	default:
		return fmt.Sprintf("%s: event %T in state %T", e.Kind, e.Event, e.State)
	}
}

func (e *LogicError) Unwrap() error {
	return e.Cause
}
