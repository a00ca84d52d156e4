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

// Package headerr wraps head.LogicError with the stack-trace-carrying
// errors the rest of the module uses, so a fatal InvalidState surfaces a
// trace pointing at the shell call site that fed the core a bad event,
// not just the Transition frame that noticed.
package headerr

import (
	"github.com/pkg/errors"

	"github.com/sk-saru/hydra-poc/head"
)

// ErrNotOurTurn is a sentinel for shell-level code that checks leadership
// before sending a ReqSn, so callers can errors.Is against it. Nothing in
// this module returns it.
var ErrNotOurTurn = errors.New("head: not the leader for this snapshot number")

// ErrUnknownParty is a sentinel for a message that names a party outside
// the head's parameters. Nothing in this module returns it.
var ErrUnknownParty = errors.New("head: party not part of this head")

// Wrap attaches a stack trace to a *head.LogicError at the point the shell
// first observes it, e.g. before logging or returning it up a CLI command.
func Wrap(err *head.LogicError) error {
	if err == nil {
		return nil
	}
	return errors.WithStack(err)
}

// WithMessage is Wrap plus a shell-level explanation of what was being
// attempted when the core rejected it.
func WithMessage(err *head.LogicError, message string) error {
	if err == nil {
		return nil
	}
	return errors.WithMessage(errors.WithStack(err), message)
}
