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

// Package testlog provides a log15 handler that routes head's log output
// into a *testing.T, so a failing test shows what the runtime logged
// instead of requiring a separate -v run against stderr.
package testlog

import (
	"testing"

	"github.com/inconshreveable/log15"
)

// Handler returns a log15 handler that writes to t's log at level and
// below.
func Handler(t *testing.T, level log15.Lvl) log15.Handler {
	return log15.LvlFilterHandler(level, &handler{t, log15.TerminalFormat()})
}

type handler struct {
	t   *testing.T
	fmt log15.Format
}

func (h *handler) Log(r *log15.Record) error {
	h.t.Logf("%s", h.fmt.Format(r))
	return nil
}
