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

// Package headlog is a thin wrapper around log15's root logger, giving the
// rest of the module package-level Trace/Debug/Info/Warn/Error/Crit
// functions instead of a logger value threaded through every call site.
package headlog

import (
	"os"

	"github.com/inconshreveable/log15"
)

var root = log15.New()

func init() {
	root.SetHandler(log15.LvlFilterHandler(log15.LvlInfo, log15.StreamHandler(os.Stderr, log15.TerminalFormat())))
}

// SetHandler replaces the root logger's handler, e.g. to raise verbosity
// or redirect output to a file in the node's config layer.
func SetHandler(h log15.Handler) {
	root.SetHandler(h)
}

// New returns a logger with ctx appended to every record it emits,
// for components that want a stable set of key/value pairs (e.g. "party").
func New(ctx ...interface{}) log15.Logger {
	return root.New(ctx...)
}

func Trace(msg string, ctx ...interface{}) { root.Trace(msg, ctx...) }
func Debug(msg string, ctx ...interface{}) { root.Debug(msg, ctx...) }
func Info(msg string, ctx ...interface{})  { root.Info(msg, ctx...) }
func Warn(msg string, ctx ...interface{})  { root.Warn(msg, ctx...) }
func Error(msg string, ctx ...interface{}) { root.Error(msg, ctx...) }
func Crit(msg string, ctx ...interface{}) {
	root.Crit(msg, ctx...)
	os.Exit(1)
}
