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

// Package node is the shell around the head/headlogic core: it owns the
// event loop, the Wait/TTL re-enqueue policy, and the Transport/
// ChainSubmitter/OutputSink collaborators the pure core is never given
// direct access to.
package node

import (
	"time"

	"github.com/sk-saru/hydra-poc/head"
)

// DefaultContestationPeriod is used when a Config doesn't set one.
const DefaultContestationPeriod = 60 * time.Second

// DefaultRetryInterval is how long the runtime waits before re-enqueueing
// a NetworkEvent that produced a Wait outcome.
const DefaultRetryInterval = 250 * time.Millisecond

// DefaultInboxSize bounds how many events may be queued for processing
// before Enqueue blocks the caller.
const DefaultInboxSize = 256

// DefaultConfig holds the runtime defaults a single-node local demo can
// start from; a real deployment overrides Party/Signer/Verifier/
// OtherParties/Ledger/Transport/Submitter/Output.
var DefaultConfig = Config{
	ContestationPeriod: DefaultContestationPeriod,
	RetryInterval:      DefaultRetryInterval,
	InboxSize:          DefaultInboxSize,
}

// Config wires a HeadRuntime's capabilities and tuning parameters.
type Config struct {
	Party        head.Party
	OtherParties []head.Party

	Signer   head.Signer
	Verifier head.Verifier
	Ledger   head.Ledger

	Transport Transport
	Submitter ChainSubmitter
	Output    OutputSink

	ContestationPeriod time.Duration
	RetryInterval      time.Duration
	InboxSize          int
	VerifyCacheSize    int
}
