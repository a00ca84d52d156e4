// Copyright 2018 The ebakus/node Authors
// This file is part of the ebakus/node library.
//
// The ebakus/node library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ebakus/node library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ebakus/node library. If not, see <http://www.gnu.org/licenses/>.

package metrics

import (
	"sync"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
)

var (
	snapshotsConfirmed    = gometrics.GetOrRegisterCounter("head/snapshots/confirmed", nil)
	rollbacksHandled      = gometrics.GetOrRegisterCounter("head/rollbacks/handled", nil)
	waitsIssued           = gometrics.GetOrRegisterCounter("head/transition/waits", nil)
	txExpired             = gometrics.GetOrRegisterCounter("head/transactions/expired", nil)
	snapshotRoundDuration = gometrics.GetOrRegisterTimer("head/snapshots/round", nil)
)

var (
	roundsMu sync.Mutex
	rounds   = make(map[uint64]time.Time)
)

// SnapshotRoundStarted marks the wall-clock time a ReqSn for number was
// observed, so the matching SnapshotConfirmed can report how long the
// round took to collect every signature.
func SnapshotRoundStarted(number uint64) {
	roundsMu.Lock()
	rounds[number] = time.Now()
	roundsMu.Unlock()
}

// SnapshotConfirmed records one fully-signed snapshot having closed its
// collection round.
func SnapshotConfirmed(number uint64) {
	snapshotsConfirmed.Inc(1)

	roundsMu.Lock()
	start, ok := rounds[number]
	delete(rounds, number)
	roundsMu.Unlock()

	if ok {
		snapshotRoundDuration.Update(time.Since(start))
	}
}

// RollbackHandled records a chain rollback observation processed by the
// transition function.
func RollbackHandled() {
	rollbacksHandled.Inc(1)
}

// WaitIssued records a Transition call that returned a Wait outcome.
func WaitIssued() {
	waitsIssued.Inc(1)
}

// TxExpired records a network transaction dropped after exhausting its TTL.
func TxExpired() {
	txExpired.Inc(1)
}
