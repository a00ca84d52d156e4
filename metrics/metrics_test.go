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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotRoundRecordsDuration(t *testing.T) {
	before := snapshotRoundDuration.Count()

	SnapshotRoundStarted(42)
	time.Sleep(time.Millisecond)
	SnapshotConfirmed(42)

	assert.Equal(t, before+1, snapshotRoundDuration.Count())
}

func TestSnapshotConfirmedWithoutStartedDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { SnapshotConfirmed(999) })
}

func TestCollectProcessMetricsStopsOnSignal(t *testing.T) {
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		CollectProcessMetrics(time.Millisecond, stop)
		close(done)
	}()

	close(stop)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("CollectProcessMetrics did not stop after stop was closed")
	}
}
