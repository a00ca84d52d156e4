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

// PostChainTx is the vocabulary of transactions the core asks to have
// posted on chain.
type PostChainTx interface {
	postChainTx()
}

type InitTx struct {
	Parameters HeadParameters
}

func (InitTx) postChainTx() {}

type CommitTx struct {
	Party Party
	UTxO  UTxO
}

func (CommitTx) postChainTx() {}

type AbortTx struct {
	UTxO UTxO
}

func (AbortTx) postChainTx() {}

type CollectComTx struct {
	UTxO UTxO
}

func (CollectComTx) postChainTx() {}

type CloseTx struct {
	ConfirmedSnapshot ConfirmedSnapshot
}

func (CloseTx) postChainTx() {}

type ContestTx struct {
	ConfirmedSnapshot ConfirmedSnapshot
}

func (ContestTx) postChainTx() {}

type FanoutTx struct {
	UTxO     UTxO
	Deadline time.Time
}

func (FanoutTx) postChainTx() {}

// ObservedTx is the vocabulary of transactions the core is told were seen
// on chain.
type ObservedTx interface {
	observedTx()
}

type OnInitTx struct {
	ContestationPeriod time.Duration
	Parties            []Party
}

func (OnInitTx) observedTx() {}

type OnCommitTx struct {
	Party Party
	UTxO  UTxO
}

func (OnCommitTx) observedTx() {}

type OnCollectComTx struct{}

func (OnCollectComTx) observedTx() {}

type OnAbortTx struct{}

func (OnAbortTx) observedTx() {}

type OnCloseTx struct {
	SnapshotNumber       uint64
	ContestationDeadline time.Time
}

func (OnCloseTx) observedTx() {}

type OnContestTx struct {
	SnapshotNumber uint64
}

func (OnContestTx) observedTx() {}

type OnFanoutTx struct{}

func (OnFanoutTx) observedTx() {}
