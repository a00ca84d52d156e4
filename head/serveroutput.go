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

// ServerOutput is the vocabulary delivered to the client API.
type ServerOutput interface {
	serverOutput()
}

// PeerConnected/PeerDisconnected surface transport connectivity changes;
// the core never triggers a phase change from these, only a client
// notification.
type PeerConnected struct {
	Party Party
}

func (PeerConnected) serverOutput() {}

type PeerDisconnected struct {
	Party Party
}

func (PeerDisconnected) serverOutput() {}

type ReadyToCommit struct {
	Parties []Party
}

func (ReadyToCommit) serverOutput() {}

type Committed struct {
	Party Party
	UTxO  UTxO
}

func (Committed) serverOutput() {}

type HeadIsOpen struct {
	UTxO UTxO
}

func (HeadIsOpen) serverOutput() {}

type HeadIsAborted struct {
	UTxO UTxO
}

func (HeadIsAborted) serverOutput() {}

type HeadIsClosed struct {
	SnapshotNumber       uint64
	ContestationDeadline time.Time
}

func (HeadIsClosed) serverOutput() {}

type HeadIsContested struct {
	SnapshotNumber uint64
}

func (HeadIsContested) serverOutput() {}

type ReadyToFanout struct{}

func (ReadyToFanout) serverOutput() {}

type HeadIsFinalized struct {
	UTxO UTxO
}

func (HeadIsFinalized) serverOutput() {}

type TxValid struct {
	Tx Tx
}

func (TxValid) serverOutput() {}

type TxInvalid struct {
	UTxO UTxO
	Tx   Tx
	Err  error
}

func (TxInvalid) serverOutput() {}

type TxSeen struct {
	Tx Tx
}

func (TxSeen) serverOutput() {}

type TxExpired struct {
	Tx Tx
}

func (TxExpired) serverOutput() {}

type SnapshotConfirmed struct {
	Snapshot Snapshot
	Multisig Signature
}

func (SnapshotConfirmed) serverOutput() {}

type GetUTxOResponse struct {
	UTxO UTxO
}

func (GetUTxOResponse) serverOutput() {}

type CommandFailed struct {
	Input ClientInput
}

func (CommandFailed) serverOutput() {}

type PostTxOnChainFailed struct {
	PostChainTx PostChainTx
	Err         error
}

func (PostTxOnChainFailed) serverOutput() {}

type RolledBack struct{}

func (RolledBack) serverOutput() {}
