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

// NetworkMessage is the peer gossip vocabulary. Messages must be
// durably identifiable by From; the transport is assumed to have already
// established the sender's authenticity, signatures on snapshots provide
// content authenticity on top of that.
type NetworkMessage interface {
	networkMessage()
}

type ReqTx struct {
	From Party
	Tx   Tx
}

func (ReqTx) networkMessage() {}

type ReqSn struct {
	From   Party
	Number uint64
	Txs    []Tx
}

func (ReqSn) networkMessage() {}

type AckSn struct {
	From      Party
	Signature Signature
	Number    uint64
}

func (AckSn) networkMessage() {}

// Connected/Disconnected report transport-level peer connectivity; they
// carry no protocol-state effect beyond the matching ServerOutput.
type Connected struct {
	NodeID Party
}

func (Connected) networkMessage() {}

type Disconnected struct {
	NodeID Party
}

func (Disconnected) networkMessage() {}
