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

// Effect is a side-effect the shell must dispatch to an external
// collaborator. Within one event, effects are totally ordered;
// the shell must dispatch them in the order produced.
type Effect interface {
	effect()
}

// ClientEffect delivers a ServerOutput to the client API.
type ClientEffect struct {
	Output ServerOutput
}

func (ClientEffect) effect() {}

// NetworkEffect broadcasts a message to all peers, including the sender
// (the shell's loopback contract).
type NetworkEffect struct {
	Message NetworkMessage
}

func (NetworkEffect) effect() {}

// OnChainEffect submits a transaction using the chain state captured at
// the time the effect was produced — never the state of a state
// transition that hasn't been applied yet.
type OnChainEffect struct {
	ChainState  ChainState
	PostChainTx PostChainTx
}

func (OnChainEffect) effect() {}
