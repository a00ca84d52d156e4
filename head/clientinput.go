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

// ClientInput is the client-facing command vocabulary ingested by the
// core.
type ClientInput interface {
	clientInput()
}

type Init struct{}

func (Init) clientInput() {}

type Commit struct {
	UTxO UTxO
}

func (Commit) clientInput() {}

type Abort struct{}

func (Abort) clientInput() {}

type NewTx struct {
	Tx Tx
}

func (NewTx) clientInput() {}

type Close struct{}

func (Close) clientInput() {}

type Contest struct{}

func (Contest) clientInput() {}

type Fanout struct{}

func (Fanout) clientInput() {}

type GetUTxO struct{}

func (GetUTxO) clientInput() {}
