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

package headlogic_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sk-saru/hydra-poc/cryptoimpl"
	"github.com/sk-saru/hydra-poc/head"
	"github.com/sk-saru/hydra-poc/headlogic"
	"github.com/sk-saru/hydra-poc/ledgerimpl"
)

type fakeChainState struct{ slot uint64 }

func (c fakeChainState) Slot() uint64 { return c.slot }

// node is a single party's view of the protocol, driven directly through
// headlogic.Transition/Emit with no node.HeadRuntime in between.
type node struct {
	env   headlogic.Environment
	state head.HeadState
}

func (n *node) apply(t *testing.T, ledger head.Ledger, ev head.Event) []head.Effect {
	t.Helper()
	outcome := headlogic.Transition(n.env, ledger, n.state, ev)
	switch o := outcome.(type) {
	case head.OnlyEffects:
		return o.Effects
	case head.NewState:
		state, effects := headlogic.Emit(n.env, o.State, o.Effects)
		n.state = state
		return effects
	case head.Wait:
		t.Fatalf("unexpected wait: %+v", o.Reason)
	case head.Error:
		t.Fatalf("unexpected logic error: %v", o.Err)
	}
	return nil
}

func effectsOfType[T head.Effect](effects []head.Effect) []T {
	var out []T
	for _, e := range effects {
		if match, ok := e.(T); ok {
			out = append(out, match)
		}
	}
	return out
}

// TestFullLifecycle drives two parties through Idle -> Initial -> Open ->
// a confirmed snapshot round -> Closed -> Idle, relaying every effect one
// party produces to the other exactly as node.HeadRuntime's dispatch loop
// would, but synchronously and without a real chain or transport.
func TestFullLifecycle(t *testing.T) {
	ledger := ledgerimpl.New()

	partyA, signerA, err := cryptoimpl.GenerateKeyPair()
	require.NoError(t, err)
	partyB, signerB, err := cryptoimpl.GenerateKeyPair()
	require.NoError(t, err)

	verifier := cryptoimpl.NewVerifier()
	contestationPeriod := 50 * time.Millisecond

	a := &node{
		env: headlogic.Environment{
			Party: partyA, Signer: signerA, Verifier: verifier,
			OtherParties: []head.Party{partyB}, ContestationPeriod: contestationPeriod,
		},
		state: &head.IdleState{ChainState: fakeChainState{slot: 0}},
	}
	b := &node{
		env: headlogic.Environment{
			Party: partyB, Signer: signerB, Verifier: verifier,
			OtherParties: nil, ContestationPeriod: contestationPeriod,
		},
		state: &head.IdleState{ChainState: fakeChainState{slot: 0}},
	}

	// Idle -> Initial: A posts InitTx, the chain confirms it and both
	// parties observe OnInitTx.
	effects := a.apply(t, ledger, head.ClientEvent{Input: head.Init{}})
	onChain := effectsOfType[head.OnChainEffect](effects)
	require.Len(t, onChain, 1)
	initTx, ok := onChain[0].PostChainTx.(head.InitTx)
	require.True(t, ok)

	observedInit := head.OnChainEvent{Chain: head.Observation{
		Tx:            head.OnInitTx{ContestationPeriod: initTx.Parameters.ContestationPeriod, Parties: initTx.Parameters.Parties},
		NewChainState: fakeChainState{slot: 1},
	}}
	a.apply(t, ledger, observedInit)
	b.apply(t, ledger, observedInit)

	require.Equal(t, head.PhaseInitial, a.state.Phase())
	require.Equal(t, head.PhaseInitial, b.state.Phase())

	// Initial -> Open: both parties commit, then both observe both commits.
	commitA := ledgerimpl.UTxO{"alice": 100}
	commitB := ledgerimpl.UTxO{"bob": 50}

	effects = a.apply(t, ledger, head.ClientEvent{Input: head.Commit{UTxO: commitA}})
	commitTxA := effectsOfType[head.OnChainEffect](effects)[0].PostChainTx.(head.CommitTx)

	effects = b.apply(t, ledger, head.ClientEvent{Input: head.Commit{UTxO: commitB}})
	commitTxB := effectsOfType[head.OnChainEffect](effects)[0].PostChainTx.(head.CommitTx)

	observedCommitA := head.OnChainEvent{Chain: head.Observation{
		Tx:            head.OnCommitTx{Party: commitTxA.Party, UTxO: commitTxA.UTxO},
		NewChainState: fakeChainState{slot: 2},
	}}
	observedCommitB := head.OnChainEvent{Chain: head.Observation{
		Tx:            head.OnCommitTx{Party: commitTxB.Party, UTxO: commitTxB.UTxO},
		NewChainState: fakeChainState{slot: 3},
	}}

	a.apply(t, ledger, observedCommitA)
	effects = a.apply(t, ledger, observedCommitB)
	b.apply(t, ledger, observedCommitA)
	effectsB := b.apply(t, ledger, observedCommitB)

	// Only the party whose own commit is the one that empties
	// PendingCommits proposes CollectComTx: here that's B's commit, so A
	// (observing the same sequence of events) stays silent.
	collect := effectsOfType[head.OnChainEffect](effects)
	collectB := effectsOfType[head.OnChainEffect](effectsB)
	require.Empty(t, collect, "A did not make the commit that closed out PendingCommits")
	require.Len(t, collectB, 1)
	collectComTx := collectB[0].PostChainTx.(head.CollectComTx)

	observedCollectCom := head.OnChainEvent{Chain: head.Observation{
		Tx:            head.OnCollectComTx{},
		NewChainState: fakeChainState{slot: 4},
	}}
	a.apply(t, ledger, observedCollectCom)
	b.apply(t, ledger, observedCollectCom)

	require.Equal(t, head.PhaseOpen, a.state.Phase())
	require.Equal(t, head.PhaseOpen, b.state.Phase())

	openA := a.state.(*head.OpenState)
	require.Equal(t, collectComTx.UTxO.Hash(), openA.Coordinated.SeenUTxO.(ledgerimpl.UTxO).Hash())

	// Open: A submits a new transaction, relays ReqTx to B.
	tx := ledgerimpl.Tx{TxID: [32]byte{9}, From: "alice", To: "bob", Amount: 10}
	effects = a.apply(t, ledger, head.ClientEvent{Input: head.NewTx{Tx: tx}})

	reqTxMsgs := effectsOfType[head.NetworkEffect](effects)
	require.NotEmpty(t, reqTxMsgs)
	b.apply(t, ledger, head.NetworkEvent{TTL: head.DefaultTTL, Message: reqTxMsgs[0].Message})

	// A is the leader for snapshot 1 (party index 0): Emit should have
	// appended a ReqSn to the NewTx outcome's effects already.
	var reqSn head.ReqSn
	found := false
	for _, e := range effectsOfType[head.NetworkEffect](effects) {
		if sn, ok := e.Message.(head.ReqSn); ok {
			reqSn, found = sn, true
		}
	}
	require.True(t, found, "leader must emit ReqSn once it has seen transactions")

	// Deliver ReqSn to both parties (the shell's loopback + broadcast).
	reqSnEvent := head.NetworkEvent{TTL: head.DefaultTTL, Message: reqSn}
	effectsA := a.apply(t, ledger, reqSnEvent)
	effectsBAck := b.apply(t, ledger, reqSnEvent)

	ackA := effectsOfType[head.NetworkEffect](effectsA)[0].Message.(head.AckSn)
	ackB := effectsOfType[head.NetworkEffect](effectsBAck)[0].Message.(head.AckSn)

	// Deliver both acks to both parties; the second delivery on each side
	// crosses the signature threshold and confirms the snapshot.
	a.apply(t, ledger, head.NetworkEvent{TTL: head.DefaultTTL, Message: ackA})
	confirmEffectsA := a.apply(t, ledger, head.NetworkEvent{TTL: head.DefaultTTL, Message: ackB})
	b.apply(t, ledger, head.NetworkEvent{TTL: head.DefaultTTL, Message: ackA})
	confirmEffectsB := b.apply(t, ledger, head.NetworkEvent{TTL: head.DefaultTTL, Message: ackB})

	confirmedA := effectsOfType[head.ClientEffect](confirmEffectsA)
	confirmedB := effectsOfType[head.ClientEffect](confirmEffectsB)
	require.Len(t, confirmedA, 1)
	require.Len(t, confirmedB, 1)
	snA := confirmedA[0].Output.(head.SnapshotConfirmed)
	require.EqualValues(t, 1, snA.Snapshot.Number)

	// Open -> Closed: A closes with the confirmed snapshot.
	effects = a.apply(t, ledger, head.ClientEvent{Input: head.Close{}})
	closeTx := effectsOfType[head.OnChainEffect](effects)[0].PostChainTx.(head.CloseTx)
	require.EqualValues(t, 1, closeTx.ConfirmedSnapshot.Snapshot.Number)

	deadline := time.Now().Add(contestationPeriod)
	observedClose := head.OnChainEvent{Chain: head.Observation{
		Tx:            head.OnCloseTx{SnapshotNumber: closeTx.ConfirmedSnapshot.Snapshot.Number, ContestationDeadline: deadline},
		NewChainState: fakeChainState{slot: 5},
	}}
	a.apply(t, ledger, observedClose)
	b.apply(t, ledger, observedClose)
	require.Equal(t, head.PhaseClosed, a.state.Phase())

	// A tick before the deadline produces nothing; a tick after fires
	// ReadyToFanout exactly once.
	early := head.OnChainEvent{Chain: head.Tick{Time: deadline.Add(-time.Millisecond)}}
	require.Empty(t, a.apply(t, ledger, early))

	late := head.OnChainEvent{Chain: head.Tick{Time: deadline.Add(time.Millisecond)}}
	ready := a.apply(t, ledger, late)
	readyOutputs := effectsOfType[head.ClientEffect](ready)
	require.Len(t, readyOutputs, 1)
	_, ok = readyOutputs[0].Output.(head.ReadyToFanout)
	require.True(t, ok)
	require.Empty(t, a.apply(t, ledger, late), "ReadyToFanout must fire only once")

	// Closed -> Idle.
	effects = a.apply(t, ledger, head.ClientEvent{Input: head.Fanout{}})
	fanoutTx := effectsOfType[head.OnChainEffect](effects)[0].PostChainTx.(head.FanoutTx)

	observedFanout := head.OnChainEvent{Chain: head.Observation{
		Tx:            head.OnFanoutTx{},
		NewChainState: fakeChainState{slot: 6},
	}}
	final := a.apply(t, ledger, observedFanout)
	require.Equal(t, head.PhaseIdle, a.state.Phase())

	finalized := effectsOfType[head.ClientEffect](final)
	require.Len(t, finalized, 1)
	out, ok := finalized[0].Output.(head.HeadIsFinalized)
	require.True(t, ok)
	require.Equal(t, fanoutTx.UTxO.(ledgerimpl.UTxO).Hash(), out.UTxO.(ledgerimpl.UTxO).Hash())
}

// TestRollbackWalksToFixedPoint checks that a Rollback whose target slot
// predates every recorded state unwinds all the way back to Idle.
func TestRollbackWalksToFixedPoint(t *testing.T) {
	ledger := ledgerimpl.New()
	party, signer, err := cryptoimpl.GenerateKeyPair()
	require.NoError(t, err)

	n := &node{
		env:   headlogic.Environment{Party: party, Signer: signer, Verifier: cryptoimpl.NewVerifier()},
		state: &head.IdleState{ChainState: fakeChainState{slot: 0}},
	}

	n.apply(t, ledger, head.ClientEvent{Input: head.Init{}})
	observedInit := head.OnChainEvent{Chain: head.Observation{
		Tx:            head.OnInitTx{Parties: []head.Party{party}},
		NewChainState: fakeChainState{slot: 1},
	}}
	n.apply(t, ledger, observedInit)
	require.Equal(t, head.PhaseInitial, n.state.Phase())

	effects := n.apply(t, ledger, head.OnChainEvent{Chain: head.Rollback{Slot: 0}})
	require.Equal(t, head.PhaseIdle, n.state.Phase())
	require.Len(t, effectsOfType[head.ClientEffect](effects), 1)
}

// TestRollbackStopsAtIntermediateCommit checks that each OnCommitTx
// observation links back to the state immediately before it, so a
// Rollback targeting the slot between two commits lands on the
// intermediate state rather than skipping past it.
func TestRollbackStopsAtIntermediateCommit(t *testing.T) {
	ledger := ledgerimpl.New()
	partyA, signerA, err := cryptoimpl.GenerateKeyPair()
	require.NoError(t, err)
	partyB, _, err := cryptoimpl.GenerateKeyPair()
	require.NoError(t, err)

	n := &node{
		env:   headlogic.Environment{Party: partyA, Signer: signerA, Verifier: cryptoimpl.NewVerifier(), OtherParties: []head.Party{partyB}},
		state: &head.IdleState{ChainState: fakeChainState{slot: 0}},
	}

	n.apply(t, ledger, head.ClientEvent{Input: head.Init{}})
	n.apply(t, ledger, head.OnChainEvent{Chain: head.Observation{
		Tx:            head.OnInitTx{Parties: []head.Party{partyA, partyB}},
		NewChainState: fakeChainState{slot: 1},
	}})

	n.apply(t, ledger, head.OnChainEvent{Chain: head.Observation{
		Tx:            head.OnCommitTx{Party: partyA, UTxO: ledgerimpl.UTxO{"alice": 10}},
		NewChainState: fakeChainState{slot: 2},
	}})
	n.apply(t, ledger, head.OnChainEvent{Chain: head.Observation{
		Tx:            head.OnCommitTx{Party: partyB, UTxO: ledgerimpl.UTxO{"bob": 5}},
		NewChainState: fakeChainState{slot: 3},
	}})
	require.Equal(t, head.PhaseInitial, n.state.Phase())

	effects := n.apply(t, ledger, head.OnChainEvent{Chain: head.Rollback{Slot: 2}})
	require.Equal(t, head.PhaseInitial, n.state.Phase(), "rollback to slot 2 must land on the intermediate commit state, not unwind to Idle")
	require.Len(t, effectsOfType[head.ClientEffect](effects), 1)

	initial := n.state.(*head.InitialState)
	require.EqualValues(t, 2, initial.ChainState.Slot())
	_, stillPending := initial.PendingCommits[partyB]
	require.True(t, stillPending, "B's commit must still be pending at the rolled-back state")
	_, alreadyCommitted := initial.Committed[partyA]
	require.True(t, alreadyCommitted, "A's earlier commit must still be recorded at the rolled-back state")
}

// TestGetUTxOInInitialPhase checks that GetUTxO is answered in the
// Initial phase with the fold of commits recorded so far, not rejected
// as an unsupported command.
func TestGetUTxOInInitialPhase(t *testing.T) {
	ledger := ledgerimpl.New()
	party, signer, err := cryptoimpl.GenerateKeyPair()
	require.NoError(t, err)

	n := &node{
		env:   headlogic.Environment{Party: party, Signer: signer, Verifier: cryptoimpl.NewVerifier()},
		state: &head.IdleState{ChainState: fakeChainState{slot: 0}},
	}

	n.apply(t, ledger, head.ClientEvent{Input: head.Init{}})
	n.apply(t, ledger, head.OnChainEvent{Chain: head.Observation{
		Tx:            head.OnInitTx{Parties: []head.Party{party}},
		NewChainState: fakeChainState{slot: 1},
	}})
	n.apply(t, ledger, head.OnChainEvent{Chain: head.Observation{
		Tx:            head.OnCommitTx{Party: party, UTxO: ledgerimpl.UTxO{"alice": 10}},
		NewChainState: fakeChainState{slot: 2},
	}})

	effects := n.apply(t, ledger, head.ClientEvent{Input: head.GetUTxO{}})
	responses := effectsOfType[head.ClientEffect](effects)
	require.Len(t, responses, 1)
	resp, ok := responses[0].Output.(head.GetUTxOResponse)
	require.True(t, ok)
	require.EqualValues(t, 10, resp.UTxO.(ledgerimpl.UTxO)["alice"])
}

// TestReqTxExpiresAtZeroTTL checks that a ReqTx the local ledger still
// can't apply is turned into a TxExpired client notification once the
// shell has exhausted its ttl, rather than a Wait forever.
func TestReqTxExpiresAtZeroTTL(t *testing.T) {
	ledger := ledgerimpl.New()
	partyA, signerA, err := cryptoimpl.GenerateKeyPair()
	require.NoError(t, err)
	partyB, _, err := cryptoimpl.GenerateKeyPair()
	require.NoError(t, err)

	a := &node{
		env: headlogic.Environment{
			Party: partyA, Signer: signerA, Verifier: cryptoimpl.NewVerifier(),
			OtherParties: []head.Party{partyB},
		},
		state: &head.IdleState{ChainState: fakeChainState{slot: 0}},
	}

	a.apply(t, ledger, head.ClientEvent{Input: head.Init{}})
	a.apply(t, ledger, head.OnChainEvent{Chain: head.Observation{
		Tx:            head.OnInitTx{Parties: []head.Party{partyA, partyB}},
		NewChainState: fakeChainState{slot: 1},
	}})
	a.apply(t, ledger, head.OnChainEvent{Chain: head.Observation{
		Tx:            head.OnCommitTx{Party: partyA, UTxO: ledgerimpl.UTxO{"alice": 10}},
		NewChainState: fakeChainState{slot: 2},
	}})
	a.apply(t, ledger, head.OnChainEvent{Chain: head.Observation{
		Tx:            head.OnCommitTx{Party: partyB, UTxO: ledgerimpl.UTxO{"bob": 5}},
		NewChainState: fakeChainState{slot: 3},
	}})
	a.apply(t, ledger, head.OnChainEvent{Chain: head.Observation{
		Tx:            head.OnCollectComTx{},
		NewChainState: fakeChainState{slot: 4},
	}})
	require.Equal(t, head.PhaseOpen, a.state.Phase())

	unaffordable := ledgerimpl.Tx{TxID: [32]byte{1}, From: "carol", To: "bob", Amount: 1000}

	// ttl still positive: the core waits rather than giving up.
	outcome := headlogic.Transition(a.env, ledger, a.state, head.NetworkEvent{
		TTL: 1, Message: head.ReqTx{From: partyB, Tx: unaffordable},
	})
	_, waiting := outcome.(head.Wait)
	require.True(t, waiting)

	// ttl exhausted: the shell delivers one more time at ttl=0, and the
	// core must report TxExpired instead of waiting forever.
	effects := a.apply(t, ledger, head.NetworkEvent{TTL: 0, Message: head.ReqTx{From: partyB, Tx: unaffordable}})
	expired := effectsOfType[head.ClientEffect](effects)
	require.Len(t, expired, 1)
	_, ok := expired[0].Output.(head.TxExpired)
	require.True(t, ok)
}

// TestPostTxErrorNotifiesClient checks that a chain-submission failure
// re-ingested as a PostTxError surfaces to the client as
// PostTxOnChainFailed, regardless of the phase the head is in.
func TestPostTxErrorNotifiesClient(t *testing.T) {
	ledger := ledgerimpl.New()
	party, signer, err := cryptoimpl.GenerateKeyPair()
	require.NoError(t, err)

	n := &node{
		env:   headlogic.Environment{Party: party, Signer: signer, Verifier: cryptoimpl.NewVerifier()},
		state: &head.IdleState{ChainState: fakeChainState{slot: 0}},
	}

	submitErr := errors.New("submit: connection refused")
	tx := head.InitTx{Parameters: head.HeadParameters{Parties: []head.Party{party}}}

	effects := n.apply(t, ledger, head.PostTxError{PostChainTx: tx, Err: submitErr})
	failures := effectsOfType[head.ClientEffect](effects)
	require.Len(t, failures, 1)
	failed, ok := failures[0].Output.(head.PostTxOnChainFailed)
	require.True(t, ok)
	require.Equal(t, tx, failed.PostChainTx)
	require.ErrorIs(t, failed.Err, submitErr)
	require.Equal(t, head.PhaseIdle, n.state.Phase(), "a PostTxError must not change the head's phase")
}
