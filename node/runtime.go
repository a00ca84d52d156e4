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

package node

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sk-saru/hydra-poc/head"
	"github.com/sk-saru/hydra-poc/headerr"
	"github.com/sk-saru/hydra-poc/headlogic"
	"github.com/sk-saru/hydra-poc/internal/headlog"
	"github.com/sk-saru/hydra-poc/metrics"
)

// Transport delivers a NetworkMessage to every other party. The runtime is
// responsible for the loopback to the local party itself; Broadcast only
// needs to reach peers.
type Transport interface {
	Broadcast(msg head.NetworkMessage) error
}

// ChainSubmitter posts a PostChainTx using the chain state it was produced
// against.
type ChainSubmitter interface {
	Submit(chainState head.ChainState, tx head.PostChainTx) error
}

// OutputSink delivers a ServerOutput to whatever is acting as the client
// for this node (a CLI, an HTTP/WS API, a test harness).
type OutputSink interface {
	Deliver(out head.ServerOutput)
}

// HeadRuntime is the shell: it serializes every Transition call, applies
// the emitter's post-transition pass, and dispatches the resulting effects
// to Transport/ChainSubmitter/OutputSink. Nothing in head or headlogic
// knows any of these three exist.
type HeadRuntime struct {
	env    headlogic.Environment
	ledger head.Ledger

	transport Transport
	submitter ChainSubmitter
	output    OutputSink

	retryInterval time.Duration

	mu    sync.Mutex
	state head.HeadState

	inbox   chan head.Event
	stopCh  chan struct{}
	wg      sync.WaitGroup
	running int32
}

// New builds a HeadRuntime starting from the Idle phase at chainState.
func New(cfg Config, chainState head.ChainState) *HeadRuntime {
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultRetryInterval
	}
	if cfg.InboxSize <= 0 {
		cfg.InboxSize = DefaultInboxSize
	}
	if cfg.ContestationPeriod <= 0 {
		cfg.ContestationPeriod = DefaultContestationPeriod
	}

	return &HeadRuntime{
		env: headlogic.Environment{
			Party:              cfg.Party,
			Signer:             cfg.Signer,
			Verifier:           newCachedVerifier(cfg.Verifier, cfg.VerifyCacheSize),
			OtherParties:       cfg.OtherParties,
			ContestationPeriod: cfg.ContestationPeriod,
		},
		ledger:        cfg.Ledger,
		transport:     cfg.Transport,
		submitter:     cfg.Submitter,
		output:        cfg.Output,
		retryInterval: cfg.RetryInterval,
		state:         &head.IdleState{ChainState: chainState},
		inbox:         make(chan head.Event, cfg.InboxSize),
		stopCh:        make(chan struct{}),
	}
}

// Start launches the event loop in the background.
func (r *HeadRuntime) Start() {
	atomic.StoreInt32(&r.running, 1)
	r.wg.Add(1)
	go r.loop()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		metrics.CollectProcessMetrics(10*time.Second, r.stopCh)
	}()
}

// Stop signals the event loop to exit and waits for it to drain.
func (r *HeadRuntime) Stop() {
	if atomic.CompareAndSwapInt32(&r.running, 1, 0) {
		close(r.stopCh)
	}
	r.wg.Wait()
}

// State returns the current HeadState. Safe to call concurrently with a
// running loop.
func (r *HeadRuntime) State() head.HeadState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Enqueue submits an event for processing. ClientEvents and ChainEvents
// come from the node's own collaborators; NetworkEvents arrive from peers
// and from the runtime's own loopback of every message it broadcasts.
func (r *HeadRuntime) Enqueue(ev head.Event) {
	select {
	case r.inbox <- ev:
	case <-r.stopCh:
	}
}

func (r *HeadRuntime) loop() {
	defer r.wg.Done()
	for {
		select {
		case <-r.stopCh:
			return
		case ev := <-r.inbox:
			r.process(ev)
		}
	}
}

func (r *HeadRuntime) process(ev head.Event) {
	r.mu.Lock()
	state := r.state
	r.mu.Unlock()

	if onChain, ok := ev.(head.OnChainEvent); ok {
		if _, ok := onChain.Chain.(head.Rollback); ok {
			metrics.RollbackHandled()
		}
	}

	outcome := headlogic.Transition(r.env, r.ledger, state, ev)

	switch o := outcome.(type) {
	case head.OnlyEffects:
		r.dispatch(o.Effects)

	case head.NewState:
		newState, effects := headlogic.Emit(r.env, o.State, o.Effects)
		r.mu.Lock()
		r.state = newState
		r.mu.Unlock()
		r.dispatch(effects)

	case head.Wait:
		metrics.WaitIssued()
		r.retry(ev, o.Reason)

	case head.Error:
		headlog.Error("head: transition rejected event", "kind", o.Err.Kind, "err", headerr.Wrap(o.Err))
	}
}

// retry re-enqueues a NetworkEvent after retryInterval with its TTL
// decremented. Once the decremented TTL reaches zero the event is
// re-enqueued one final time at ttl=0, without waiting retryInterval; if
// that final attempt waits again, the event is dropped. Wait is only ever
// produced for NetworkEvents in this protocol's handlers.
func (r *HeadRuntime) retry(ev head.Event, reason head.WaitReason) {
	net, ok := ev.(head.NetworkEvent)
	if !ok {
		headlog.Warn("head: wait outcome for a non-network event", "reason", reason)
		return
	}

	if net.TTL <= 0 {
		headlog.Debug("head: dropping event after final attempt at ttl=0", "reason", reason, "message", net.Message)
		return
	}

	ttl := net.TTL - 1
	if ttl <= 0 {
		metrics.TxExpired()
		headlog.Debug("head: ttl exhausted, delivering final attempt at ttl=0", "reason", reason, "message", net.Message)
		// One last delivery at ttl=0 lets the core itself decide the event
		// is expired and emit TxExpired, instead of the shell silently
		// dropping it.
		r.Enqueue(head.NetworkEvent{TTL: 0, Message: net.Message})
		return
	}

	time.AfterFunc(r.retryInterval, func() {
		r.Enqueue(head.NetworkEvent{TTL: ttl, Message: net.Message})
	})
}

func (r *HeadRuntime) dispatch(effects []head.Effect) {
	for _, effect := range effects {
		switch e := effect.(type) {
		case head.ClientEffect:
			if sc, ok := e.Output.(head.SnapshotConfirmed); ok {
				metrics.SnapshotConfirmed(sc.Snapshot.Number)
			}
			r.output.Deliver(e.Output)

		case head.NetworkEffect:
			if reqSn, ok := e.Message.(head.ReqSn); ok {
				metrics.SnapshotRoundStarted(reqSn.Number)
			}
			if err := r.transport.Broadcast(e.Message); err != nil {
				headlog.Warn("head: broadcast failed", "err", err)
			}
			// The shell's loopback contract: the sender processes its own
			// broadcast the same way every peer does.
			r.Enqueue(head.NetworkEvent{TTL: head.DefaultTTL, Message: e.Message})

		case head.OnChainEffect:
			if err := r.submitter.Submit(e.ChainState, e.PostChainTx); err != nil {
				r.Enqueue(head.PostTxError{PostChainTx: e.PostChainTx, Err: err})
			}
		}
	}
}
