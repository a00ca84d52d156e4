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

// Command hydra-head drives a single-party Head protocol node through a
// full Idle -> Initial -> Open -> Closed -> Idle lifecycle against a
// simulated chain, printing every ServerOutput as it's produced. It
// exists to exercise node/headlogic/head end to end without a real
// multi-party network or settlement layer.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/inconshreveable/log15"
	"gopkg.in/urfave/cli.v1"

	"github.com/sk-saru/hydra-poc/cryptoimpl"
	"github.com/sk-saru/hydra-poc/head"
	"github.com/sk-saru/hydra-poc/headnet"
	"github.com/sk-saru/hydra-poc/internal/headlog"
	"github.com/sk-saru/hydra-poc/ledgerimpl"
	"github.com/sk-saru/hydra-poc/node"
)

var (
	verbosityFlag = cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: crit, error, warn, info, debug, trace",
		Value: "info",
	}
	contestationPeriodFlag = cli.StringFlag{
		Name:  "contestation-period",
		Usage: "How long Close leaves the head open to a higher Contest snapshot",
		Value: "2s",
	}
	commitAmountFlag = cli.StringFlag{
		Name:  "commit-amount",
		Usage: "Balance the single party commits to the head on opening",
		Value: "100",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "hydra-head"
	app.Usage = "run a single-party Head protocol demo against a simulated chain"
	app.Flags = []cli.Flag{verbosityFlag, contestationPeriodFlag, commitAmountFlag}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	lvl, err := log15.LvlFromString(c.String(verbosityFlag.Name))
	if err != nil {
		return fmt.Errorf("hydra-head: bad verbosity: %w", err)
	}
	headlog.SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(os.Stderr, log15.TerminalFormat())))

	contestationPeriod, err := time.ParseDuration(c.String(contestationPeriodFlag.Name))
	if err != nil {
		return fmt.Errorf("hydra-head: bad contestation-period: %w", err)
	}

	commitAmount, err := strconv.ParseUint(c.String(commitAmountFlag.Name), 10, 64)
	if err != nil {
		return fmt.Errorf("hydra-head: bad commit-amount: %w", err)
	}

	party, signer, err := cryptoimpl.GenerateKeyPair()
	if err != nil {
		return fmt.Errorf("hydra-head: generate key: %w", err)
	}
	headlog.Info("generated party identity", "party", party)

	sim := &chainSimulator{contestationPeriod: contestationPeriod}

	cfg := node.Config{
		Party:              party,
		Signer:             signer,
		Verifier:           cryptoimpl.NewVerifier(),
		Ledger:             ledgerimpl.New(),
		Transport:          noopTransport{},
		Submitter:          sim,
		Output:             logOutput{},
		ContestationPeriod: contestationPeriod,
	}

	rt := node.New(cfg, chainState{})
	sim.runtime = rt
	rt.Start()
	defer rt.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go tick(ctx, rt)

	step := 300 * time.Millisecond

	rt.Enqueue(head.ClientEvent{Input: head.Init{}})
	time.Sleep(step)

	rt.Enqueue(head.ClientEvent{Input: head.Commit{
		UTxO: ledgerimpl.UTxO{ledgerimpl.Account(party.String()[:8]): commitAmount},
	}})
	time.Sleep(step)

	rt.Enqueue(head.ClientEvent{Input: head.Close{}})
	time.Sleep(contestationPeriod + step)

	rt.Enqueue(head.ClientEvent{Input: head.Fanout{}})
	time.Sleep(step)

	return nil
}

// tick drives the wall clock into the runtime: the core never reads time
// itself, so something outside it must.
func tick(ctx context.Context, rt *node.HeadRuntime) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rt.Enqueue(head.OnChainEvent{Chain: head.Tick{Time: now}})
		}
	}
}

// logOutput prints every ServerOutput the demo node produces.
type logOutput struct{}

func (logOutput) Deliver(out head.ServerOutput) {
	switch o := out.(type) {
	case head.SnapshotConfirmed:
		headlog.Info("snapshot confirmed", "number", o.Snapshot.Number, "payload", fmt.Sprintf("%x", headnet.SigningPayload(o.Snapshot)))
	default:
		headlog.Info("server output", "type", fmt.Sprintf("%T", out), "value", out)
	}
}
