// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"

	"github.com/zshehov/adk-python-sub001/internal/xiter"
	"github.com/zshehov/adk-python-sub001/types"
)

// ParallelAgent is a shell agent that runs its sub-agents concurrently, each on its own branch.
//
// Sub-agents do not see each other's events. This suits scenarios requiring
// multiple perspectives or attempts on a single task, such as:
//
//   - Running different algorithms simultaneously.
//   - Generating multiple responses for review by a subsequent evaluation agent.
type ParallelAgent struct {
	*types.BaseAgent
}

var _ types.Agent = (*ParallelAgent)(nil)

// NewParallelAgent creates a new parallel agent with the given name and options.
func NewParallelAgent(name string, opts ...types.Option) (*ParallelAgent, error) {
	a := &ParallelAgent{}
	base, err := types.NewBaseAgent(a, name, opts...)
	if err != nil {
		return nil, err
	}
	a.BaseAgent = base
	return a, nil
}

// Execute implements [types.Agent].
func (a *ParallelAgent) Execute(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		runs := make([]iter.Seq2[*types.Event, error], 0, len(a.SubAgents()))
		for _, sub := range a.SubAgents() {
			runs = append(runs, sub.Run(ctx, branchContext(a, sub, ictx)))
		}
		for event, err := range MergeAgentRun(ctx, runs) {
			if !yield(event, err) || err != nil {
				return
			}
		}
	}
}

// ExecuteLive implements [types.Agent].
func (a *ParallelAgent) ExecuteLive(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return xiter.Error[types.Event](types.NotImplementedError("live mode is not supported by ParallelAgent " + a.Name()))
}

// branchContext returns the context isolating sub on the branch "<branch>.<agent>.<sub>".
func branchContext(agent, sub types.Agent, ictx *types.InvocationContext) *types.InvocationContext {
	branched := ictx.Clone()
	suffix := agent.Name() + "." + sub.Name()
	if branched.Branch != "" {
		branched.Branch += "." + suffix
	} else {
		branched.Branch = suffix
	}
	return branched
}

type mergedEvent struct {
	event *types.Event
	err   error
	ack   chan struct{}
}

// MergeAgentRun fans the events of agentRuns into a single stream.
//
// Each run is blocked until its previous event has been consumed, so a run
// never moves on before the caller processed what it produced. The first
// error stops every run.
func MergeAgentRun(ctx context.Context, agentRuns []iter.Seq2[*types.Event, error]) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		if len(agentRuns) == 0 {
			return
		}

		ctx, cancel := context.WithCancel(ctx)
		g, gctx := errgroup.WithContext(ctx)
		defer func() {
			cancel()
			_ = g.Wait()
		}()

		merged := make(chan mergedEvent)
		for _, run := range agentRuns {
			g.Go(func() error {
				ack := make(chan struct{}, 1)
				for event, err := range run {
					select {
					case merged <- mergedEvent{event: event, err: err, ack: ack}:
					case <-gctx.Done():
						return nil
					}
					if err != nil {
						return nil
					}
					select {
					case <-ack:
					case <-gctx.Done():
						return nil
					}
				}
				return nil
			})
		}
		go func() {
			_ = g.Wait()
			close(merged)
		}()

		for m := range merged {
			if m.err != nil {
				yield(nil, m.err)
				return
			}
			if !yield(m.event, nil) {
				return
			}
			m.ack <- struct{}{}
		}
	}
}
