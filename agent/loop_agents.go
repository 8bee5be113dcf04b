// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"iter"

	"github.com/zshehov/adk-python-sub001/internal/xiter"
	"github.com/zshehov/adk-python-sub001/types"
)

// LoopAgent runs its sub-agents in order, repeatedly, until one of them escalates.
//
// A sub-agent escalates by emitting an event with Actions.Escalate set, usually
// through the exit_loop tool.
type LoopAgent struct {
	*types.BaseAgent

	// maxIterations bounds the number of passes over the sub-agents.
	// Zero means no bound.
	maxIterations int
}

var _ types.Agent = (*LoopAgent)(nil)

// NewLoopAgent creates a new loop agent with the given name and options.
func NewLoopAgent(name string, opts ...types.Option) (*LoopAgent, error) {
	a := &LoopAgent{}
	base, err := types.NewBaseAgent(a, name, opts...)
	if err != nil {
		return nil, err
	}
	a.BaseAgent = base
	return a, nil
}

// WithMaxIterations sets the maximum number of passes over the sub-agents.
func (a *LoopAgent) WithMaxIterations(maxIterations int) *LoopAgent {
	a.maxIterations = maxIterations
	return a
}

// Execute implements [types.Agent].
func (a *LoopAgent) Execute(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		if len(a.SubAgents()) == 0 {
			return
		}

		for iteration := 0; a.maxIterations <= 0 || iteration < a.maxIterations; iteration++ {
			for _, sub := range a.SubAgents() {
				for event, err := range sub.Run(ctx, ictx) {
					if err != nil {
						yield(nil, err)
						return
					}
					if !yield(event, nil) {
						return
					}
					if event.Actions != nil && event.Actions.Escalate {
						return
					}
				}
				if ictx.EndInvocation {
					return
				}
			}
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
		}
	}
}

// ExecuteLive implements [types.Agent].
func (a *LoopAgent) ExecuteLive(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return xiter.Error[types.Event](types.NotImplementedError("live mode is not supported by LoopAgent " + a.Name()))
}
