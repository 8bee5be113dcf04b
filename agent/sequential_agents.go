// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"iter"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/zshehov/adk-python-sub001/tool/tools"
	"github.com/zshehov/adk-python-sub001/types"
)

// TaskCompletedToolName is the name of the tool a live sub-agent of a [SequentialAgent]
// calls to hand over to the next sub-agent.
const TaskCompletedToolName = "task_completed"

var taskCompletedInstruction = heredoc.Doc(`
	If you finished the user's request according to its description, call the
	task_completed function to exit so the next agents can take over. When
	calling this function, do not generate any text other than the function call.`)

// SequentialAgent is a shell agent that runs its sub-agents once each, in order.
type SequentialAgent struct {
	*types.BaseAgent
}

var _ types.Agent = (*SequentialAgent)(nil)

// NewSequentialAgent creates a new sequential agent with the given name and options.
func NewSequentialAgent(name string, opts ...types.Option) (*SequentialAgent, error) {
	a := &SequentialAgent{}
	base, err := types.NewBaseAgent(a, name, opts...)
	if err != nil {
		return nil, err
	}
	a.BaseAgent = base
	return a, nil
}

// Execute implements [types.Agent].
func (a *SequentialAgent) Execute(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		for _, sub := range a.SubAgents() {
			for event, err := range sub.Run(ctx, ictx) {
				if err != nil {
					yield(nil, err)
					return
				}
				if !yield(event, nil) {
					return
				}
			}
			if ictx.EndInvocation {
				return
			}
		}
	}
}

// ExecuteLive implements [types.Agent].
//
// A live stream never tells when a sub-agent is done, so every LLM sub-agent
// gets a task_completed tool to call when it finished its part.
func (a *SequentialAgent) ExecuteLive(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	for _, sub := range a.SubAgents() {
		llmAgent, ok := sub.(*LLMAgent)
		if !ok || llmAgent.hasTool(TaskCompletedToolName) {
			continue
		}
		llmAgent.addTools(tools.NewFunctionTool(TaskCompletedToolName,
			"Signals that the agent has successfully completed the user's question or task.",
			taskCompleted,
		))
		llmAgent.appendInstruction(taskCompletedInstruction)
	}

	return func(yield func(*types.Event, error) bool) {
		for _, sub := range a.SubAgents() {
			for event, err := range sub.RunLive(ctx, ictx) {
				if err != nil {
					yield(nil, err)
					return
				}
				if !yield(event, nil) {
					return
				}
			}
		}
	}
}

func taskCompleted(context.Context, map[string]any, *types.ToolContext) (any, error) {
	return "Task completion signaled.", nil
}
