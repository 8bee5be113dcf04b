// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package agent provides the agents composing an agent tree.
//
//   - LLMAgent asks a model what to do, runs the tools it calls and transfers control to other agents.
//   - SequentialAgent runs its sub-agents once each, in order.
//   - LoopAgent runs its sub-agents in order until one of them escalates.
//   - ParallelAgent runs its sub-agents concurrently on isolated branches.
//
// Every agent embeds [types.BaseAgent], which wires the tree and runs the
// before and after agent callbacks around the agent body.
//
// # Basic Usage
//
//	researcher, err := agent.NewLLMAgent(ctx, "researcher",
//		agent.WithModelName("gemini-2.0-flash"),
//		agent.WithInstruction("Research the topic {topic}."),
//		agent.WithTools(search),
//		agent.WithOutputKey("research"),
//	)
//	if err != nil {
//		return err
//	}
//	writer, err := agent.NewLLMAgent(ctx, "writer",
//		agent.WithModelName("gemini-2.0-flash"),
//		agent.WithInstruction("Write a short article from {research}."),
//	)
//	if err != nil {
//		return err
//	}
//	pipeline, err := agent.NewSequentialAgent("pipeline", types.WithSubAgents(researcher, writer))
//
// An LLM agent without a model uses the model of its nearest LLM ancestor.
//
// Events are streamed through iterators and are usually consumed via a runner:
//
//	for event, err := range pipeline.Run(ctx, ictx) {
//		if err != nil {
//			return err
//		}
//		fmt.Println(event.GetContent())
//	}
package agent
