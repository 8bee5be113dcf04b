// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/zshehov/adk-python-sub001/tool/tools"
	"github.com/zshehov/adk-python-sub001/types"
)

// AgentTransferLLMRequestProcessor lists the agents the current agent may transfer to and
// declares the transfer_to_agent tool.
type AgentTransferLLMRequestProcessor struct{}

var _ types.LLMRequestProcessor = (*AgentTransferLLMRequestProcessor)(nil)

// Run implements [types.LLMRequestProcessor].
func (p *AgentTransferLLMRequestProcessor) Run(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		llmAgent, ok := ictx.Agent.AsLLMAgent()
		if !ok {
			return
		}

		targets := TransferTargets(llmAgent)
		if len(targets) == 0 {
			return
		}
		request.AppendInstructions(buildTargetAgentsInstructions(llmAgent, targets))

		transferTool := tools.NewTransferToAgentTool()
		if err := transferTool.ProcessLLMRequest(ctx, types.NewToolContext(ictx), request); err != nil {
			yield(nil, err)
			return
		}
	}
}

// TransferTargets returns the agents llmAgent may transfer to: its sub-agents, then its
// parent and its peers when the parent is an LLM agent and the transfer is allowed.
func TransferTargets(llmAgent types.LLMAgent) []types.Agent {
	targets := append([]types.Agent(nil), llmAgent.SubAgents()...)

	parent := llmAgent.ParentAgent()
	if parent == nil {
		return targets
	}
	if _, ok := parent.AsLLMAgent(); !ok {
		return targets
	}

	if !llmAgent.DisallowTransferToParent() {
		targets = append(targets, parent)
	}
	if !llmAgent.DisallowTransferToPeers() {
		for _, peer := range parent.SubAgents() {
			if peer.Name() != llmAgent.Name() {
				targets = append(targets, peer)
			}
		}
	}
	return targets
}

func buildTargetAgentInfo(target types.Agent) string {
	return fmt.Sprintf("\nAgent name: %s\nAgent description: %s\n", target.Name(), target.Description())
}

func buildTargetAgentsInstructions(llmAgent types.LLMAgent, targets []types.Agent) string {
	infos := make([]string, len(targets))
	for i, target := range targets {
		infos[i] = buildTargetAgentInfo(target)
	}

	si := "\nYou have a list of other agents to transfer to:\n\n" +
		strings.Join(infos, "\n") +
		"\n\n" +
		heredoc.Docf(`
			If you are the best to answer the question according to your description, you
			can answer it.

			If another agent is better for answering the question according to its
			description, call %s function to transfer the
			question to that agent. When transferring, do not generate any text other than
			the function call.
		`, "`"+tools.TransferToAgentToolName+"`")

	if parent := llmAgent.ParentAgent(); parent != nil && !llmAgent.DisallowTransferToParent() {
		si += "\n" + heredoc.Docf(`
			Your parent agent is %s. If neither the other agents nor
			you are best for answering the question according to the descriptions, transfer
			to your parent agent. If you don't have parent agent, try answer by yourself.
		`, parent.Name())
	}
	return si
}
