// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"fmt"

	"github.com/go-json-experiment/json"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/memory"
	"github.com/zshehov/adk-python-sub001/runner"
	"github.com/zshehov/adk-python-sub001/session"
	"github.com/zshehov/adk-python-sub001/tool"
	"github.com/zshehov/adk-python-sub001/types"
)

// agentToolUserID is the user the wrapped agent runs as in its private session.
const agentToolUserID = "tmp_user"

// AgentTool is a [tool.Tool] that wraps an agent.
//
// This tool allows an agent to be called as a tool within a larger application.
// The agent's input schema is used to define the tool's input parameters, and
// the agent's output is returned as the tool's result.
//
// The agent runs in a private in-memory session seeded with the caller's
// state. State deltas flow back to the caller and artifacts are saved in the
// caller's session.
type AgentTool struct {
	*tool.Tool

	agent             types.Agent
	skipSummarization bool
}

var _ types.Tool = (*AgentTool)(nil)

// AgentToolOption configures an [AgentTool].
type AgentToolOption func(*AgentTool)

// WithSkipSummarization makes the calling agent return the agent output without summarizing it.
func WithSkipSummarization(skip bool) AgentToolOption {
	return func(t *AgentTool) {
		t.skipSummarization = skip
	}
}

// NewAgentTool creates a new [AgentTool] named after agent.
func NewAgentTool(agent types.Agent, opts ...AgentToolOption) *AgentTool {
	t := &AgentTool{
		Tool:  tool.NewTool(agent.Name(), agent.Description(), false),
		agent: agent,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *AgentTool) schemas() (input, output *genai.Schema) {
	llmAgent, ok := t.agent.AsLLMAgent()
	if !ok {
		return nil, nil
	}
	return llmAgent.InputSchema(), llmAgent.OutputSchema()
}

// GetDeclaration implements [types.Tool].
func (t *AgentTool) GetDeclaration() *genai.FunctionDeclaration {
	params, _ := t.schemas()
	if params == nil {
		params = &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"request": {Type: genai.TypeString},
			},
			Required: []string{"request"},
		}
	}

	return &genai.FunctionDeclaration{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  params,
	}
}

// Run implements [types.Tool].
func (t *AgentTool) Run(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error) {
	if t.skipSummarization {
		toolCtx.Actions().SkipSummarization = true
	}

	inputSchema, outputSchema := t.schemas()

	var input string
	if inputSchema != nil {
		b, err := json.Marshal(args, json.Deterministic(true))
		if err != nil {
			return nil, fmt.Errorf("encoding input of agent %s: %w", t.agent.Name(), err)
		}
		input = string(b)
	} else {
		request, ok := args["request"].(string)
		if !ok {
			return nil, fmt.Errorf("agent %s: request must be a string, got %T", t.agent.Name(), args["request"])
		}
		input = request
	}

	sessionService := session.NewInMemoryService()
	r := runner.New(t.agent.Name(), t.agent, sessionService,
		runner.WithArtifactService(NewForwardingArtifactService(toolCtx)),
		runner.WithMemoryService(memory.NewInMemoryService()),
	)
	ses, err := sessionService.CreateSession(ctx, t.agent.Name(), agentToolUserID, "", toolCtx.State().ToMap())
	if err != nil {
		return nil, err
	}

	var last *types.Event
	content := genai.NewContentFromText(input, genai.RoleUser)
	for event, err := range r.Run(ctx, ses.UserID(), ses.ID(), content, types.NewRunConfig()) {
		if err != nil {
			return nil, err
		}
		if event.Actions != nil && len(event.Actions.StateDelta) > 0 {
			toolCtx.State().Update(event.Actions.StateDelta)
		}
		last = event
	}

	if last == nil {
		return "", nil
	}
	output := last.GetContent()
	if output == nil || len(output.Parts) == 0 || output.Parts[0].Text == "" {
		return "", nil
	}
	text := output.Parts[0].Text

	if outputSchema != nil {
		var result map[string]any
		if err := json.Unmarshal([]byte(text), &result); err != nil {
			return nil, fmt.Errorf("decoding output of agent %s: %w", t.agent.Name(), err)
		}
		return result, nil
	}
	return text, nil
}

// ProcessLLMRequest implements [types.Tool].
func (t *AgentTool) ProcessLLMRequest(_ context.Context, _ *types.ToolContext, request *types.LLMRequest) error {
	tool.AppendToRequest(t, request)
	return nil
}
