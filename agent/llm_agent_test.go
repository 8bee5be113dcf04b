// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/agent"
	"github.com/zshehov/adk-python-sub001/internal/adktest"
	"github.com/zshehov/adk-python-sub001/session"
	"github.com/zshehov/adk-python-sub001/tool"
	"github.com/zshehov/adk-python-sub001/tool/tools"
	"github.com/zshehov/adk-python-sub001/types"
)

func newLLMAgent(t *testing.T, name string, opts ...agent.LLMAgentOption) *agent.LLMAgent {
	t.Helper()

	a, err := agent.NewLLMAgent(t.Context(), name, opts...)
	if err != nil {
		t.Fatalf("NewLLMAgent(%q): %v", name, err)
	}
	return a
}

func noop(context.Context, map[string]any, *types.ToolContext) (any, error) {
	return nil, nil
}

var objectSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"n": {Type: genai.TypeInteger},
	},
}

func TestNewLLMAgentErrors(t *testing.T) {
	tests := map[string]struct {
		name    string
		opts    func(t *testing.T) []agent.LLMAgentOption
		wantErr error
	}{
		"reserved name": {
			name:    types.AuthorUser,
			wantErr: types.ErrInvalidAgentName,
		},
		"name is not an identifier": {
			name:    "my-agent",
			wantErr: types.ErrInvalidAgentName,
		},
		"duplicated sub-agent names": {
			name: "root",
			opts: func(t *testing.T) []agent.LLMAgentOption {
				return []agent.LLMAgentOption{
					agent.WithSubAgents(newLLMAgent(t, "child"), newLLMAgent(t, "child")),
				}
			},
			wantErr: types.ErrDuplicateSubAgent,
		},
		"sub-agent with a parent": {
			name: "root",
			opts: func(t *testing.T) []agent.LLMAgentOption {
				child := newLLMAgent(t, "child")
				newLLMAgent(t, "other_parent", agent.WithSubAgents(child))
				return []agent.LLMAgentOption{agent.WithSubAgents(child)}
			},
			wantErr: types.ErrAgentAlreadyHasParent,
		},
		"output schema with tools": {
			name: "root",
			opts: func(*testing.T) []agent.LLMAgentOption {
				return []agent.LLMAgentOption{
					agent.WithOutputSchema(objectSchema),
					agent.WithFunction("noop", "Does nothing.", noop),
				}
			},
		},
		"output schema with sub-agents": {
			name: "root",
			opts: func(t *testing.T) []agent.LLMAgentOption {
				return []agent.LLMAgentOption{
					agent.WithOutputSchema(objectSchema),
					agent.WithSubAgents(newLLMAgent(t, "child")),
				}
			},
		},
		"tools in the generate content config": {
			name: "root",
			opts: func(*testing.T) []agent.LLMAgentOption {
				return []agent.LLMAgentOption{
					agent.WithGenerateContentConfig(&genai.GenerateContentConfig{Tools: []*genai.Tool{{}}}),
				}
			},
		},
		"system instruction in the generate content config": {
			name: "root",
			opts: func(*testing.T) []agent.LLMAgentOption {
				return []agent.LLMAgentOption{
					agent.WithGenerateContentConfig(&genai.GenerateContentConfig{
						SystemInstruction: genai.NewContentFromText("be brief", genai.RoleUser),
					}),
				}
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var opts []agent.LLMAgentOption
			if tt.opts != nil {
				opts = tt.opts(t)
			}

			_, err := agent.NewLLMAgent(t.Context(), tt.name, opts...)
			if err == nil {
				t.Fatal("NewLLMAgent() succeeded, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("NewLLMAgent() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestOutputSchemaDisablesTransfers(t *testing.T) {
	a := newLLMAgent(t, "structured", agent.WithOutputSchema(objectSchema))

	if !a.DisallowTransferToParent() || !a.DisallowTransferToPeers() {
		t.Errorf("transfers allowed with an output schema: parent=%t peers=%t",
			!a.DisallowTransferToParent(), !a.DisallowTransferToPeers())
	}
}

func TestCanonicalModelInheritance(t *testing.T) {
	model := adktest.NewModel()
	child := newLLMAgent(t, "child")
	newLLMAgent(t, "root", agent.WithModel(model), agent.WithSubAgents(child))

	got, err := child.CanonicalModel(t.Context())
	if err != nil {
		t.Fatalf("CanonicalModel() error = %v", err)
	}
	if got != model {
		t.Errorf("CanonicalModel() = %v, want the model of the parent", got)
	}

	orphan := newLLMAgent(t, "orphan")
	if _, err := orphan.CanonicalModel(t.Context()); !errors.Is(err, types.ErrModelNotFound) {
		t.Errorf("CanonicalModel() error = %v, want %v", err, types.ErrModelNotFound)
	}
}

func TestCanonicalInstruction(t *testing.T) {
	ses := session.NewSession("app", "user", "session", nil, time.Now())
	rctx := types.NewReadOnlyContext(types.NewInvocationContext(nil, ses, nil))

	tests := map[string]struct {
		opt        agent.LLMAgentOption
		want       string
		wantBypass bool
	}{
		"unset": {
			opt: agent.WithDescription("no instruction"),
		},
		"template": {
			opt:  agent.WithInstruction("Talk about {topic}."),
			want: "Talk about {topic}.",
		},
		"provider": {
			opt: agent.WithInstruction(types.InstructionProvider(func(*types.ReadOnlyContext) string {
				return "Keep {braces}."
			})),
			want:       "Keep {braces}.",
			wantBypass: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			a := newLLMAgent(t, "assistant", tt.opt)

			got, bypass, err := a.CanonicalInstruction(rctx)
			if err != nil {
				t.Fatalf("CanonicalInstruction() error = %v", err)
			}
			if got != tt.want || bypass != tt.wantBypass {
				t.Errorf("CanonicalInstruction() = (%q, %t), want (%q, %t)", got, bypass, tt.want, tt.wantBypass)
			}
		})
	}
}

func TestCanonicalToolsExpandsToolsets(t *testing.T) {
	toolset := tool.NewToolset([]types.Tool{
		tools.NewFunctionTool("hidden", "Filtered out.", noop),
		tools.NewFunctionTool("second", "Second tool.", noop),
	}, tool.WithFilter(tool.Names("second")))
	a := newLLMAgent(t, "root",
		agent.WithFunction("first", "First tool.", noop),
		agent.WithToolsets(toolset),
		agent.WithTools(tools.NewExitLoopTool()),
	)

	ses := session.NewSession("app", "user", "session", nil, time.Now())
	got, err := a.CanonicalTools(t.Context(), types.NewReadOnlyContext(types.NewInvocationContext(a, ses, nil)))
	if err != nil {
		t.Fatalf("CanonicalTools() error = %v", err)
	}
	var names []string
	for _, resolved := range got {
		names = append(names, resolved.Name())
	}
	if diff := cmp.Diff([]string{"first", "second", tools.ExitLoopToolName}, names); diff != "" {
		t.Errorf("tool names mismatch (-want +got):\n%s", diff)
	}
}

func TestOutputKeySavesFinalReply(t *testing.T) {
	model := adktest.NewModel(adktest.TextResponse("42"))
	root := newLLMAgent(t, "root", agent.WithModel(model), agent.WithOutputKey("answer"))

	r := adktest.NewRunner(t, root, nil)
	events := r.Run(t, t.Context(), "what is the answer?")

	if got := events[0].Actions.StateDelta["answer"]; got != "42" {
		t.Errorf("state delta answer = %v, want %q", got, "42")
	}
	if got := r.StoredSession(t, t.Context()).State()["answer"]; got != "42" {
		t.Errorf("stored state answer = %v, want %q", got, "42")
	}
}

func TestOutputSchemaDecodesReply(t *testing.T) {
	model := adktest.NewModel(adktest.TextResponse(`{"n": 1}`))
	root := newLLMAgent(t, "root",
		agent.WithModel(model),
		agent.WithOutputSchema(objectSchema),
		agent.WithOutputKey("result"),
	)

	r := adktest.NewRunner(t, root, nil)
	r.Run(t, t.Context(), "count")

	want := map[string]any{"n": float64(1)}
	if diff := cmp.Diff(want, r.StoredSession(t, t.Context()).State()["result"]); diff != "" {
		t.Errorf("stored result mismatch (-want +got):\n%s", diff)
	}
}

func TestOutputSchemaRejectsInvalidReply(t *testing.T) {
	model := adktest.NewModel(adktest.TextResponse("not json"))
	root := newLLMAgent(t, "root",
		agent.WithModel(model),
		agent.WithOutputSchema(objectSchema),
		agent.WithOutputKey("result"),
	)

	r := adktest.NewRunner(t, root, nil)
	var gotErr error
	for _, err := range r.InMemoryRunner.Run(t.Context(), r.Session.UserID(), r.Session.ID(), genai.NewContentFromText("count", genai.RoleUser), nil) {
		if err != nil {
			gotErr = err
			break
		}
	}
	if gotErr == nil {
		t.Fatal("Run() succeeded with a reply that is not JSON")
	}
}
