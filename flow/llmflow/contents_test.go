// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/agent"
	"github.com/zshehov/adk-python-sub001/flow/llmflow"
	"github.com/zshehov/adk-python-sub001/internal/adktest"
	"github.com/zshehov/adk-python-sub001/session"
	"github.com/zshehov/adk-python-sub001/types"
)

func newEvent(author, branch string, parts ...*genai.Part) *types.Event {
	role := genai.Role(genai.RoleModel)
	if author == types.AuthorUser {
		role = genai.RoleUser
	}
	return types.NewEvent().
		WithAuthor(author).
		WithBranch(branch).
		WithContent(genai.NewContentFromParts(parts, role))
}

func callPart(id, name string, args map[string]any) *genai.Part {
	return &genai.Part{FunctionCall: &genai.FunctionCall{ID: id, Name: name, Args: args}}
}

func responsePart(id, name string, response map[string]any) *genai.Part {
	return &genai.Part{FunctionResponse: &genai.FunctionResponse{ID: id, Name: name, Response: response}}
}

func summarizeContents(contents []*genai.Content) []string {
	var lines []string
	for _, content := range contents {
		for _, part := range adktest.SummarizeContent(content) {
			lines = append(lines, content.Role+": "+part)
		}
	}
	return lines
}

func TestGetContents(t *testing.T) {
	tests := map[string]struct {
		branch string
		agent  string
		events []*types.Event
		want   []string
	}{
		"events of other branches are hidden": {
			branch: "root.worker_a",
			agent:  "worker_a",
			events: []*types.Event{
				newEvent(types.AuthorUser, "", genai.NewPartFromText("go")),
				newEvent("worker_a", "root.worker_a", genai.NewPartFromText("from a")),
				newEvent("worker_b", "root.worker_b", genai.NewPartFromText("from b")),
				newEvent(types.AuthorUser, "root", genai.NewPartFromText("shared")),
			},
			want: []string{
				"user: go",
				"model: from a",
				"user: shared",
			},
		},
		"replies of other agents become context": {
			agent: "writer",
			events: []*types.Event{
				newEvent(types.AuthorUser, "", genai.NewPartFromText("write")),
				newEvent("researcher", "",
					genai.NewPartFromText("found it"),
					callPart("c1", "search", map[string]any{"q": "go"}),
				),
				newEvent("researcher", "", responsePart("c1", "search", map[string]any{"result": "ok"})),
			},
			want: []string{
				"user: write",
				"user: For context:",
				"user: [researcher] said: found it",
				"user: [researcher] called tool `search` with parameters: {\"q\":\"go\"}",
				"user: For context:",
				"user: [researcher] `search` tool returned result: {\"result\":\"ok\"}",
			},
		},
		"empty and credential events are dropped": {
			agent: "root",
			events: []*types.Event{
				newEvent(types.AuthorUser, "", genai.NewPartFromText("hi")),
				types.NewEvent().WithAuthor("root"),
				newEvent("root", "", callPart("adk-1", llmflow.RequestEUCFunctionCallName, nil)),
				newEvent(types.AuthorUser, "", responsePart("adk-1", llmflow.RequestEUCFunctionCallName, nil)),
				newEvent("root", "", genai.NewPartFromText("hello")),
			},
			want: []string{
				"user: hi",
				"model: hello",
			},
		},
		"latest response moves next to its call": {
			agent: "root",
			events: []*types.Event{
				newEvent(types.AuthorUser, "", genai.NewPartFromText("approve")),
				newEvent("root", "", callPart("c1", "approve", nil)),
				newEvent("root", "", genai.NewPartFromText("waiting")),
				newEvent(types.AuthorUser, "", responsePart("c1", "approve", map[string]any{"ok": true})),
			},
			want: []string{
				"user: approve",
				"model: call approve {}",
				`user: response approve {"ok":true}`,
			},
		},
		"async responses in history move next to their calls": {
			agent: "root",
			events: []*types.Event{
				newEvent(types.AuthorUser, "", genai.NewPartFromText("start")),
				newEvent("root", "", callPart("c1", "job", nil), callPart("c2", "job", nil)),
				newEvent("root", "", genai.NewPartFromText("started")),
				newEvent(types.AuthorUser, "", responsePart("c1", "job", map[string]any{"n": 1})),
				newEvent(types.AuthorUser, "", responsePart("c2", "job", map[string]any{"n": 2})),
				newEvent("root", "", genai.NewPartFromText("all done")),
			},
			want: []string{
				"user: start",
				"model: call job {}",
				"model: call job {}",
				`user: response job {"n":1}`,
				`user: response job {"n":2}`,
				"model: started",
				"model: all done",
			},
		},
		"repeated responses to one call keep the latest": {
			agent: "root",
			events: []*types.Event{
				newEvent(types.AuthorUser, "", genai.NewPartFromText("start")),
				newEvent("root", "", callPart("c1", "job", nil)),
				newEvent(types.AuthorUser, "", responsePart("c1", "job", map[string]any{"status": "running"})),
				newEvent("root", "", genai.NewPartFromText("still running")),
				newEvent(types.AuthorUser, "", responsePart("c1", "job", map[string]any{"status": "done"})),
			},
			want: []string{
				"user: start",
				"model: call job {}",
				`user: response job {"status":"done"}`,
			},
		},
		"later response in history replaces the earlier one": {
			agent: "root",
			events: []*types.Event{
				newEvent(types.AuthorUser, "", genai.NewPartFromText("start")),
				newEvent("root", "", callPart("c1", "job", nil)),
				newEvent(types.AuthorUser, "", responsePart("c1", "job", map[string]any{"status": "running"})),
				newEvent("root", "", genai.NewPartFromText("still running")),
				newEvent(types.AuthorUser, "", responsePart("c1", "job", map[string]any{"status": "done"})),
				newEvent("root", "", genai.NewPartFromText("finished")),
			},
			want: []string{
				"user: start",
				"model: call job {}",
				`user: response job {"status":"done"}`,
				"model: still running",
				"model: finished",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			contents, err := llmflow.GetContents(tt.branch, tt.events, tt.agent)
			if err != nil {
				t.Fatalf("GetContents() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, summarizeContents(contents)); diff != "" {
				t.Errorf("contents mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGetContentsRemovesClientIDs(t *testing.T) {
	events := []*types.Event{
		newEvent(types.AuthorUser, "", genai.NewPartFromText("hi")),
		newEvent("root", "", callPart("adk-1", "echo", nil), callPart("server-id", "echo", nil)),
	}

	contents, err := llmflow.GetContents("", events, "root")
	if err != nil {
		t.Fatal(err)
	}
	parts := contents[1].Parts
	if got := parts[0].FunctionCall.ID; got != "" {
		t.Errorf("client id = %q, want it removed", got)
	}
	if got := parts[1].FunctionCall.ID; got != "server-id" {
		t.Errorf("server id = %q, want it kept", got)
	}
	if got := events[1].GetFunctionCalls()[0].ID; got != "adk-1" {
		t.Errorf("session event was modified, call id = %q", got)
	}
}

func TestGetContentsResponseWithoutCall(t *testing.T) {
	events := []*types.Event{
		newEvent(types.AuthorUser, "", genai.NewPartFromText("hi")),
		newEvent("root", "", genai.NewPartFromText("hello")),
		newEvent(types.AuthorUser, "", responsePart("c9", "echo", nil)),
	}

	if _, err := llmflow.GetContents("", events, "root"); err == nil {
		t.Fatal("GetContents() succeeded for a response without call")
	}
}

func TestGetContentsFilterIsIdempotent(t *testing.T) {
	visible := []*types.Event{
		newEvent(types.AuthorUser, "", genai.NewPartFromText("go")),
		newEvent("worker_a", "root.worker_a", genai.NewPartFromText("from a")),
		newEvent("worker_a", "root.worker_a", callPart("c1", "echo", map[string]any{"text": "x"})),
		newEvent("worker_a", "root.worker_a", responsePart("c1", "echo", map[string]any{"result": "x"})),
	}
	history := []*types.Event{
		visible[0],
		newEvent("worker_b", "root.worker_b", genai.NewPartFromText("from b")),
		types.NewEvent().WithAuthor("worker_a").WithBranch("root.worker_a"),
		visible[1],
		newEvent("worker_a", "root.worker_a", callPart("adk-9", llmflow.RequestEUCFunctionCallName, nil)),
		visible[2],
		visible[3],
	}

	all, err := llmflow.GetContents("root.worker_a", history, "worker_a")
	if err != nil {
		t.Fatal(err)
	}
	onlyVisible, err := llmflow.GetContents("root.worker_a", visible, "worker_a")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(summarizeContents(onlyVisible), summarizeContents(all)); diff != "" {
		t.Errorf("hidden events changed the contents (-visible +all):\n%s", diff)
	}

	again, err := llmflow.GetContents("root.worker_a", history, "worker_a")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(summarizeContents(all), summarizeContents(again)); diff != "" {
		t.Errorf("second assembly differs (-first +second):\n%s", diff)
	}
}

func TestContentLLMRequestProcessor(t *testing.T) {
	tests := map[string]struct {
		agent func(t *testing.T) types.Agent
		want  []string
	}{
		"default history": {
			agent: func(t *testing.T) types.Agent {
				return newLLMAgent(t, "root", agent.WithModel(adktest.NewModel()))
			},
			want: []string{"user: hi", "model: hello", "user: again"},
		},
		"include contents none": {
			agent: func(t *testing.T) types.Agent {
				return newLLMAgent(t, "root",
					agent.WithModel(adktest.NewModel()),
					agent.WithIncludeContents(types.IncludeContentsNone),
				)
			},
			want: nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ses := session.NewSession("app", "user", "session", map[string]any{}, time.Now())
			ses.AddEvent(
				newEvent(types.AuthorUser, "", genai.NewPartFromText("hi")),
				newEvent("root", "", genai.NewPartFromText("hello")),
				newEvent(types.AuthorUser, "", genai.NewPartFromText("again")),
			)
			ictx := types.NewInvocationContext(tt.agent(t), ses, nil)

			request := &types.LLMRequest{}
			for _, err := range (&llmflow.ContentLLMRequestProcessor{}).Run(t.Context(), ictx, request) {
				if err != nil {
					t.Fatal(err)
				}
			}
			if request.Contents == nil {
				t.Fatal("contents not set")
			}
			if diff := cmp.Diff(tt.want, summarizeContents(request.Contents)); diff != "" {
				t.Errorf("contents mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
