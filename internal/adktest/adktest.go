// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package adktest

import (
	"context"
	"fmt"
	"iter"
	"testing"

	"github.com/go-json-experiment/json"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/runner"
	"github.com/zshehov/adk-python-sub001/types"
)

// TextResponse returns a model response with a single text part.
func TextResponse(text string) *types.LLMResponse {
	return &types.LLMResponse{
		Content: genai.NewContentFromText(text, genai.RoleModel),
	}
}

// FunctionCallResponse returns a model response calling calls.
func FunctionCallResponse(calls ...*genai.FunctionCall) *types.LLMResponse {
	parts := make([]*genai.Part, 0, len(calls))
	for _, call := range calls {
		parts = append(parts, &genai.Part{FunctionCall: call})
	}
	return &types.LLMResponse{
		Content: genai.NewContentFromParts(parts, genai.RoleModel),
	}
}

// Call returns a function call without id; the flow assigns a client id.
func Call(name string, args map[string]any) *genai.FunctionCall {
	return &genai.FunctionCall{Name: name, Args: args}
}

// Summarize renders the contents of events as "author: part" lines.
//
// Function calls render as "call name {args}", function responses as
// "response name {response}", with deterministic JSON.
func Summarize(events []*types.Event) []string {
	var lines []string
	for _, event := range events {
		for _, part := range SummarizeContent(event.GetContent()) {
			lines = append(lines, event.Author+": "+part)
		}
	}
	return lines
}

// SummarizeContent renders each part of content, see [Summarize].
func SummarizeContent(content *genai.Content) []string {
	if content == nil {
		return nil
	}
	var parts []string
	for _, part := range content.Parts {
		switch {
		case part == nil:
		case part.FunctionCall != nil:
			parts = append(parts, "call "+part.FunctionCall.Name+" "+renderJSON(part.FunctionCall.Args))
		case part.FunctionResponse != nil:
			parts = append(parts, "response "+part.FunctionResponse.Name+" "+renderJSON(part.FunctionResponse.Response))
		case part.InlineData != nil:
			parts = append(parts, "blob "+part.InlineData.MIMEType)
		default:
			parts = append(parts, part.Text)
		}
	}
	return parts
}

func renderJSON(v map[string]any) string {
	b, err := json.Marshal(v, json.Deterministic(true))
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// Collect drains seq, failing the test on error.
func Collect(tb testing.TB, seq iter.Seq2[*types.Event, error]) []*types.Event {
	tb.Helper()

	var events []*types.Event
	for event, err := range seq {
		if err != nil {
			tb.Fatalf("unexpected error: %v", err)
		}
		events = append(events, event)
	}
	return events
}

// Runner wraps an in-memory runner bound to one session.
type Runner struct {
	*runner.InMemoryRunner

	Session types.Session
}

// NewRunner returns a [Runner] for agent with a fresh session holding state.
func NewRunner(tb testing.TB, agent types.Agent, state map[string]any, opts ...runner.Option) *Runner {
	tb.Helper()

	r := runner.NewInMemoryRunner("test_app", agent, opts...)
	ses, err := r.Sessions.CreateSession(context.Background(), r.AppName(), "test_user", "", state)
	if err != nil {
		tb.Fatalf("CreateSession: %v", err)
	}
	return &Runner{InMemoryRunner: r, Session: ses}
}

// Run runs the agent for a user text message and returns the emitted events.
func (r *Runner) Run(tb testing.TB, ctx context.Context, text string) []*types.Event {
	tb.Helper()
	return r.RunContent(tb, ctx, genai.NewContentFromText(text, genai.RoleUser))
}

// RunContent runs the agent for content and returns the emitted events.
func (r *Runner) RunContent(tb testing.TB, ctx context.Context, content *genai.Content) []*types.Event {
	tb.Helper()
	return Collect(tb, r.InMemoryRunner.Run(ctx, r.Session.UserID(), r.Session.ID(), content, types.NewRunConfig()))
}

// StoredSession returns the current copy of the session from the session service.
func (r *Runner) StoredSession(tb testing.TB, ctx context.Context) types.Session {
	tb.Helper()

	ses, err := r.Sessions.GetSession(ctx, r.AppName(), r.Session.UserID(), r.Session.ID(), nil)
	if err != nil {
		tb.Fatalf("GetSession: %v", err)
	}
	return ses
}
