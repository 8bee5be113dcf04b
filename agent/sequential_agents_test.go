// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/agent"
	"github.com/zshehov/adk-python-sub001/internal/adktest"
	"github.com/zshehov/adk-python-sub001/types"
)

func TestSequentialAgentRunsInOrder(t *testing.T) {
	firstModel := adktest.NewModel(adktest.TextResponse("one"))
	secondModel := adktest.NewModel(adktest.TextResponse("two"))
	first := newLLMAgent(t, "first", agent.WithModel(firstModel))
	second := newLLMAgent(t, "second", agent.WithModel(secondModel))

	pipeline, err := agent.NewSequentialAgent("pipeline", types.WithSubAgents(first, second))
	if err != nil {
		t.Fatal(err)
	}

	events := adktest.NewRunner(t, pipeline, nil).Run(t, t.Context(), "go")
	if diff := cmp.Diff([]string{"first: one", "second: two"}, adktest.Summarize(events)); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	requests := secondModel.Requests()
	if len(requests) != 1 {
		t.Fatalf("second agent called its model %d times, want 1", len(requests))
	}
	var got []string
	for _, content := range requests[0].Contents {
		got = append(got, adktest.SummarizeContent(content)...)
	}
	want := []string{"go", "For context:", "[first] said: one"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("second agent contents mismatch (-want +got):\n%s", diff)
	}
}

func TestSequentialAgentContinuesAfterSkippedAgent(t *testing.T) {
	skippedModel := adktest.NewModel()
	skipped := newLLMAgent(t, "skipped",
		agent.WithModel(skippedModel),
		agent.WithBeforeAgentCallbacks(func(*types.CallbackContext) (*genai.Content, error) {
			return genai.NewContentFromText("skipped by callback", genai.RoleModel), nil
		}),
	)
	next := newLLMAgent(t, "next", agent.WithModel(adktest.NewModel(adktest.TextResponse("ran"))))

	pipeline, err := agent.NewSequentialAgent("pipeline", types.WithSubAgents(skipped, next))
	if err != nil {
		t.Fatal(err)
	}

	events := adktest.NewRunner(t, pipeline, nil).Run(t, t.Context(), "go")
	if diff := cmp.Diff([]string{"skipped: skipped by callback", "next: ran"}, adktest.Summarize(events)); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if got := len(skippedModel.Requests()); got != 0 {
		t.Errorf("skipped agent called its model %d times, want 0", got)
	}
}
