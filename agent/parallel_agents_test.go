// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent_test

import (
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zshehov/adk-python-sub001/agent"
	"github.com/zshehov/adk-python-sub001/internal/adktest"
	"github.com/zshehov/adk-python-sub001/types"
)

func authoredRun(author string, n int) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		for range n {
			if !yield(types.NewEvent().WithAuthor(author), nil) {
				return
			}
		}
	}
}

func TestMergeAgentRun(t *testing.T) {
	runs := []iter.Seq2[*types.Event, error]{
		authoredRun("a", 3),
		authoredRun("b", 2),
	}

	got := make(map[string][]string)
	for event, err := range agent.MergeAgentRun(t.Context(), runs) {
		if err != nil {
			t.Fatal(err)
		}
		got[event.Author] = append(got[event.Author], event.ID)
	}

	if len(got["a"]) != 3 || len(got["b"]) != 2 {
		t.Errorf("got %d events of a and %d of b, want 3 and 2", len(got["a"]), len(got["b"]))
	}
}

func TestMergeAgentRunStopsOnError(t *testing.T) {
	errBoom := errors.New("boom")
	failing := func(yield func(*types.Event, error) bool) {
		yield(nil, errBoom)
	}

	var gotErr error
	for _, err := range agent.MergeAgentRun(t.Context(), []iter.Seq2[*types.Event, error]{authoredRun("a", 1), failing}) {
		if err != nil {
			gotErr = err
		}
	}
	if !errors.Is(gotErr, errBoom) {
		t.Errorf("MergeAgentRun() error = %v, want %v", gotErr, errBoom)
	}
}

func TestMergeAgentRunEarlyStop(t *testing.T) {
	runs := []iter.Seq2[*types.Event, error]{
		authoredRun("a", 100),
		authoredRun("b", 100),
	}

	count := 0
	for _, err := range agent.MergeAgentRun(t.Context(), runs) {
		if err != nil {
			t.Fatal(err)
		}
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("consumed %d events, want 3", count)
	}
}

func TestParallelAgentIsolatesBranches(t *testing.T) {
	alphaModel := adktest.NewModel(adktest.TextResponse("from alpha"))
	betaModel := adktest.NewModel(adktest.TextResponse("from beta"))
	alpha := newLLMAgent(t, "alpha", agent.WithModel(alphaModel))
	beta := newLLMAgent(t, "beta", agent.WithModel(betaModel))

	fanout, err := agent.NewParallelAgent("fanout", types.WithSubAgents(alpha, beta))
	if err != nil {
		t.Fatal(err)
	}

	events := adktest.NewRunner(t, fanout, nil).Run(t, t.Context(), "go")

	summary := adktest.Summarize(events)
	slices.Sort(summary)
	if diff := cmp.Diff([]string{"alpha: from alpha", "beta: from beta"}, summary); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	branches := make(map[string]string)
	for _, event := range events {
		branches[event.Author] = event.Branch
	}
	wantBranches := map[string]string{"alpha": "fanout.alpha", "beta": "fanout.beta"}
	if diff := cmp.Diff(wantBranches, branches); diff != "" {
		t.Errorf("branches mismatch (-want +got):\n%s", diff)
	}

	for name, model := range map[string]*adktest.Model{"alpha": alphaModel, "beta": betaModel} {
		requests := model.Requests()
		if len(requests) != 1 {
			t.Fatalf("%s called its model %d times, want 1", name, len(requests))
		}
		if got := len(requests[0].Contents); got != 1 {
			t.Errorf("%s saw %d contents, want only the user message", name, got)
		}
	}
}
