// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types"
)

func responseEvent(invocationID string, responses ...*genai.FunctionResponse) *types.Event {
	parts := make([]*genai.Part, 0, len(responses))
	for _, resp := range responses {
		parts = append(parts, &genai.Part{FunctionResponse: resp})
	}
	return types.NewEvent().
		WithInvocationID(invocationID).
		WithAuthor(types.AuthorUser).
		WithContent(&genai.Content{Role: genai.RoleUser, Parts: parts})
}

func payloads(event *types.Event) map[string]any {
	out := make(map[string]any)
	for _, resp := range event.GetFunctionResponses() {
		out[resp.ID] = resp.Response["status"]
	}
	return out
}

func TestMergeFunctionResponseEvents(t *testing.T) {
	a := responseEvent("inv-1",
		&genai.FunctionResponse{ID: "c1", Name: "job", Response: map[string]any{"status": "running"}},
		&genai.FunctionResponse{ID: "c2", Name: "job", Response: map[string]any{"status": "queued"}},
	)
	b := responseEvent("inv-2",
		&genai.FunctionResponse{ID: "c1", Name: "job", Response: map[string]any{"status": "done"}},
	)

	merged, err := mergeFunctionResponseEvents([]*types.Event{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if merged.InvocationID != "inv-1" {
		t.Errorf("InvocationID = %q, want the first event's %q", merged.InvocationID, "inv-1")
	}
	want := map[string]any{"c1": "done", "c2": "queued"}
	if diff := cmp.Diff(want, payloads(merged)); diff != "" {
		t.Errorf("payloads mismatch (-want +got):\n%s", diff)
	}
	if got := len(merged.GetFunctionResponses()); got != 2 {
		t.Errorf("merged event has %d responses, want 2", got)
	}
	if diff := cmp.Diff(map[string]any{"c1": "running", "c2": "queued"}, payloads(a)); diff != "" {
		t.Errorf("first event was modified (-want +got):\n%s", diff)
	}

	again, err := mergeFunctionResponseEvents([]*types.Event{merged, b})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(payloads(merged), payloads(again)); diff != "" {
		t.Errorf("merging twice changed the payloads (-once +twice):\n%s", diff)
	}
	if len(again.GetFunctionResponses()) != len(merged.GetFunctionResponses()) || again.InvocationID != merged.InvocationID {
		t.Errorf("merging twice changed the event: %d responses, invocation %q", len(again.GetFunctionResponses()), again.InvocationID)
	}
}

func TestMergeFunctionResponseEventsEmpty(t *testing.T) {
	if _, err := mergeFunctionResponseEvents(nil); err == nil {
		t.Error("mergeFunctionResponseEvents(nil) succeeded")
	}
}
