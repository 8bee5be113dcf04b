// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zshehov/adk-python-sub001/types"
)

func TestStateSetRecordsDelta(t *testing.T) {
	value := map[string]any{"a": 1}
	state := types.NewState(value, nil)

	if state.HasDelta() {
		t.Fatal("new state has delta")
	}

	state.Set("b", 2)
	if got, ok := state.Get("b"); !ok || got != 2 {
		t.Errorf("Get(b) = %v, %v", got, ok)
	}
	if value["b"] != 2 {
		t.Errorf("value map not updated: %v", value)
	}
	if diff := cmp.Diff(map[string]any{"b": 2}, state.Delta()); diff != "" {
		t.Errorf("Delta() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"a": 1, "b": 2}, state.ToMap()); diff != "" {
		t.Errorf("ToMap() mismatch (-want +got):\n%s", diff)
	}

	state.ClearDelta()
	if state.HasDelta() {
		t.Error("HasDelta() after ClearDelta")
	}
	if got := state.GetWithDefault("missing", "dflt"); got != "dflt" {
		t.Errorf("GetWithDefault = %v", got)
	}
}

func TestSplitStateDelta(t *testing.T) {
	app, user, session := types.SplitStateDelta(map[string]any{
		"app:theme":  "dark",
		"user:name":  "ada",
		"temp:token": "secret",
		"count":      3,
		"a:literal":  true,
	})

	if diff := cmp.Diff(map[string]any{"theme": "dark"}, app); diff != "" {
		t.Errorf("app mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"name": "ada"}, user); diff != "" {
		t.Errorf("user mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]any{"count": 3, "a:literal": true}, session); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}
}
