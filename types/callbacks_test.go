// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types_test

import (
	"errors"
	"testing"

	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types"
)

func TestRunAgentCallbacksFirstNonNilWins(t *testing.T) {
	var calls []string
	callback := func(name string, content *genai.Content) types.AgentCallback {
		return func(*types.CallbackContext) (*genai.Content, error) {
			calls = append(calls, name)
			return content, nil
		}
	}

	a := newTextAgent(t, "agent")
	cctx := types.NewCallbackContext(types.NewInvocationContext(a, newFakeSession(), nil))

	got, err := types.RunAgentCallbacks(cctx, []types.AgentCallback{
		callback("nil", nil),
		callback("x", genai.NewContentFromText("X", genai.RoleModel)),
		callback("y", genai.NewContentFromText("Y", genai.RoleModel)),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Parts[0].Text != "X" {
		t.Errorf("result = %q, want %q", got.Parts[0].Text, "X")
	}
	if len(calls) != 2 {
		t.Errorf("invoked %v, want exactly [nil x]", calls)
	}
}

func TestRunBeforeModelCallbacksStopsOnError(t *testing.T) {
	errBoom := errors.New("boom")
	var calls int

	a := newTextAgent(t, "agent")
	cctx := types.NewCallbackContext(types.NewInvocationContext(a, newFakeSession(), nil))

	_, err := types.RunBeforeModelCallbacks(cctx, types.NewLLMRequest(nil), []types.BeforeModelCallback{
		func(*types.CallbackContext, *types.LLMRequest) (*types.LLMResponse, error) {
			calls++
			return nil, errBoom
		},
		func(*types.CallbackContext, *types.LLMRequest) (*types.LLMResponse, error) {
			calls++
			return &types.LLMResponse{}, nil
		},
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("error = %v, want %v", err, errBoom)
	}
	if calls != 1 {
		t.Errorf("invoked %d callbacks, want 1", calls)
	}
}

func TestRunBeforeToolCallbacksMayMutateArgs(t *testing.T) {
	args := map[string]any{"n": 1}

	got, err := types.RunBeforeToolCallbacks(nil, args, nil, []types.BeforeToolCallback{
		func(_ types.Tool, args map[string]any, _ *types.ToolContext) (map[string]any, error) {
			args["n"] = 2
			return nil, nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("result = %v, want nil", got)
	}
	if args["n"] != 2 {
		t.Errorf("args[n] = %v, want 2", args["n"])
	}
}

func TestRunAfterToolCallbacksReplacesResponse(t *testing.T) {
	got, err := types.RunAfterToolCallbacks(nil, nil, nil, map[string]any{"result": "orig"}, []types.AfterToolCallback{
		func(_ types.Tool, _ map[string]any, _ *types.ToolContext, resp map[string]any) (map[string]any, error) {
			return map[string]any{"result": resp["result"].(string) + "!"}, nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got["result"] != "orig!" {
		t.Errorf("result = %v, want orig!", got["result"])
	}
}
