// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cenkalti/backoff/v5"

	"github.com/zshehov/adk-python-sub001/tool/tools"
	"github.com/zshehov/adk-python-sub001/types"
)

var errFlaky = errors.New("flaky")

func flakyTool(failures int, calls *int, err error) *tools.FunctionTool {
	return tools.NewFunctionTool("flaky", "Fails a few times.",
		func(context.Context, map[string]any, *types.ToolContext) (any, error) {
			*calls++
			if *calls <= failures {
				return nil, err
			}
			return "ok", nil
		})
}

func zeroBackOff() backoff.BackOff {
	return &backoff.ZeroBackOff{}
}

func TestRetryTool(t *testing.T) {
	tests := map[string]struct {
		failures  int
		err       error
		opts      []tools.RetryToolOption
		want      any
		wantErr   error
		wantCalls int
	}{
		"SucceedsAfterRetries": {
			failures:  2,
			err:       errFlaky,
			want:      "ok",
			wantCalls: 3,
		},
		"GivesUp": {
			failures:  5,
			err:       errFlaky,
			wantErr:   errFlaky,
			wantCalls: 3,
		},
		"MaxTries": {
			failures:  5,
			err:       errFlaky,
			opts:      []tools.RetryToolOption{tools.WithMaxTries(5)},
			wantErr:   errFlaky,
			wantCalls: 5,
		},
		"NotRetryable": {
			failures: 5,
			err:      errFlaky,
			opts: []tools.RetryToolOption{
				tools.WithRetryable(func(err error) bool { return !errors.Is(err, errFlaky) }),
			},
			wantErr:   errFlaky,
			wantCalls: 1,
		},
		"Canceled": {
			failures:  5,
			err:       context.Canceled,
			wantErr:   context.Canceled,
			wantCalls: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var calls int
			opts := append([]tools.RetryToolOption{tools.WithBackOff(zeroBackOff)}, tt.opts...)
			rt := tools.NewRetryTool(flakyTool(tt.failures, &calls, tt.err), opts...)

			got, err := rt.Run(t.Context(), map[string]any{}, newToolContext(t))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got != tt.want {
				t.Errorf("Run() = %v, want %v", got, tt.want)
			}
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryToolReplacesToolMapEntry(t *testing.T) {
	var calls int
	rt := tools.NewRetryTool(flakyTool(0, &calls, nil))

	request := types.NewLLMRequest(nil)
	if err := rt.ProcessLLMRequest(t.Context(), newToolContext(t), request); err != nil {
		t.Fatal(err)
	}
	if request.ToolMap["flaky"] != types.Tool(rt) {
		t.Errorf("ToolMap[flaky] = %T, want *tools.RetryTool", request.ToolMap["flaky"])
	}
	if got := request.Config.Tools[0].FunctionDeclarations[0].Name; got != "flaky" {
		t.Errorf("declaration name = %q, want flaky", got)
	}
}
