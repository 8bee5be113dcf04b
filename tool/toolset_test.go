// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tool_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/zshehov/adk-python-sub001/session"
	"github.com/zshehov/adk-python-sub001/tool"
	"github.com/zshehov/adk-python-sub001/types"
)

type closingTool struct {
	*tool.Tool
	err    error
	closed bool
}

func (t *closingTool) Close() error {
	t.closed = true
	return t.err
}

func toolNames(tools []types.Tool) []string {
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Name())
	}
	return names
}

func TestToolsetGetTools(t *testing.T) {
	all := []types.Tool{
		tool.NewTool("search", "", false),
		tool.NewTool("fetch", "", false),
		tool.NewTool("delete", "", false),
	}
	ses := session.NewSession("app", "user", "session", nil, time.Now())
	rctx := types.NewReadOnlyContext(types.NewInvocationContext(nil, ses, nil))

	tests := map[string]struct {
		opts []tool.ToolsetOption
		want []string
	}{
		"NoFilter": {
			want: []string{"search", "fetch", "delete"},
		},
		"Names": {
			opts: []tool.ToolsetOption{tool.WithFilter(tool.Names("fetch", "search"))},
			want: []string{"search", "fetch"},
		},
		"NoneSelected": {
			opts: []tool.ToolsetOption{tool.WithFilter(tool.Names("unknown"))},
			want: []string{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := tool.NewToolset(all, tt.opts...).GetTools(t.Context(), rctx)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, toolNames(got)); diff != "" {
				t.Errorf("GetTools() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToolsetClose(t *testing.T) {
	errClose := errors.New("close failed")
	first := &closingTool{Tool: tool.NewTool("first", "", false)}
	second := &closingTool{Tool: tool.NewTool("second", "", false), err: errClose}

	ts := tool.NewToolset([]types.Tool{first, tool.NewTool("plain", "", false), second})
	if err := ts.Close(); !errors.Is(err, errClose) {
		t.Errorf("Close() = %v, want %v", err, errClose)
	}
	if !first.closed || !second.closed {
		t.Error("not every closer was closed")
	}
}

func TestToolRunNotImplemented(t *testing.T) {
	base := tool.NewTool("base", "A base tool.", false)
	if _, err := base.Run(t.Context(), nil, nil); err == nil {
		t.Error("Run() succeeded on a tool without an implementation")
	}
	if base.GetDeclaration() != nil {
		t.Error("GetDeclaration() != nil for a tool without a declaration")
	}
}
