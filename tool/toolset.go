// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"
	"errors"
	"io"
	"slices"

	"github.com/zshehov/adk-python-sub001/types"
)

// Predicate decides whether a tool is exposed to the model in the given context.
type Predicate func(tool types.Tool, rctx *types.ReadOnlyContext) bool

// Names returns a [Predicate] selecting the tools with one of the given names.
func Names(names ...string) Predicate {
	return func(tool types.Tool, _ *types.ReadOnlyContext) bool {
		return slices.Contains(names, tool.Name())
	}
}

// Toolset is a static collection of tools narrowed by an optional [Predicate].
type Toolset struct {
	tools  []types.Tool
	filter Predicate
}

var _ types.Toolset = (*Toolset)(nil)

// ToolsetOption configures a [Toolset].
type ToolsetOption func(*Toolset)

// WithFilter sets the predicate used to select the tools.
func WithFilter(filter Predicate) ToolsetOption {
	return func(ts *Toolset) {
		ts.filter = filter
	}
}

// NewToolset returns a [Toolset] over tools.
func NewToolset(tools []types.Tool, opts ...ToolsetOption) *Toolset {
	ts := &Toolset{
		tools: slices.Clone(tools),
	}
	for _, opt := range opts {
		opt(ts)
	}
	return ts
}

// GetTools implements [types.Toolset].
func (ts *Toolset) GetTools(ctx context.Context, rctx *types.ReadOnlyContext) ([]types.Tool, error) {
	if ts.filter == nil {
		return slices.Clone(ts.tools), nil
	}

	selected := make([]types.Tool, 0, len(ts.tools))
	for _, t := range ts.tools {
		if ts.filter(t, rctx) {
			selected = append(selected, t)
		}
	}
	return selected, nil
}

// Close implements [types.Toolset].
//
// Tools implementing [io.Closer] are closed.
func (ts *Toolset) Close() error {
	var errs []error
	for _, t := range ts.tools {
		if c, ok := t.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
