// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/go-json-experiment/json"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/tool"
	"github.com/zshehov/adk-python-sub001/types"
)

// Function represents a user-defined function called with the model supplied arguments.
type Function func(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error)

// FunctionTool represents a tool that wraps a user-defined function.
type FunctionTool struct {
	*tool.Tool

	fn         Function
	parameters *genai.Schema
	response   *genai.Schema
}

var _ types.Tool = (*FunctionTool)(nil)

// FunctionToolOption configures a [FunctionTool].
type FunctionToolOption func(*FunctionTool)

// WithParameters sets the schema of the function arguments.
//
// Properties listed in Required are mandatory: a call missing one of them is
// answered with an error payload instead of invoking the function.
func WithParameters(schema *genai.Schema) FunctionToolOption {
	return func(t *FunctionTool) {
		t.parameters = schema
	}
}

// WithResponse sets the schema of the function result.
func WithResponse(schema *genai.Schema) FunctionToolOption {
	return func(t *FunctionTool) {
		t.response = schema
	}
}

// WithLongRunning marks the function as a long running operation.
func WithLongRunning() FunctionToolOption {
	return func(t *FunctionTool) {
		t.SetLongRunning(true)
	}
}

// NewFunctionTool returns the new [FunctionTool] with the given name, description and function.
func NewFunctionTool(name, description string, fn Function, opts ...FunctionToolOption) *FunctionTool {
	t := &FunctionTool{
		Tool: tool.NewTool(name, description, false),
		fn:   fn,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTypedFunctionTool returns a [FunctionTool] whose parameter schema is reflected from Args.
//
// The model arguments are decoded into Args through their JSON form. A struct
// or map Result is returned to the model as a JSON object.
func NewTypedFunctionTool[Args, Result any](name, description string, fn func(ctx context.Context, args Args, toolCtx *types.ToolContext) (Result, error), opts ...FunctionToolOption) (*FunctionTool, error) {
	params, err := SchemaFor[Args]()
	if err != nil {
		return nil, fmt.Errorf("reflecting parameters of %s: %w", name, err)
	}

	wrapped := func(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error) {
		var in Args
		b, err := json.Marshal(args)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(b, &in); err != nil {
			return nil, fmt.Errorf("decoding arguments of %s: %w", name, err)
		}

		out, err := fn(ctx, in, toolCtx)
		if err != nil {
			return nil, err
		}
		return toResponse(out)
	}

	return NewFunctionTool(name, description, wrapped, append([]FunctionToolOption{WithParameters(params)}, opts...)...), nil
}

// toResponse turns structs and maps into a map[string]any; other values are returned as is.
func toResponse(v any) (any, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, nil
	}
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if k := rv.Kind(); k != reflect.Struct && k != reflect.Map {
		return v, nil
	}
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// GetDeclaration implements [types.Tool].
func (t *FunctionTool) GetDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters:  t.parameters,
		Response:    t.response,
	}
}

// Run implements [types.Tool].
func (t *FunctionTool) Run(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error) {
	if missing := t.missingMandatoryArgs(args); len(missing) > 0 {
		return map[string]any{
			"error": fmt.Sprintf("Invoking `%s()` failed as the following mandatory input parameters are not present:\n%s\n"+
				"You could retry calling this tool, but it is IMPORTANT for you to provide all the mandatory parameters.",
				t.Name(), strings.Join(missing, "\n")),
		}, nil
	}

	return t.fn(ctx, maps.Clone(args), toolCtx)
}

func (t *FunctionTool) missingMandatoryArgs(args map[string]any) []string {
	if t.parameters == nil {
		return nil
	}

	var missing []string
	for _, name := range t.parameters.Required {
		if _, ok := args[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// ProcessLLMRequest implements [types.Tool].
func (t *FunctionTool) ProcessLLMRequest(_ context.Context, _ *types.ToolContext, request *types.LLMRequest) error {
	tool.AppendToRequest(t, request)
	return nil
}
