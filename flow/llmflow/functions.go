// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/pkg/logging"
	"github.com/zshehov/adk-python-sub001/telemetry"
	"github.com/zshehov/adk-python-sub001/types"
	"github.com/zshehov/adk-python-sub001/types/py"
)

const (
	// FunctionCallIDPrefix prefixes the function call ids generated on the client side.
	FunctionCallIDPrefix = "adk-"

	// RequestEUCFunctionCallName is the name of the function call asking the client for end-user credentials.
	RequestEUCFunctionCallName = "adk_request_credential"
)

// GenerateClientFunctionCallID generates a unique function call ID for the client.
func GenerateClientFunctionCallID() string {
	return FunctionCallIDPrefix + uuid.NewString()
}

// PopulateClientFunctionCallID assigns a client id to every function call of event that has none.
func PopulateClientFunctionCallID(event *types.Event) {
	for _, call := range event.GetFunctionCalls() {
		if call.ID == "" {
			call.ID = GenerateClientFunctionCallID()
		}
	}
}

// RemoveClientFunctionCallID clears the client generated ids from the function calls and responses of content.
//
// content is modified in place.
func RemoveClientFunctionCallID(content *genai.Content) {
	if content == nil {
		return
	}
	for _, part := range content.Parts {
		if part == nil {
			continue
		}
		if part.FunctionCall != nil && strings.HasPrefix(part.FunctionCall.ID, FunctionCallIDPrefix) {
			part.FunctionCall.ID = ""
		}
		if part.FunctionResponse != nil && strings.HasPrefix(part.FunctionResponse.ID, FunctionCallIDPrefix) {
			part.FunctionResponse.ID = ""
		}
	}
}

// GetLongRunningFunctionCalls returns the ids of the calls that target long running tools.
func GetLongRunningFunctionCalls(calls []*genai.FunctionCall, toolsDict map[string]types.Tool) py.Set[string] {
	ids := py.NewSet[string]()
	for _, call := range calls {
		if tool, ok := toolsDict[call.Name]; ok && tool != nil && tool.IsLongRunning() {
			ids.Insert(call.ID)
		}
	}
	return ids
}

// GenerateAuthEvent returns the event asking the client for the credentials requested
// while handling funcResponseEvent, or nil when no credential was requested.
//
// Each requested auth config becomes one long running adk_request_credential call.
func GenerateAuthEvent(ictx *types.InvocationContext, funcResponseEvent *types.Event) (*types.Event, error) {
	if funcResponseEvent.Actions == nil || len(funcResponseEvent.Actions.RequestedAuthConfigs) == 0 {
		return nil, nil
	}

	requested := funcResponseEvent.Actions.RequestedAuthConfigs
	longRunningIDs := py.NewSet[string]()
	parts := make([]*genai.Part, 0, len(requested))
	for _, callID := range slices.Sorted(maps.Keys(requested)) {
		args, err := (&types.AuthToolArguments{
			FunctionCallID: callID,
			AuthConfig:     requested[callID],
		}).ToMap()
		if err != nil {
			return nil, fmt.Errorf("encoding auth request of %s: %w", callID, err)
		}

		call := &genai.FunctionCall{
			ID:   GenerateClientFunctionCallID(),
			Name: RequestEUCFunctionCallName,
			Args: args,
		}
		longRunningIDs.Insert(call.ID)
		parts = append(parts, &genai.Part{FunctionCall: call})
	}

	role := genai.RoleModel
	if content := funcResponseEvent.GetContent(); content != nil && content.Role != "" {
		role = content.Role
	}

	return types.NewEvent().
		WithInvocationID(ictx.InvocationID).
		WithAuthor(ictx.Agent.Name()).
		WithBranch(ictx.Branch).
		WithLongRunningToolIDs(longRunningIDs).
		WithContent(&genai.Content{Role: role, Parts: parts}), nil
}

// withoutAuthRequests returns the part of funcResponseEvent answering the calls
// that did not request credentials, or nil when every call requested them.
//
// The responses of the calls waiting for credentials are produced again once the
// client answers the request.
func withoutAuthRequests(funcResponseEvent *types.Event) *types.Event {
	content := funcResponseEvent.GetContent()
	if content == nil {
		return nil
	}
	requested := funcResponseEvent.Actions.RequestedAuthConfigs

	parts := make([]*genai.Part, 0, len(content.Parts))
	for _, part := range content.Parts {
		if part != nil && part.FunctionResponse != nil {
			if _, ok := requested[part.FunctionResponse.ID]; ok {
				continue
			}
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return nil
	}

	out := *funcResponseEvent
	response := *funcResponseEvent.LLMResponse
	response.Content = &genai.Content{Role: content.Role, Parts: parts}
	out.LLMResponse = &response
	actions := *funcResponseEvent.Actions
	actions.RequestedAuthConfigs = make(map[string]*types.AuthConfig)
	out.Actions = &actions
	return &out
}

// HandleFunctionCalls runs the tools called by event and returns the merged function response event.
//
// Calls run concurrently; their responses keep the order of the calls. When
// filter is non-nil only the calls whose id it contains are handled. A nil event
// is returned when there is nothing to respond to.
func HandleFunctionCalls(ctx context.Context, ictx *types.InvocationContext, event *types.Event, toolsDict map[string]types.Tool, filter py.Set[string]) (*types.Event, error) {
	var calls []*genai.FunctionCall
	for _, call := range event.GetFunctionCalls() {
		if filter == nil || filter.Has(call.ID) {
			calls = append(calls, call)
		}
	}
	if len(calls) == 0 {
		return nil, nil
	}

	responses := make([]*types.Event, len(calls))
	g, gctx := errgroup.WithContext(ctx)
	for i, call := range calls {
		g.Go(func() error {
			resp, err := callFunction(gctx, ictx, call, toolsDict)
			if err != nil {
				return err
			}
			responses[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := mergeParallelFunctionResponseEvents(responses)
	if len(responses) > 1 {
		_, span := telemetry.StartToolResponse(ctx, "(merged tools)")
		telemetry.TraceToolResponse(span, ictx, merged.ID, merged)
		span.End()
	}
	return merged, nil
}

// callFunction runs one function call through the tool callbacks and the tool.
func callFunction(ctx context.Context, ictx *types.InvocationContext, call *genai.FunctionCall, toolsDict map[string]types.Tool) (*types.Event, error) {
	toolCtx := types.NewToolContext(ictx).WithFunctionCallID(call.ID)

	tool, ok := toolsDict[call.Name]
	if !ok || tool == nil {
		logging.FromContext(ctx).WarnContext(ctx, "model called an unknown tool",
			slog.String("tool", call.Name),
			slog.String("function_call_id", call.ID),
		)
		response := map[string]any{"error": (&types.ToolNotFoundError{Name: call.Name}).Error()}
		return buildResponseEvent(ictx, toolCtx, call, response), nil
	}

	ctx, span := telemetry.StartToolCall(ctx, tool.Name())
	defer span.End()

	args := maps.Clone(call.Args)
	if args == nil {
		args = make(map[string]any)
	}
	telemetry.TraceToolCall(span, args)

	var (
		beforeCallbacks []types.BeforeToolCallback
		afterCallbacks  []types.AfterToolCallback
	)
	if llmAgent, ok := ictx.Agent.AsLLMAgent(); ok {
		beforeCallbacks = llmAgent.BeforeToolCallbacks()
		afterCallbacks = llmAgent.AfterToolCallbacks()
	}

	response, err := types.RunBeforeToolCallbacks(tool, args, toolCtx, beforeCallbacks)
	if err != nil {
		return nil, fmt.Errorf("before tool callback of %s: %w", tool.Name(), err)
	}
	if response == nil {
		response = runTool(ctx, tool, args, toolCtx)
	}

	altered, err := types.RunAfterToolCallbacks(tool, args, toolCtx, response, afterCallbacks)
	if err != nil {
		return nil, fmt.Errorf("after tool callback of %s: %w", tool.Name(), err)
	}
	if altered != nil {
		response = altered
	}

	event := buildResponseEvent(ictx, toolCtx, call, response)
	telemetry.TraceToolResponse(span, ictx, event.ID, event)
	return event, nil
}

// runTool runs tool and shapes its result as a function response payload.
//
// Errors of the tool become an error payload for the model.
func runTool(ctx context.Context, tool types.Tool, args map[string]any, toolCtx *types.ToolContext) map[string]any {
	result, err := tool.Run(ctx, args, toolCtx)
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "tool failed",
			slog.String("tool", tool.Name()),
			slog.String("function_call_id", toolCtx.FunctionCallID()),
			slog.Any("error", err),
		)
		return map[string]any{"error": err.Error()}
	}

	switch result := result.(type) {
	case nil:
		if tool.IsLongRunning() {
			return map[string]any{"result": "pending"}
		}
		return map[string]any{"result": nil}
	case map[string]any:
		if result == nil {
			return map[string]any{"result": nil}
		}
		return result
	default:
		return map[string]any{"result": result}
	}
}

func buildResponseEvent(ictx *types.InvocationContext, toolCtx *types.ToolContext, call *genai.FunctionCall, response map[string]any) *types.Event {
	part := genai.NewPartFromFunctionResponse(call.Name, response)
	part.FunctionResponse.ID = call.ID

	return types.NewEvent().
		WithInvocationID(ictx.InvocationID).
		WithAuthor(ictx.Agent.Name()).
		WithBranch(ictx.Branch).
		WithActions(toolCtx.Actions()).
		WithContent(&genai.Content{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{part},
		})
}

// mergeParallelFunctionResponseEvents folds the response events of one model turn into a single event.
func mergeParallelFunctionResponseEvents(events []*types.Event) *types.Event {
	if len(events) == 1 {
		return events[0]
	}

	base := events[0]
	var parts []*genai.Part
	actions := types.NewEventActions()
	for _, event := range events {
		if content := event.GetContent(); content != nil {
			parts = append(parts, content.Parts...)
		}
		actions.Merge(event.Actions)
	}

	return types.NewEvent().
		WithInvocationID(base.InvocationID).
		WithAuthor(base.Author).
		WithBranch(base.Branch).
		WithActions(actions).
		WithTimestamp(base.Timestamp).
		WithContent(&genai.Content{
			Role:  genai.RoleUser,
			Parts: parts,
		})
}
