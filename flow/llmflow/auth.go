// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/zshehov/adk-python-sub001/pkg/logging"
	"github.com/zshehov/adk-python-sub001/types"
	"github.com/zshehov/adk-python-sub001/types/py"
)

// AuthLLMRequestProcessor resumes the tools that waited for end-user credentials.
//
// When the last user event answers adk_request_credential calls, the returned
// credentials are stored in the session state and the original function calls
// are run again. Their response event is yielded before the model is called.
type AuthLLMRequestProcessor struct{}

var _ types.LLMRequestProcessor = (*AuthLLMRequestProcessor)(nil)

// Run implements [types.LLMRequestProcessor].
func (p *AuthLLMRequestProcessor) Run(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		llmAgent, ok := ictx.Agent.AsLLMAgent()
		if !ok {
			return
		}
		events := ictx.Session.Events()
		if len(events) == 0 {
			return
		}

		requestIDs, err := storeAuthResponses(ctx, ictx, events)
		if err != nil {
			yield(nil, err)
			return
		}
		if requestIDs.Len() == 0 {
			return
		}

		for i := len(events) - 2; i >= 0; i-- {
			toolsToResume, err := originalCallIDs(events[i], requestIDs)
			if err != nil {
				yield(nil, err)
				return
			}
			if toolsToResume.Len() == 0 {
				continue
			}

			callEvent := findCallEvent(events[:i], toolsToResume)
			if callEvent == nil {
				return
			}

			tools, err := llmAgent.CanonicalTools(ctx, types.NewReadOnlyContext(ictx))
			if err != nil {
				yield(nil, err)
				return
			}
			toolsDict := make(map[string]types.Tool, len(tools))
			for _, tool := range tools {
				toolsDict[tool.Name()] = tool
			}

			responseEvent, err := HandleFunctionCalls(ctx, ictx, callEvent, toolsDict, toolsToResume)
			if err != nil {
				yield(nil, err)
				return
			}
			if responseEvent != nil {
				yield(responseEvent, nil)
			}
			return
		}
	}
}

// storeAuthResponses stores the credentials answered by the last user event and
// returns the ids of the adk_request_credential calls they answer.
func storeAuthResponses(ctx context.Context, ictx *types.InvocationContext, events []*types.Event) (py.Set[string], error) {
	ids := py.NewSet[string]()

	for i := len(events) - 1; i >= 0; i-- {
		event := events[i]
		if event.Author != types.AuthorUser {
			continue
		}

		state := types.NewCallbackContext(ictx).State()
		for _, resp := range event.GetFunctionResponses() {
			if resp.Name != RequestEUCFunctionCallName {
				continue
			}
			ids.Insert(resp.ID)

			authConfig, err := types.AuthConfigFromMap(resp.Response)
			if err != nil {
				return nil, fmt.Errorf("decoding auth response %s: %w", resp.ID, err)
			}
			// A failed exchange leaves the unexchanged credential in state.
			if err := types.NewAuthHandler(authConfig).ParseAndStoreAuthResponse(ctx, state); err != nil {
				logging.FromContext(ctx).WarnContext(ctx, "exchanging auth response failed",
					slog.String("function_call_id", resp.ID),
					slog.Any("error", err),
				)
			}
		}
		break
	}
	return ids, nil
}

// originalCallIDs returns the ids of the calls whose credentials were requested by
// the adk_request_credential calls of event listed in requestIDs.
func originalCallIDs(event *types.Event, requestIDs py.Set[string]) (py.Set[string], error) {
	ids := py.NewSet[string]()
	for _, call := range event.GetFunctionCalls() {
		if !requestIDs.Has(call.ID) {
			continue
		}
		args, err := types.AuthToolArgumentsFromMap(call.Args)
		if err != nil {
			return nil, err
		}
		ids.Insert(args.FunctionCallID)
	}
	return ids, nil
}

// findCallEvent returns the latest event calling one of ids.
func findCallEvent(events []*types.Event, ids py.Set[string]) *types.Event {
	for i := len(events) - 1; i >= 0; i-- {
		for _, call := range events[i].GetFunctionCalls() {
			if ids.Has(call.ID) {
				return events[i]
			}
		}
	}
	return nil
}
