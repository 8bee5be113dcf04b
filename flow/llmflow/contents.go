// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/go-json-experiment/json"
	deepcopy "github.com/tiendc/go-deepcopy"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/internal/pool"
	"github.com/zshehov/adk-python-sub001/types"
	"github.com/zshehov/adk-python-sub001/types/py"
)

// ContentLLMRequestProcessor fills the request contents from the session history.
type ContentLLMRequestProcessor struct{}

var _ types.LLMRequestProcessor = (*ContentLLMRequestProcessor)(nil)

// Run implements [types.LLMRequestProcessor].
func (p *ContentLLMRequestProcessor) Run(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		llmAgent, ok := ictx.Agent.AsLLMAgent()
		if !ok {
			return
		}

		if llmAgent.IncludeContents() == types.IncludeContentsNone {
			request.Contents = []*genai.Content{}
			return
		}

		contents, err := GetContents(ictx.Branch, ictx.Session.Events(), llmAgent.Name())
		if err != nil {
			yield(nil, err)
			return
		}
		request.Contents = contents
	}
}

// GetContents assembles the contents sent to the model by agentName from the session events.
//
// Events without content, outside currentBranch or belonging to the credential
// exchange are dropped. Replies of other agents are presented as user context.
// Function responses are moved next to their calls. The events are not modified.
func GetContents(currentBranch string, events []*types.Event, agentName string) ([]*genai.Content, error) {
	var filtered []*types.Event
	for _, event := range events {
		if isEmptyEvent(event) || !belongsToBranch(currentBranch, event) || isAuthEvent(event) {
			continue
		}
		if isOtherAgentReply(agentName, event) {
			event = convertForeignEvent(event)
		}
		filtered = append(filtered, event)
	}

	rearranged, err := rearrangeEventsForLatestFunctionResponse(filtered)
	if err != nil {
		return nil, err
	}
	rearranged, err = rearrangeEventsForAsyncFunctionResponsesInHistory(rearranged)
	if err != nil {
		return nil, err
	}

	contents := make([]*genai.Content, 0, len(rearranged))
	for _, event := range rearranged {
		content, err := cloneContent(event.GetContent())
		if err != nil {
			return nil, err
		}
		RemoveClientFunctionCallID(content)
		contents = append(contents, content)
	}
	return contents, nil
}

func isEmptyPart(part *genai.Part) bool {
	return part == nil || (part.Text == "" &&
		part.FunctionCall == nil &&
		part.FunctionResponse == nil &&
		part.InlineData == nil &&
		part.FileData == nil &&
		part.ExecutableCode == nil &&
		part.CodeExecutionResult == nil)
}

// isEmptyEvent reports whether event has nothing to show to the model, e.g. it only mutates state.
func isEmptyEvent(event *types.Event) bool {
	content := event.GetContent()
	if content == nil || len(content.Parts) == 0 {
		return true
	}
	for _, part := range content.Parts {
		if !isEmptyPart(part) {
			return false
		}
	}
	return true
}

// belongsToBranch reports whether event is visible from the invocation branch.
//
// An event is visible from its own branch and from the branches of its descendants.
func belongsToBranch(invocationBranch string, event *types.Event) bool {
	if invocationBranch == "" || event.Branch == "" {
		return true
	}
	return invocationBranch == event.Branch || strings.HasPrefix(invocationBranch, event.Branch+".")
}

func isAuthEvent(event *types.Event) bool {
	for _, part := range event.GetContent().Parts {
		if part == nil {
			continue
		}
		if part.FunctionCall != nil && part.FunctionCall.Name == RequestEUCFunctionCallName {
			return true
		}
		if part.FunctionResponse != nil && part.FunctionResponse.Name == RequestEUCFunctionCallName {
			return true
		}
	}
	return false
}

func isOtherAgentReply(agentName string, event *types.Event) bool {
	return agentName != "" && event.Author != agentName && event.Author != types.AuthorUser
}

// convertForeignEvent turns the reply of another agent into user context.
func convertForeignEvent(event *types.Event) *types.Event {
	parts := []*genai.Part{genai.NewPartFromText("For context:")}
	for _, part := range event.GetContent().Parts {
		switch {
		case part == nil || part.Thought:
			continue
		case part.Text != "":
			parts = append(parts, genai.NewPartFromText(fmt.Sprintf("[%s] said: %s", event.Author, part.Text)))
		case part.FunctionCall != nil:
			parts = append(parts, genai.NewPartFromText(fmt.Sprintf("[%s] called tool `%s` with parameters: %s",
				event.Author, part.FunctionCall.Name, renderJSON(part.FunctionCall.Args))))
		case part.FunctionResponse != nil:
			parts = append(parts, genai.NewPartFromText(fmt.Sprintf("[%s] `%s` tool returned result: %s",
				event.Author, part.FunctionResponse.Name, renderJSON(part.FunctionResponse.Response))))
		default:
			parts = append(parts, part)
		}
	}

	return types.NewEvent().
		WithInvocationID(event.InvocationID).
		WithAuthor(types.AuthorUser).
		WithBranch(event.Branch).
		WithTimestamp(event.Timestamp).
		WithContent(&genai.Content{Role: genai.RoleUser, Parts: parts})
}

func renderJSON(v map[string]any) string {
	buf := pool.Buffer.Get()
	defer pool.Buffer.Put(buf)

	if err := json.MarshalWrite(buf, v, json.Deterministic(true)); err != nil {
		return fmt.Sprint(v)
	}
	return buf.String()
}

func responseIDs(event *types.Event) py.Set[string] {
	ids := py.NewSet[string]()
	for _, resp := range event.GetFunctionResponses() {
		ids.Insert(resp.ID)
	}
	return ids
}

func callIDs(event *types.Event) py.Set[string] {
	ids := py.NewSet[string]()
	for _, call := range event.GetFunctionCalls() {
		ids.Insert(call.ID)
	}
	return ids
}

// rearrangeEventsForLatestFunctionResponse moves the latest function response right after its call.
//
// The events between the call and the latest response are dropped, except
// earlier responses to the same call, which are merged into it.
func rearrangeEventsForLatestFunctionResponse(events []*types.Event) ([]*types.Event, error) {
	if len(events) < 2 {
		return events, nil
	}

	last := events[len(events)-1]
	ids := responseIDs(last)
	if ids.Len() == 0 {
		return events, nil
	}
	if callIDs(events[len(events)-2]).HasAny(ids.UnsortedList()...) {
		return events, nil
	}

	callIdx := -1
	for i := len(events) - 2; i >= 0; i-- {
		calls := callIDs(events[i])
		if !calls.HasAny(ids.UnsortedList()...) {
			continue
		}
		if !calls.IsSuperset(ids) {
			return nil, fmt.Errorf("last response event should only contain the responses for the function calls in the same function call event, function call ids: %v, function response ids: %v",
				py.List(calls), py.List(ids))
		}
		callIdx = i
		ids = calls
		break
	}
	if callIdx == -1 {
		return nil, fmt.Errorf("no function call event found for function responses ids: %v", py.List(ids))
	}

	var responseEvents []*types.Event
	for _, event := range events[callIdx+1 : len(events)-1] {
		if responseIDs(event).HasAny(ids.UnsortedList()...) {
			responseEvents = append(responseEvents, event)
		}
	}
	responseEvents = append(responseEvents, last)

	merged, err := mergeFunctionResponseEvents(responseEvents)
	if err != nil {
		return nil, err
	}
	return append(slices.Clone(events[:callIdx+1]), merged), nil
}

// rearrangeEventsForAsyncFunctionResponsesInHistory places the last response to each call right after the call.
func rearrangeEventsForAsyncFunctionResponsesInHistory(events []*types.Event) ([]*types.Event, error) {
	responseIndex := make(map[string]int)
	for i, event := range events {
		for _, resp := range event.GetFunctionResponses() {
			responseIndex[resp.ID] = i
		}
	}

	result := make([]*types.Event, 0, len(events))
	for _, event := range events {
		if len(event.GetFunctionResponses()) > 0 {
			continue
		}

		calls := event.GetFunctionCalls()
		result = append(result, event)
		if len(calls) == 0 {
			continue
		}

		indices := py.NewSet[int]()
		for _, call := range calls {
			if idx, ok := responseIndex[call.ID]; ok {
				indices.Insert(idx)
			}
		}
		switch indices.Len() {
		case 0:
		case 1:
			result = append(result, events[py.List(indices)[0]])
		default:
			responseEvents := make([]*types.Event, 0, indices.Len())
			for _, idx := range py.List(indices) {
				responseEvents = append(responseEvents, events[idx])
			}
			merged, err := mergeFunctionResponseEvents(responseEvents)
			if err != nil {
				return nil, err
			}
			result = append(result, merged)
		}
	}
	return result, nil
}

// mergeFunctionResponseEvents merges function response events into a copy of the first one.
//
// A later response to a call replaces the earlier one in place. Other parts are appended.
func mergeFunctionResponseEvents(events []*types.Event) (*types.Event, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("at least one function response event is required")
	}

	merged, err := events[0].Clone()
	if err != nil {
		return nil, fmt.Errorf("copying function response event: %w", err)
	}
	content := merged.GetContent()
	if content == nil || len(content.Parts) == 0 {
		return nil, fmt.Errorf("function response event %s has no parts", events[0].ID)
	}

	indexOf := make(map[string]int, len(content.Parts))
	for i, part := range content.Parts {
		if part != nil && part.FunctionResponse != nil {
			indexOf[part.FunctionResponse.ID] = i
		}
	}

	for _, event := range events[1:] {
		parts := event.GetContent().Parts
		if len(parts) == 0 {
			return nil, fmt.Errorf("function response event %s has no parts", event.ID)
		}
		for _, part := range parts {
			if part == nil || part.FunctionResponse == nil {
				content.Parts = append(content.Parts, part)
				continue
			}
			id := part.FunctionResponse.ID
			if idx, ok := indexOf[id]; ok {
				content.Parts[idx] = part
				continue
			}
			content.Parts = append(content.Parts, part)
			indexOf[id] = len(content.Parts) - 1
		}
	}
	return merged, nil
}

func cloneContent(content *genai.Content) (*genai.Content, error) {
	var out genai.Content
	if err := deepcopy.Copy(&out, content); err != nil {
		return nil, fmt.Errorf("copying content: %w", err)
	}
	return &out, nil
}
