// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"

	"github.com/go-json-experiment/json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types"
)

// Span names.
const (
	SpanCallLLM = "call_llm"
)

// Attribute keys recorded on spans.
const (
	KeySystem       = attribute.Key("gen_ai.system")
	KeyRequestModel = attribute.Key("gen_ai.request.model")
	KeyInvocationID = attribute.Key("adk.invocation_id")
	KeyEventID      = attribute.Key("adk.event_id")
	KeyLLMRequest   = attribute.Key("adk.llm_request")
	KeyLLMResponse  = attribute.Key("adk.llm_response")
	KeyToolCallArgs = attribute.Key("adk.tool_call_args")
	KeyToolResponse = attribute.Key("adk.tool_response")
	KeySentData     = attribute.Key("adk.data")
)

const (
	systemName       = "adk"
	emptyJSONPayload = "{}"
)

// Tracer returns the tracer of the module from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(types.InstrumentationName)
}

// StartCallLLM starts the span of one model call.
func StartCallLLM(ctx context.Context) (context.Context, trace.Span) {
	return Tracer().Start(ctx, SpanCallLLM)
}

// StartToolCall starts the span of one tool invocation.
func StartToolCall(ctx context.Context, toolName string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "tool_call ["+toolName+"]")
}

// StartSendData starts the span of the history sent over a live connection.
func StartSendData(ctx context.Context) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "send_data")
}

// StartToolResponse starts the span recording the (merged) function response event.
func StartToolResponse(ctx context.Context, toolName string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "tool_response ["+toolName+"]")
}

// TraceToolCall records the arguments of a tool call on span.
func TraceToolCall(span trace.Span, args map[string]any) {
	span.SetAttributes(
		KeySystem.String(systemName),
		KeyToolCallArgs.String(marshal(args)),
	)
}

// TraceToolResponse records the function response event on span.
func TraceToolResponse(span trace.Span, ictx *types.InvocationContext, eventID string, event *types.Event) {
	span.SetAttributes(
		KeySystem.String(systemName),
		KeyInvocationID.String(ictx.InvocationID),
		KeyEventID.String(eventID),
		KeyToolResponse.String(marshal(event)),
		KeyLLMRequest.String(emptyJSONPayload),
		KeyLLMResponse.String(emptyJSONPayload),
	)
}

// TraceCallLLM records a model request and its response on span.
//
// Inline data is dropped from the recorded request contents.
func TraceCallLLM(span trace.Span, ictx *types.InvocationContext, eventID string, request *types.LLMRequest, response *types.LLMResponse) {
	span.SetAttributes(
		KeySystem.String(systemName),
		KeyRequestModel.String(request.Model),
		KeyInvocationID.String(ictx.InvocationID),
		KeyEventID.String(eventID),
		KeyLLMRequest.String(marshal(requestForTrace(request))),
		KeyLLMResponse.String(marshal(response)),
	)
}

// TraceSendData records the contents sent over a live connection on span.
func TraceSendData(span trace.Span, ictx *types.InvocationContext, eventID string, data []*genai.Content) {
	span.SetAttributes(
		KeyInvocationID.String(ictx.InvocationID),
		KeyEventID.String(eventID),
		KeySentData.String(marshal(withoutInlineData(data))),
	)
}

type traceRequest struct {
	Model    string                       `json:"model"`
	Config   *genai.GenerateContentConfig `json:"config,omitzero"`
	Contents []*genai.Content             `json:"contents"`
}

func requestForTrace(request *types.LLMRequest) *traceRequest {
	out := &traceRequest{
		Model:    request.Model,
		Contents: withoutInlineData(request.Contents),
	}
	if request.Config != nil {
		cfg := *request.Config
		cfg.ResponseSchema = nil
		out.Config = &cfg
	}
	return out
}

func withoutInlineData(contents []*genai.Content) []*genai.Content {
	out := make([]*genai.Content, 0, len(contents))
	for _, content := range contents {
		if content == nil {
			continue
		}
		parts := make([]*genai.Part, 0, len(content.Parts))
		for _, part := range content.Parts {
			if part != nil && part.InlineData == nil {
				parts = append(parts, part)
			}
		}
		out = append(out, &genai.Content{Role: content.Role, Parts: parts})
	}
	return out
}

func marshal(v any) string {
	data, err := json.Marshal(v, json.OmitZeroStructFields(true))
	if err != nil {
		return emptyJSONPayload
	}
	return string(data)
}
