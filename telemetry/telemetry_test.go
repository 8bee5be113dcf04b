// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry_test

import (
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/telemetry"
	"github.com/zshehov/adk-python-sub001/types"
)

func newRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	return rec
}

func attrs(span sdktrace.ReadOnlySpan) map[attribute.Key]string {
	m := make(map[attribute.Key]string)
	for _, kv := range span.Attributes() {
		m[kv.Key] = kv.Value.AsString()
	}
	return m
}

func TestTraceToolCall(t *testing.T) {
	rec := newRecorder(t)

	_, span := telemetry.StartToolCall(t.Context(), "get_weather")
	telemetry.TraceToolCall(span, map[string]any{"city": "Tokyo"})
	span.End()

	ended := rec.Ended()
	if len(ended) != 1 {
		t.Fatalf("got %d spans, want 1", len(ended))
	}
	if got, want := ended[0].Name(), "tool_call [get_weather]"; got != want {
		t.Errorf("span name = %q, want %q", got, want)
	}
	if got := attrs(ended[0])[telemetry.KeyToolCallArgs]; got != `{"city":"Tokyo"}` {
		t.Errorf("tool call args = %q", got)
	}
}

func TestTraceCallLLMDropsInlineData(t *testing.T) {
	rec := newRecorder(t)

	request := types.NewLLMRequest([]*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText("describe"),
			genai.NewPartFromBytes([]byte("secret-bytes"), "image/png"),
		}, genai.RoleUser),
	}, types.WithModelName("test-model"))
	response := &types.LLMResponse{Content: genai.NewContentFromText("a cat", genai.RoleModel)}
	ictx := &types.InvocationContext{InvocationID: "inv"}

	_, span := telemetry.StartCallLLM(t.Context())
	telemetry.TraceCallLLM(span, ictx, "event", request, response)
	span.End()

	got := attrs(rec.Ended()[0])
	if got[telemetry.KeyRequestModel] != "test-model" {
		t.Errorf("model = %q", got[telemetry.KeyRequestModel])
	}
	if got[telemetry.KeyInvocationID] != "inv" || got[telemetry.KeyEventID] != "event" {
		t.Errorf("ids = %q, %q", got[telemetry.KeyInvocationID], got[telemetry.KeyEventID])
	}
	if req := got[telemetry.KeyLLMRequest]; !strings.Contains(req, "describe") || strings.Contains(req, "image/png") {
		t.Errorf("llm request = %q", req)
	}
	if resp := got[telemetry.KeyLLMResponse]; !strings.Contains(resp, "a cat") {
		t.Errorf("llm response = %q", resp)
	}
}
