// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"google.golang.org/genai"
)

// DefaultMaxLLMCalls is the default limit of model calls per invocation.
const DefaultMaxLLMCalls = 500

// StreamingMode selects how model responses are streamed.
type StreamingMode int

const (
	StreamingModeNone StreamingMode = iota
	StreamingModeSSE
	StreamingModeBidi
)

// String returns a string representation of the [StreamingMode].
func (mode StreamingMode) String() string {
	switch mode {
	case StreamingModeNone:
		return "none"
	case StreamingModeSSE:
		return "sse"
	case StreamingModeBidi:
		return "bidi"
	}
	return ""
}

// RunConfig configs for runtime behavior of agents.
type RunConfig struct {
	// SpeechConfig is the speech configuration for the live agent.
	SpeechConfig *genai.SpeechConfig

	// ResponseModalities is the output modality of the server.
	ResponseModalities []genai.Modality

	// SaveInputBlobsAsArtifacts whether or not to save the input blobs as artifacts.
	SaveInputBlobsAsArtifacts bool

	// SupportCFC whether to support compositional function calling (CFC).
	//
	// Only applicable for StreamingModeSSE.
	SupportCFC bool

	// StreamingMode is the streaming mode.
	StreamingMode StreamingMode

	// MaxLLMCalls is the limit on the total number of model calls for a given run.
	//
	// A value of zero or less allows unbounded calls.
	MaxLLMCalls int
}

// NewRunConfig returns a [RunConfig] with the default model call limit.
func NewRunConfig() *RunConfig {
	return &RunConfig{
		MaxLLMCalls: DefaultMaxLLMCalls,
	}
}
