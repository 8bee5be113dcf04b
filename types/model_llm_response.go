// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"google.golang.org/genai"
)

// Error codes used when a model response carries no usable content.
const (
	ErrorCodeUnknown = "UNKNOWN_ERROR"
	ErrorCodeModel   = "MODEL_ERROR"
)

// LLMResponse represents a response from a language model.
type LLMResponse struct {
	// Content is the content of the response.
	Content *genai.Content `json:"content,omitzero"`

	// GroundingMetadata is the grounding metadata of the response.
	GroundingMetadata *genai.GroundingMetadata `json:"grounding_metadata,omitzero"`

	// Partial indicates whether the text content is part of an unfinished text stream.
	//
	// Only used for streaming mode and when the content is plain text.
	Partial bool `json:"partial,omitzero"`

	// TurnComplete indicates whether the response from the model is complete.
	//
	// Only used for streaming mode.
	TurnComplete bool `json:"turn_complete,omitzero"`

	// ErrorCode is the error code if the response is an error. Code varies by model.
	ErrorCode string `json:"error_code,omitzero"`

	// ErrorMessage is the error message if the response is an error.
	ErrorMessage string `json:"error_message,omitzero"`

	// Interrupted indicates that LLM was interrupted when generating the content.
	// Usually it's due to user interruption during a bidi streaming.
	Interrupted bool `json:"interrupted,omitzero"`

	// CustomMetadata is an optional key-value pair to label an LLMResponse.
	//
	// The entire map must be JSON serializable.
	CustomMetadata map[string]any `json:"custom_metadata,omitzero"`

	// UsageMetadata is the usage metadata of the LLMResponse.
	UsageMetadata *genai.GenerateContentResponseUsageMetadata `json:"usage_metadata,omitzero"`
}

// CreateLLMResponse creates an [LLMResponse] from a [*genai.GenerateContentResponse].
func CreateLLMResponse(resp *genai.GenerateContentResponse) *LLMResponse {
	if resp == nil {
		return &LLMResponse{
			ErrorCode:    ErrorCodeUnknown,
			ErrorMessage: "generate content response is nil",
		}
	}

	response := &LLMResponse{
		UsageMetadata: resp.UsageMetadata,
	}
	switch {
	case len(resp.Candidates) > 0:
		candidate := resp.Candidates[0]
		if candidate.Content != nil && len(candidate.Content.Parts) > 0 {
			response.Content = candidate.Content
			response.GroundingMetadata = candidate.GroundingMetadata
		} else {
			response.ErrorCode = string(candidate.FinishReason)
			response.ErrorMessage = candidate.FinishMessage
		}

	case resp.PromptFeedback != nil:
		response.ErrorCode = string(resp.PromptFeedback.BlockReason)
		response.ErrorMessage = resp.PromptFeedback.BlockReasonMessage

	default:
		response.ErrorCode = ErrorCodeUnknown
		response.ErrorMessage = "unknown error"
	}

	return response
}

// NewErrorLLMResponse returns a response carrying only an error code and message.
func NewErrorLLMResponse(code, message string) *LLMResponse {
	return &LLMResponse{
		ErrorCode:    code,
		ErrorMessage: message,
	}
}

// IsError reports whether the response carries an error.
func (r *LLMResponse) IsError() bool {
	return r.ErrorCode != "" || r.ErrorMessage != ""
}

// Text returns the concatenated text parts of the response content.
func (r *LLMResponse) Text() string {
	if r == nil || r.Content == nil {
		return ""
	}
	var text string
	for _, part := range r.Content.Parts {
		if part != nil && !part.Thought {
			text += part.Text
		}
	}
	return text
}
