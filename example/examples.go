// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package example

import (
	"google.golang.org/genai"
)

// Example represents a few-shot example.
type Example struct {
	// Input is the user query of the example.
	Input *genai.Content `json:"input"`

	// Output is the expected conversation following the query: model
	// replies, function calls and function responses.
	Output []*genai.Content `json:"output"`
}
