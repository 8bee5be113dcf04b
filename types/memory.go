// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"time"

	"google.golang.org/genai"
)

// MemoryService ingests sessions into memory and searches it.
type MemoryService interface {
	// AddSessionToMemory adds the events of a session to the memory.
	AddSessionToMemory(ctx context.Context, session Session) error

	// SearchMemory searches the memory of a user.
	SearchMemory(ctx context.Context, appName, userID, query string) (*SearchMemoryResponse, error)
}

// MemoryEntry represents one memory entry.
type MemoryEntry struct {
	// Content is the main content of the memory.
	Content *genai.Content `json:"content"`

	// Author is the author of the memory.
	Author string `json:"author,omitzero"`

	// Timestamp is the time the original content happened.
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// SearchMemoryResponse represents the response from a memory search.
type SearchMemoryResponse struct {
	Memories []*MemoryEntry `json:"memories"`
}
