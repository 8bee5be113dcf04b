// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"iter"

	"google.golang.org/genai"
)

// Model is a generative model answering [LLMRequest]s.
type Model interface {
	// Name returns the model name, e.g. "gemini-2.0-flash".
	Name() string

	// GenerateContent returns the complete answer to request.
	GenerateContent(ctx context.Context, request *LLMRequest) (*LLMResponse, error)

	// StreamGenerateContent streams the answer to request.
	//
	// Text chunks are yielded with Partial set, followed by one aggregated
	// response carrying the turn completion.
	StreamGenerateContent(ctx context.Context, request *LLMRequest) iter.Seq2[*LLMResponse, error]

	// Connect opens a bidirectional live session configured by request.
	Connect(ctx context.Context, request *LLMRequest) (ModelConnection, error)
}

// ModelConnection is a live session with a [Model].
type ModelConnection interface {
	// SendHistory replays the conversation so far. The model answers only when
	// the last content comes from the user.
	SendHistory(ctx context.Context, history []*genai.Content) error

	// SendContent sends a user turn; the model answers right away.
	SendContent(ctx context.Context, content *genai.Content) error

	// SendRealtime streams an audio chunk or a video frame.
	SendRealtime(ctx context.Context, blob *genai.Blob) error

	// Receive yields model responses until the connection closes or ctx is done.
	Receive(ctx context.Context) iter.Seq2[*LLMResponse, error]

	// Close ends the session. The connection is unusable afterwards.
	Close() error
}
