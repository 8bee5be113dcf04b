// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"iter"
)

// Flow drives the model and tool steps of an [LLMAgent].
type Flow interface {
	// Run runs steps until a final response, a transfer or the end of the invocation.
	Run(ctx context.Context, ictx *InvocationContext) iter.Seq2[*Event, error]

	// RunLive runs the agent over a bidirectional model connection fed by the live request queue.
	RunLive(ctx context.Context, ictx *InvocationContext) iter.Seq2[*Event, error]
}

// LLMRequestProcessor builds part of the [LLMRequest] before a model call.
//
// A processor may yield events, which the flow emits before calling the model.
type LLMRequestProcessor interface {
	Run(ctx context.Context, ictx *InvocationContext, request *LLMRequest) iter.Seq2[*Event, error]
}
