// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"maps"

	"google.golang.org/genai"
)

// ReadOnlyContext provides read-only access to agent context.
type ReadOnlyContext struct {
	ictx *InvocationContext
}

// NewReadOnlyContext creates a new read-only context.
func NewReadOnlyContext(ictx *InvocationContext) *ReadOnlyContext {
	return &ReadOnlyContext{
		ictx: ictx,
	}
}

// InvocationContext returns the underlying invocation context.
func (rc *ReadOnlyContext) InvocationContext() *InvocationContext {
	return rc.ictx
}

// UserContent returns the user content that started this invocation.
func (rc *ReadOnlyContext) UserContent() *genai.Content {
	return rc.ictx.UserContent
}

// InvocationID returns the current invocation id.
func (rc *ReadOnlyContext) InvocationID() string {
	return rc.ictx.InvocationID
}

// AgentName returns the name of the agent that is currently running.
func (rc *ReadOnlyContext) AgentName() string {
	if rc.ictx.Agent == nil {
		return ""
	}
	return rc.ictx.Agent.Name()
}

// State returns a snapshot of the session state.
func (rc *ReadOnlyContext) State() map[string]any {
	mu := rc.ictx.stateMutex()
	mu.RLock()
	defer mu.RUnlock()

	return maps.Clone(rc.ictx.Session.State())
}
