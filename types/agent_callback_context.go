// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"

	"google.golang.org/genai"
)

// CallbackContext provides the context of various callbacks within an agent run.
type CallbackContext struct {
	*ReadOnlyContext

	eventActions *EventActions
	state        *State
}

// NewCallbackContext creates a new [*CallbackContext] recording into fresh [EventActions].
func NewCallbackContext(ictx *InvocationContext) *CallbackContext {
	return NewCallbackContextWithActions(ictx, NewEventActions())
}

// NewCallbackContextWithActions creates a new [*CallbackContext] recording into actions.
func NewCallbackContextWithActions(ictx *InvocationContext, actions *EventActions) *CallbackContext {
	if actions == nil {
		actions = NewEventActions()
	}
	if actions.StateDelta == nil {
		actions.StateDelta = make(map[string]any)
	}
	if actions.ArtifactDelta == nil {
		actions.ArtifactDelta = make(map[string]int)
	}

	return &CallbackContext{
		ReadOnlyContext: NewReadOnlyContext(ictx),
		eventActions:    actions,
		state:           newSharedState(ictx.stateMutex(), ictx.Session.State(), actions.StateDelta),
	}
}

// EventActions returns the event actions recorded by this context.
func (cc *CallbackContext) EventActions() *EventActions {
	return cc.eventActions
}

// State returns the delta-aware state of the current session.
//
// Writes are applied to the session state immediately and recorded in the state delta.
func (cc *CallbackContext) State() *State {
	return cc.state
}

// LoadArtifact loads an artifact attached to the current session.
func (cc *CallbackContext) LoadArtifact(ctx context.Context, filename string, version int) (*genai.Part, error) {
	ictx := cc.InvocationContext()
	if ictx.ArtifactService == nil {
		return nil, ErrArtifactServiceNotInitialized
	}

	return ictx.ArtifactService.LoadArtifact(ctx, ictx.AppName(), ictx.UserID(), ictx.Session.ID(), filename, version)
}

// SaveArtifact saves an artifact and records it as delta for the current session.
func (cc *CallbackContext) SaveArtifact(ctx context.Context, filename string, artifact *genai.Part) (int, error) {
	ictx := cc.InvocationContext()
	if ictx.ArtifactService == nil {
		return 0, ErrArtifactServiceNotInitialized
	}

	version, err := ictx.ArtifactService.SaveArtifact(ctx, ictx.AppName(), ictx.UserID(), ictx.Session.ID(), filename, artifact)
	if err != nil {
		return 0, err
	}
	cc.eventActions.ArtifactDelta[filename] = version

	return version, nil
}

// ListArtifacts lists the filenames of the artifacts attached to the current session.
func (cc *CallbackContext) ListArtifacts(ctx context.Context) ([]string, error) {
	ictx := cc.InvocationContext()
	if ictx.ArtifactService == nil {
		return nil, ErrArtifactServiceNotInitialized
	}

	return ictx.ArtifactService.ListArtifactKey(ctx, ictx.AppName(), ictx.UserID(), ictx.Session.ID())
}
