// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"errors"
)

// ToolContext is the context of one tool invocation.
//
// Each function call gets its own ToolContext, so the actions recorded by a
// tool are attached to the function response event of that call only.
type ToolContext struct {
	*CallbackContext

	functionCallID string
}

// NewToolContext creates a new [ToolContext] recording into fresh [EventActions].
func NewToolContext(ictx *InvocationContext) *ToolContext {
	return &ToolContext{
		CallbackContext: NewCallbackContext(ictx),
	}
}

// WithFunctionCallID sets the function call ID for the [*ToolContext].
func (tc *ToolContext) WithFunctionCallID(funcCallID string) *ToolContext {
	tc.functionCallID = funcCallID
	return tc
}

// WithEventActions makes the [*ToolContext] record into eventActions.
func (tc *ToolContext) WithEventActions(eventActions *EventActions) *ToolContext {
	tc.CallbackContext = NewCallbackContextWithActions(tc.InvocationContext(), eventActions)
	return tc
}

// FunctionCallID returns the function call ID for the tool context.
func (tc *ToolContext) FunctionCallID() string {
	return tc.functionCallID
}

// Actions returns the event actions for the tool context.
func (tc *ToolContext) Actions() *EventActions {
	return tc.eventActions
}

// RequestCredential registers authConfig as a credential request of the current function call.
//
// The flow turns the request into an adk_request_credential call to the client.
func (tc *ToolContext) RequestCredential(authConfig *AuthConfig) error {
	if tc.functionCallID == "" {
		return errors.New("function call id is not set")
	}
	if err := authConfig.Validate(); err != nil {
		return err
	}

	authRequest, err := NewAuthHandler(authConfig).GenerateAuthRequest()
	if err != nil {
		return err
	}
	if tc.eventActions.RequestedAuthConfigs == nil {
		tc.eventActions.RequestedAuthConfigs = make(map[string]*AuthConfig)
	}
	tc.eventActions.RequestedAuthConfigs[tc.functionCallID] = authRequest

	return nil
}

// GetAuthResponse returns the credential the client returned for authConfig, or nil.
func (tc *ToolContext) GetAuthResponse(authConfig *AuthConfig) *AuthCredential {
	return NewAuthHandler(authConfig).GetAuthResponse(tc.state)
}

// SearchMemory searches the memory of the current user.
func (tc *ToolContext) SearchMemory(ctx context.Context, query string) (*SearchMemoryResponse, error) {
	ictx := tc.InvocationContext()
	if ictx.MemoryService == nil {
		return nil, errors.New("memory service is not available")
	}

	return ictx.MemoryService.SearchMemory(ctx, ictx.AppName(), ictx.UserID(), query)
}
