// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"errors"
	"fmt"
)

// Configuration errors, returned synchronously when an agent tree or auth config is built.
var (
	// ErrAgentAlreadyHasParent is returned when an agent is attached to a second parent.
	ErrAgentAlreadyHasParent = errors.New("agent already has a parent agent")

	// ErrInvalidAgentName is returned when an agent name is not a valid identifier or is reserved.
	ErrInvalidAgentName = errors.New("invalid agent name")

	// ErrDuplicateSubAgent is returned when two sub-agents of one parent share a name.
	ErrDuplicateSubAgent = errors.New("duplicate sub-agent name")

	// ErrInvalidAuthConfig is returned for structurally invalid auth configs.
	ErrInvalidAuthConfig = errors.New("invalid auth config")
)

// Runtime errors.
var (
	// ErrAgentNotFound is returned when a transfer target cannot be resolved in the agent tree.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrContextVariableNotFound is returned when an instruction references a missing state key.
	ErrContextVariableNotFound = errors.New("context variable not found")

	// ErrArtifactServiceNotInitialized is returned when an artifact is accessed without an artifact service.
	ErrArtifactServiceNotInitialized = errors.New("artifact service is not initialized")

	// ErrArtifactNotFound is returned when a referenced artifact does not exist.
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrSessionAlreadyExists is returned when a session is created with an id already in use.
	ErrSessionAlreadyExists = errors.New("session already exists")

	// ErrSessionNotFound is returned when a run refers to a session that does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrModelNotFound is returned when no model can be resolved for an LLM agent.
	ErrModelNotFound = errors.New("model not found")
)

// NotImplementedError is the error type for unimplemented behaviour.
type NotImplementedError string

// Error returns a string representation of the [NotImplementedError].
func (e NotImplementedError) Error() string {
	return string(e)
}

// ToolNotFoundError reports a function call naming a tool the agent does not have.
type ToolNotFoundError struct {
	Name string
}

// Error implements error.
func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("function %s is not found in the tools", e.Name)
}
