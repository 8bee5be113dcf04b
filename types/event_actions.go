// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"maps"
)

// EventActions represents the actions attached to an event.
type EventActions struct {
	// SkipSummarization if true, it won't call model to summarize function response.
	//
	// Only used for function_response event.
	SkipSummarization bool `json:"skip_summarization,omitzero"`

	// StateDelta indicates that the event is updating the state with the given delta.
	StateDelta map[string]any `json:"state_delta,omitzero"`

	// ArtifactDelta indicates that the event is updating an artifact. key is the filename,
	// value is the version.
	ArtifactDelta map[string]int `json:"artifact_delta,omitzero"`

	// TransferToAgent if set, the event transfers to the specified agent.
	TransferToAgent string `json:"transfer_to_agent,omitzero"`

	// Escalate is the agent is escalating to a higher level agent.
	Escalate bool `json:"escalate,omitzero"`

	// RequestedAuthConfigs will only be set by a tool response indicating tool request euc.
	// map key is the function call id since one function call response (from model)
	// could correspond to multiple function calls.
	// map value is the required auth config.
	RequestedAuthConfigs map[string]*AuthConfig `json:"requested_auth_configs,omitzero"`
}

// NewEventActions creates a new [EventActions] with empty deltas.
func NewEventActions() *EventActions {
	return &EventActions{
		StateDelta:           make(map[string]any),
		ArtifactDelta:        make(map[string]int),
		RequestedAuthConfigs: make(map[string]*AuthConfig),
	}
}

// WithSkipSummarization sets the SkipSummarization field of the [EventActions].
func (ea *EventActions) WithSkipSummarization(skip bool) *EventActions {
	ea.SkipSummarization = skip
	return ea
}

// WithStateDelta sets the StateDelta field of the [EventActions].
func (ea *EventActions) WithStateDelta(delta map[string]any) *EventActions {
	ea.StateDelta = delta
	return ea
}

// WithArtifactDelta sets the ArtifactDelta field of the [EventActions].
func (ea *EventActions) WithArtifactDelta(delta map[string]int) *EventActions {
	ea.ArtifactDelta = delta
	return ea
}

// WithTransferToAgent sets the TransferToAgent field of the [EventActions].
func (ea *EventActions) WithTransferToAgent(agentName string) *EventActions {
	ea.TransferToAgent = agentName
	return ea
}

// WithEscalate sets the Escalate field of the [EventActions].
func (ea *EventActions) WithEscalate(escalate bool) *EventActions {
	ea.Escalate = escalate
	return ea
}

// WithRequestedAuthConfigs sets the RequestedAuthConfigs field of the [EventActions].
func (ea *EventActions) WithRequestedAuthConfigs(configs map[string]*AuthConfig) *EventActions {
	ea.RequestedAuthConfigs = configs
	return ea
}

// IsEmpty reports whether the actions carry no side effect.
func (ea *EventActions) IsEmpty() bool {
	if ea == nil {
		return true
	}
	return !ea.SkipSummarization && !ea.Escalate && ea.TransferToAgent == "" &&
		len(ea.StateDelta) == 0 && len(ea.ArtifactDelta) == 0 && len(ea.RequestedAuthConfigs) == 0
}

// Merge folds other into ea. Map entries of other win, booleans are or-ed and a
// non-empty TransferToAgent replaces the current one.
func (ea *EventActions) Merge(other *EventActions) *EventActions {
	if other == nil {
		return ea
	}
	if ea.StateDelta == nil {
		ea.StateDelta = make(map[string]any)
	}
	if ea.ArtifactDelta == nil {
		ea.ArtifactDelta = make(map[string]int)
	}
	if ea.RequestedAuthConfigs == nil {
		ea.RequestedAuthConfigs = make(map[string]*AuthConfig)
	}
	maps.Copy(ea.StateDelta, other.StateDelta)
	maps.Copy(ea.ArtifactDelta, other.ArtifactDelta)
	maps.Copy(ea.RequestedAuthConfigs, other.RequestedAuthConfigs)
	ea.SkipSummarization = ea.SkipSummarization || other.SkipSummarization
	ea.Escalate = ea.Escalate || other.Escalate
	if other.TransferToAgent != "" {
		ea.TransferToAgent = other.TransferToAgent
	}
	return ea
}
