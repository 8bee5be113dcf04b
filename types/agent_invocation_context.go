// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

// LLMCallsLimitExceededError represents error thrown when the number of LLM calls exceed the limit.
type LLMCallsLimitExceededError string

// NewLLMCallsLimitExceededError returns the new [LLMCallsLimitExceededError] error.
func NewLLMCallsLimitExceededError(msg string, a ...any) error {
	return LLMCallsLimitExceededError(fmt.Sprintf(msg, a...))
}

// Error returns a string representation of the LLMCallsLimitExceededError.
func (e LLMCallsLimitExceededError) Error() string {
	return string(e)
}

// invocationCostManager keeps track of the cost of one invocation.
//
// It is shared by every context derived from the same invocation.
type invocationCostManager struct {
	llmCalls atomic.Int64
}

// incrementAndEnforceLLMCallsLimit increments the model call counter and enforces the limit.
func (mgr *invocationCostManager) incrementAndEnforceLLMCallsLimit(runConfig *RunConfig) error {
	n := mgr.llmCalls.Add(1)
	if runConfig != nil && runConfig.MaxLLMCalls > 0 && n > int64(runConfig.MaxLLMCalls) {
		return NewLLMCallsLimitExceededError("max number of llm calls limit of %d exceeded", runConfig.MaxLLMCalls)
	}
	return nil
}

// InvocationContext represents the data of a single invocation of an agent.
//
// An invocation starts with a user message and ends with a final response. It can
// contain one or multiple agent calls, each handled by [Agent.Run]. An LLM agent
// call runs steps in a loop until a final response is generated, the agent
// transfers to another agent, or EndInvocation is set by a callback or tool.
// A step calls the model once and then the requested tools.
//
//	┌─────────────────────── invocation ──────────────────────────┐
//	┌──────────── llm_agent_call_1 ────────────┐ ┌─ agent_call_2 ─┐
//	┌──── step_1 ────────┐ ┌───── step_2 ──────┐
//	[call_llm] [call_tool] [call_llm] [transfer]
//
// Contexts handed to sub-agents are derived copies sharing the session, the
// services and the call counter.
type InvocationContext struct {
	ArtifactService   ArtifactService
	SessionService    SessionService
	MemoryService     MemoryService
	CredentialService CredentialService

	// InvocationID is the id of this invocation context. Readonly.
	InvocationID string

	// Branch is the branch of the invocation context.
	//
	// The format is like agent_1.agent_2.agent_3, where agent_1 is the parent of
	// agent_2, and agent_2 is the parent of agent_3.
	//
	// Branch is used when multiple sub-agents shouldn't see their peer agents'
	// conversation history.
	Branch string

	// Agent is the current agent of this invocation context. Readonly.
	Agent Agent

	// UserContent is the user content that started this invocation. Readonly.
	UserContent *genai.Content

	// Session is the current session of this invocation context. Readonly.
	Session Session

	// EndInvocation ends this invocation when set by callbacks or tools.
	EndInvocation bool

	// LiveRequestQueue is the queue to receive live requests.
	LiveRequestQueue *LiveRequestQueue

	// RunConfig is the run configuration of this invocation.
	RunConfig *RunConfig

	costManager *invocationCostManager

	// stateMu guards the session state written through [State] views.
	stateMu *sync.RWMutex
}

// InvocationContextOption is a function that modifies the [InvocationContext].
type InvocationContextOption func(*InvocationContext)

// WithArtifactService sets the [ArtifactService] of the context.
func WithArtifactService(svc ArtifactService) InvocationContextOption {
	return func(ictx *InvocationContext) {
		ictx.ArtifactService = svc
	}
}

// WithMemoryService sets the [MemoryService] of the context.
func WithMemoryService(svc MemoryService) InvocationContextOption {
	return func(ictx *InvocationContext) {
		ictx.MemoryService = svc
	}
}

// WithCredentialService sets the [CredentialService] of the context.
func WithCredentialService(svc CredentialService) InvocationContextOption {
	return func(ictx *InvocationContext) {
		ictx.CredentialService = svc
	}
}

// WithInvocationID sets the invocation id of the context.
func WithInvocationID(id string) InvocationContextOption {
	return func(ictx *InvocationContext) {
		ictx.InvocationID = id
	}
}

// WithBranch sets the branch of the context.
func WithBranch(branch string) InvocationContextOption {
	return func(ictx *InvocationContext) {
		ictx.Branch = branch
	}
}

// WithUserContent sets the user content that started the invocation.
func WithUserContent(content *genai.Content) InvocationContextOption {
	return func(ictx *InvocationContext) {
		ictx.UserContent = content
	}
}

// WithLiveRequestQueue sets the live request queue of the context.
func WithLiveRequestQueue(q *LiveRequestQueue) InvocationContextOption {
	return func(ictx *InvocationContext) {
		ictx.LiveRequestQueue = q
	}
}

// WithRunConfig sets the [RunConfig] of the context.
func WithRunConfig(cfg *RunConfig) InvocationContextOption {
	return func(ictx *InvocationContext) {
		ictx.RunConfig = cfg
	}
}

// NewInvocationContext creates a new [InvocationContext] for agent over session.
func NewInvocationContext(agent Agent, session Session, sessionSvc SessionService, opts ...InvocationContextOption) *InvocationContext {
	ictx := &InvocationContext{
		SessionService: sessionSvc,
		InvocationID:   NewInvocationContextID(),
		Agent:          agent,
		Session:        session,
		RunConfig:      NewRunConfig(),
		costManager:    &invocationCostManager{},
		stateMu:        sessionStateLock(session),
	}
	for _, opt := range opts {
		opt(ictx)
	}
	if ictx.RunConfig == nil {
		ictx.RunConfig = NewRunConfig()
	}

	return ictx
}

// Clone returns a shallow copy of the context sharing the session, the services and the call counter.
func (ic *InvocationContext) Clone() *InvocationContext {
	clone := *ic
	if clone.costManager == nil {
		clone.costManager = &invocationCostManager{}
		ic.costManager = clone.costManager
	}
	if clone.stateMu == nil {
		clone.stateMu = &sync.RWMutex{}
		ic.stateMu = clone.stateMu
	}
	return &clone
}

// ForAgent returns a derived context for running agent.
//
// The branch is inherited unchanged; only agents isolating their sub-agents,
// such as a parallel agent, open new branches.
func (ic *InvocationContext) ForAgent(agent Agent) *InvocationContext {
	clone := ic.Clone()
	clone.Agent = agent
	return clone
}

// IncrementLLMCallCount tracks the number of model calls made.
//
// It returns a [LLMCallsLimitExceededError] if the number of model calls exceeds the limit.
func (ic *InvocationContext) IncrementLLMCallCount() error {
	if ic.costManager == nil {
		ic.costManager = &invocationCostManager{}
	}
	return ic.costManager.incrementAndEnforceLLMCallsLimit(ic.RunConfig)
}

// AppName returns the app name of the session.
func (ic *InvocationContext) AppName() string {
	return ic.Session.AppName()
}

// UserID returns the user id of the session.
func (ic *InvocationContext) UserID() string {
	return ic.Session.UserID()
}

// stateMutex returns the lock guarding writes to the session state.
func (ic *InvocationContext) stateMutex() *sync.RWMutex {
	if ic.stateMu == nil {
		ic.stateMu = &sync.RWMutex{}
	}
	return ic.stateMu
}

// NewInvocationContextID returns a new invocation context id.
func NewInvocationContextID() string {
	return "e-" + uuid.NewString()
}
