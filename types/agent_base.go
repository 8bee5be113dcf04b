// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"unicode"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// InstrumentationName is the name of the OpenTelemetry tracer used by the module.
const InstrumentationName = "github.com/zshehov/adk-python-sub001"

// BaseAgent implements the agent tree and the callback handling shared by every [Agent].
//
// Concrete agents embed *BaseAgent and provide Execute and ExecuteLive.
type BaseAgent struct {
	*Config

	// self is the concrete agent embedding this BaseAgent.
	self Agent
}

// NewBaseAgent creates the base of the agent self with the given name.
//
// It validates the name, rejects duplicated sub-agent names and attaches
// every sub-agent to self. A sub-agent that already has a parent is an error.
func NewBaseAgent(self Agent, name string, opts ...Option) (*BaseAgent, error) {
	if err := validateAgentName(name); err != nil {
		return nil, err
	}

	base := &BaseAgent{
		Config: NewConfig(name, opts...),
		self:   self,
	}
	if base.self == nil {
		base.self = base
	}

	seen := make(map[string]bool, len(base.subAgents))
	for _, sub := range base.subAgents {
		if seen[sub.Name()] {
			return nil, fmt.Errorf("%w: %q under agent %q", ErrDuplicateSubAgent, sub.Name(), name)
		}
		seen[sub.Name()] = true

		if parent := sub.ParentAgent(); parent != nil {
			return nil, fmt.Errorf("%w: agent %q already has parent %q, trying to add to %q", ErrAgentAlreadyHasParent, sub.Name(), parent.Name(), name)
		}
	}
	for _, sub := range base.subAgents {
		if err := sub.setParentAgent(base.self); err != nil {
			return nil, err
		}
	}

	return base, nil
}

func validateAgentName(name string) error {
	if name == AuthorUser {
		return fmt.Errorf("%w: %q is reserved for end-user's input", ErrInvalidAgentName, name)
	}
	if !isIdentifier(name) {
		return fmt.Errorf("%w: %q must be an identifier: start with a letter or underscore, and contain only letters, digits, and underscores", ErrInvalidAgentName, name)
	}
	return nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// AsLLMAgent implements [Agent].
func (a *BaseAgent) AsLLMAgent() (LLMAgent, bool) {
	return nil, false
}

// Name implements [Agent].
func (a *BaseAgent) Name() string {
	return a.name
}

// Description implements [Agent].
func (a *BaseAgent) Description() string {
	return a.description
}

// ParentAgent implements [Agent].
func (a *BaseAgent) ParentAgent() Agent {
	return a.parentAgent
}

func (a *BaseAgent) setParentAgent(parent Agent) error {
	if a.parentAgent != nil {
		return fmt.Errorf("%w: agent %q already has parent %q, trying to add to %q", ErrAgentAlreadyHasParent, a.name, a.parentAgent.Name(), parent.Name())
	}
	a.parentAgent = parent
	return nil
}

// SubAgents implements [Agent].
func (a *BaseAgent) SubAgents() []Agent {
	return a.subAgents
}

// BeforeAgentCallbacks implements [Agent].
func (a *BaseAgent) BeforeAgentCallbacks() []AgentCallback {
	return a.beforeAgentCallbacks
}

// AfterAgentCallbacks implements [Agent].
func (a *BaseAgent) AfterAgentCallbacks() []AgentCallback {
	return a.afterAgentCallbacks
}

// Run implements [Agent].
//
// Run derives the context of the agent, runs the before agent callbacks,
// then Execute unless a callback ended the invocation, and finally the
// after agent callbacks.
func (a *BaseAgent) Run(ctx context.Context, parentContext *InvocationContext) iter.Seq2[*Event, error] {
	return a.run(ctx, parentContext, a.self.Execute)
}

// RunLive implements [Agent].
func (a *BaseAgent) RunLive(ctx context.Context, parentContext *InvocationContext) iter.Seq2[*Event, error] {
	return a.run(ctx, parentContext, a.self.ExecuteLive)
}

func (a *BaseAgent) run(ctx context.Context, parentContext *InvocationContext, body func(context.Context, *InvocationContext) iter.Seq2[*Event, error]) iter.Seq2[*Event, error] {
	return func(yield func(*Event, error) bool) {
		ctx, span := otel.Tracer(InstrumentationName).Start(ctx, "agent_run ["+a.name+"]")
		defer span.End()
		span.SetAttributes(attribute.String("gen_ai.agent.name", a.name))

		fail := func(err error) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			yield(nil, err)
		}

		ictx := parentContext.ForAgent(a.self)

		event, err := a.handleBeforeAgentCallbacks(ctx, ictx)
		if err != nil {
			fail(err)
			return
		}
		if event != nil && !yield(event, nil) {
			return
		}
		if ictx.EndInvocation {
			return
		}

		for event, err := range body(ctx, ictx) {
			if err != nil {
				fail(err)
				return
			}
			if !yield(event, nil) {
				return
			}
		}
		if ictx.EndInvocation {
			return
		}

		event, err = a.handleAfterAgentCallbacks(ctx, ictx)
		if err != nil {
			fail(err)
			return
		}
		if event != nil {
			yield(event, nil)
		}
	}
}

// Execute implements [Agent].
func (a *BaseAgent) Execute(ctx context.Context, ictx *InvocationContext) iter.Seq2[*Event, error] {
	return func(yield func(*Event, error) bool) {
		yield(nil, NotImplementedError("Execute for "+a.name+" is not implemented"))
	}
}

// ExecuteLive implements [Agent].
func (a *BaseAgent) ExecuteLive(ctx context.Context, ictx *InvocationContext) iter.Seq2[*Event, error] {
	return func(yield func(*Event, error) bool) {
		yield(nil, NotImplementedError("ExecuteLive for "+a.name+" is not implemented"))
	}
}

// RootAgent implements [Agent].
func (a *BaseAgent) RootAgent() Agent {
	root := a.self
	for parent := root.ParentAgent(); parent != nil; parent = root.ParentAgent() {
		root = parent
	}
	return root
}

// FindAgent implements [Agent].
//
// The search starts from the root of the tree, so any agent of the tree can be found
// from any other.
func (a *BaseAgent) FindAgent(name string) Agent {
	root := a.RootAgent()
	if root.Name() == name {
		return root
	}
	return root.FindSubAgent(name)
}

// FindSubAgent implements [Agent].
func (a *BaseAgent) FindSubAgent(name string) Agent {
	for _, sub := range a.subAgents {
		if sub.Name() == name {
			return sub
		}
		if found := sub.FindSubAgent(name); found != nil {
			return found
		}
	}
	return nil
}

// handleBeforeAgentCallbacks runs the before agent callbacks.
//
// Content returned by a callback ends the invocation and becomes the returned
// event. Without content, state changes made by the callbacks still produce an
// event carrying the delta.
func (a *BaseAgent) handleBeforeAgentCallbacks(ctx context.Context, ictx *InvocationContext) (*Event, error) {
	if len(a.beforeAgentCallbacks) == 0 {
		return nil, nil
	}

	cctx := NewCallbackContext(ictx)
	content, err := RunAgentCallbacks(cctx, a.beforeAgentCallbacks)
	if err != nil {
		a.logger.ErrorContext(ctx, "before agent callback", slog.String("agent", a.name), slog.Any("error", err))
		return nil, fmt.Errorf("before agent callback of %s: %w", a.name, err)
	}
	if content != nil {
		ictx.EndInvocation = true
		return a.callbackEvent(ictx, cctx).WithContent(content), nil
	}
	if cctx.State().HasDelta() {
		return a.callbackEvent(ictx, cctx), nil
	}

	return nil, nil
}

// handleAfterAgentCallbacks runs the after agent callbacks, see handleBeforeAgentCallbacks.
func (a *BaseAgent) handleAfterAgentCallbacks(ctx context.Context, ictx *InvocationContext) (*Event, error) {
	if len(a.afterAgentCallbacks) == 0 {
		return nil, nil
	}

	cctx := NewCallbackContext(ictx)
	content, err := RunAgentCallbacks(cctx, a.afterAgentCallbacks)
	if err != nil {
		a.logger.ErrorContext(ctx, "after agent callback", slog.String("agent", a.name), slog.Any("error", err))
		return nil, fmt.Errorf("after agent callback of %s: %w", a.name, err)
	}
	if content != nil {
		return a.callbackEvent(ictx, cctx).WithContent(content), nil
	}
	if cctx.State().HasDelta() {
		return a.callbackEvent(ictx, cctx), nil
	}

	return nil, nil
}

func (a *BaseAgent) callbackEvent(ictx *InvocationContext, cctx *CallbackContext) *Event {
	return NewEvent().
		WithInvocationID(ictx.InvocationID).
		WithAuthor(a.name).
		WithBranch(ictx.Branch).
		WithActions(cctx.EventActions())
}
