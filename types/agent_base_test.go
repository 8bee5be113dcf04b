// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types_test

import (
	"context"
	"errors"
	"iter"
	"testing"
	"time"

	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types"
)

type fakeSession struct {
	id      string
	state   map[string]any
	events  []*types.Event
	updated time.Time
}

var _ types.Session = (*fakeSession)(nil)

func newFakeSession() *fakeSession {
	return &fakeSession{id: "session", state: map[string]any{}}
}

func (s *fakeSession) ID() string { return s.id }
func (s *fakeSession) AppName() string { return "app" }
func (s *fakeSession) UserID() string { return "user_id" }
func (s *fakeSession) State() map[string]any { return s.state }
func (s *fakeSession) Events() []*types.Event { return s.events }
func (s *fakeSession) LastUpdateTime() time.Time { return s.updated }
func (s *fakeSession) AddEvent(events ...*types.Event) { s.events = append(s.events, events...) }
func (s *fakeSession) SetLastUpdateTime(t time.Time) { s.updated = t }

type textAgent struct {
	*types.BaseAgent

	executed int
}

func newTextAgent(t *testing.T, name string, opts ...types.Option) *textAgent {
	t.Helper()

	a := &textAgent{}
	base, err := types.NewBaseAgent(a, name, opts...)
	if err != nil {
		t.Fatalf("NewBaseAgent(%q): %v", name, err)
	}
	a.BaseAgent = base
	return a
}

func (a *textAgent) Execute(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		a.executed++
		event := types.NewEvent().
			WithInvocationID(ictx.InvocationID).
			WithAuthor(a.Name()).
			WithBranch(ictx.Branch).
			WithContent(genai.NewContentFromText("hello from "+a.Name(), genai.RoleModel))
		yield(event, nil)
	}
}

func collect(t *testing.T, seq iter.Seq2[*types.Event, error]) []*types.Event {
	t.Helper()

	var events []*types.Event
	for event, err := range seq {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		events = append(events, event)
	}
	return events
}

func eventText(e *types.Event) string {
	content := e.GetContent()
	if content == nil || len(content.Parts) == 0 {
		return ""
	}
	return content.Parts[0].Text
}

func TestNewBaseAgentValidatesName(t *testing.T) {
	tests := []struct {
		name    string
		agent   string
		wantErr error
	}{
		{name: "valid", agent: "my_agent"},
		{name: "leading underscore", agent: "_agent1"},
		{name: "reserved user", agent: "user", wantErr: types.ErrInvalidAgentName},
		{name: "empty", agent: "", wantErr: types.ErrInvalidAgentName},
		{name: "leading digit", agent: "1agent", wantErr: types.ErrInvalidAgentName},
		{name: "dash", agent: "my-agent", wantErr: types.ErrInvalidAgentName},
		{name: "space", agent: "my agent", wantErr: types.ErrInvalidAgentName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := types.NewBaseAgent(nil, tt.agent)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewBaseAgent(%q) error = %v, want %v", tt.agent, err, tt.wantErr)
			}
		})
	}
}

func TestNewBaseAgentRejectsDuplicateSubAgents(t *testing.T) {
	a := newTextAgent(t, "a")
	b := newTextAgent(t, "a")

	_, err := types.NewBaseAgent(nil, "root", types.WithSubAgents(a, b))
	if !errors.Is(err, types.ErrDuplicateSubAgent) {
		t.Fatalf("error = %v, want %v", err, types.ErrDuplicateSubAgent)
	}
}

func TestSubAgentParentIsSetOnce(t *testing.T) {
	sub := newTextAgent(t, "sub")
	root1 := newTextAgent(t, "root1", types.WithSubAgents(sub))

	if got := sub.ParentAgent(); got != types.Agent(root1) {
		t.Fatalf("ParentAgent() = %v, want root1", got)
	}

	_, err := types.NewBaseAgent(nil, "root2", types.WithSubAgents(sub))
	if !errors.Is(err, types.ErrAgentAlreadyHasParent) {
		t.Fatalf("error = %v, want %v", err, types.ErrAgentAlreadyHasParent)
	}
	if got := sub.ParentAgent(); got != types.Agent(root1) {
		t.Fatalf("ParentAgent() changed to %v", got)
	}
}

func TestFindAgent(t *testing.T) {
	leaf := newTextAgent(t, "leaf")
	mid := newTextAgent(t, "mid", types.WithSubAgents(leaf))
	peer := newTextAgent(t, "peer")
	root := newTextAgent(t, "root", types.WithSubAgents(mid, peer))

	if got := leaf.RootAgent(); got != types.Agent(root) {
		t.Fatalf("RootAgent() = %v, want root", got.Name())
	}
	if got := leaf.FindAgent("root"); got != types.Agent(root) {
		t.Fatalf("FindAgent(root) from leaf = %v", got)
	}
	if got := leaf.FindAgent("peer"); got != types.Agent(peer) {
		t.Fatalf("FindAgent(peer) from leaf = %v", got)
	}
	if got := root.FindSubAgent("leaf"); got != types.Agent(leaf) {
		t.Fatalf("FindSubAgent(leaf) = %v", got)
	}
	if got := root.FindSubAgent("root"); got != nil {
		t.Fatalf("FindSubAgent(root) = %v, want nil", got.Name())
	}
	if got := mid.FindSubAgent("peer"); got != nil {
		t.Fatalf("FindSubAgent(peer) from mid = %v, want nil", got.Name())
	}
	if got := root.FindAgent("missing"); got != nil {
		t.Fatalf("FindAgent(missing) = %v, want nil", got.Name())
	}
}

func TestRunBeforeAgentCallbackShortCircuits(t *testing.T) {
	var calls int
	a := newTextAgent(t, "agent", types.WithBeforeAgentCallbacks(
		func(cctx *types.CallbackContext) (*genai.Content, error) {
			calls++
			return nil, nil
		},
		func(cctx *types.CallbackContext) (*genai.Content, error) {
			calls++
			return genai.NewContentFromText("skipped", genai.RoleModel), nil
		},
		func(cctx *types.CallbackContext) (*genai.Content, error) {
			calls++
			return genai.NewContentFromText("never", genai.RoleModel), nil
		},
	))
	ictx := types.NewInvocationContext(a, newFakeSession(), nil)

	events := collect(t, a.Run(t.Context(), ictx))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if got := eventText(events[0]); got != "skipped" {
		t.Errorf("event text = %q, want %q", got, "skipped")
	}
	if events[0].Author != "agent" {
		t.Errorf("event author = %q, want %q", events[0].Author, "agent")
	}
	if calls != 2 {
		t.Errorf("callbacks invoked %d times, want 2", calls)
	}
	if a.executed != 0 {
		t.Errorf("Execute ran %d times, want 0", a.executed)
	}
}

func TestRunAfterAgentCallbackAppendsEvent(t *testing.T) {
	a := newTextAgent(t, "agent", types.WithAfterAgentCallbacks(
		func(cctx *types.CallbackContext) (*genai.Content, error) {
			return genai.NewContentFromText("after", genai.RoleModel), nil
		},
	))
	ictx := types.NewInvocationContext(a, newFakeSession(), nil)

	events := collect(t, a.Run(t.Context(), ictx))
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if got := eventText(events[0]); got != "hello from agent" {
		t.Errorf("first event text = %q", got)
	}
	if got := eventText(events[1]); got != "after" {
		t.Errorf("second event text = %q", got)
	}
}

func TestRunBeforeAgentCallbackStateDelta(t *testing.T) {
	a := newTextAgent(t, "agent", types.WithBeforeAgentCallbacks(
		func(cctx *types.CallbackContext) (*genai.Content, error) {
			cctx.State().Set("seen", true)
			return nil, nil
		},
	))
	session := newFakeSession()
	ictx := types.NewInvocationContext(a, session, nil)

	events := collect(t, a.Run(t.Context(), ictx))
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if got := events[0].Actions.StateDelta["seen"]; got != true {
		t.Errorf("state delta seen = %v, want true", got)
	}
	if events[0].GetContent() != nil {
		t.Errorf("state delta event has content %v", events[0].GetContent())
	}
	if got := session.State()["seen"]; got != true {
		t.Errorf("session state seen = %v, want true", got)
	}
}

func TestRunBranch(t *testing.T) {
	a := newTextAgent(t, "child")

	session := newFakeSession()
	ictx := types.NewInvocationContext(a, session, nil, types.WithBranch("root"))
	events := collect(t, a.Run(t.Context(), ictx))
	if got, want := events[0].Branch, "root"; got != want {
		t.Errorf("branch = %q, want %q", got, want)
	}

	ictx = types.NewInvocationContext(a, session, nil)
	events = collect(t, a.Run(t.Context(), ictx))
	if got := events[0].Branch; got != "" {
		t.Errorf("branch = %q, want empty", got)
	}
}
