// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package session_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/session"
	"github.com/zshehov/adk-python-sub001/types"
)

func newEvent(author, text string, delta map[string]any) *types.Event {
	ev := types.NewEvent().
		WithAuthor(author).
		WithContent(genai.NewContentFromText(text, genai.RoleUser))
	if delta != nil {
		ev.Actions.StateDelta = delta
	}
	return ev
}

func TestCreateSession(t *testing.T) {
	svc := session.NewInMemoryService()
	ctx := t.Context()

	ses, err := svc.CreateSession(ctx, "app", "user", "", map[string]any{
		"app:theme": "dark",
		"user:lang": "en",
		"temp:x":    1,
		"count":     2,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if ses.ID() == "" {
		t.Fatal("CreateSession did not generate an id")
	}

	want := map[string]any{
		"app:theme": "dark",
		"user:lang": "en",
		"count":     2,
	}
	if diff := cmp.Diff(want, ses.State()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}

	if _, err := svc.CreateSession(ctx, "app", "user", ses.ID(), nil); !errors.Is(err, types.ErrSessionAlreadyExists) {
		t.Errorf("CreateSession with used id: err = %v, want %v", err, types.ErrSessionAlreadyExists)
	}

	other, err := svc.CreateSession(ctx, "app", "other-user", "s2", nil)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"app:theme": "dark"}, other.State()); diff != "" {
		t.Errorf("other user state mismatch (-want +got):\n%s", diff)
	}
}

func TestAppendEvent(t *testing.T) {
	svc := session.NewInMemoryService()
	ctx := t.Context()

	ses, err := svc.CreateSession(ctx, "app", "user", "s1", nil)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	ev := newEvent("agent", "hi", map[string]any{
		"app:k":  "a",
		"user:k": "u",
		"temp:k": "t",
		"k":      "s",
	})
	got, err := svc.AppendEvent(ctx, ses, ev)
	if err != nil {
		t.Fatalf("AppendEvent: %v", err)
	}
	if _, ok := got.Actions.StateDelta["temp:k"]; ok {
		t.Error("temp key kept in the appended event delta")
	}
	if n := len(ses.Events()); n != 1 {
		t.Errorf("len(ses.Events()) = %d, want 1", n)
	}
	if _, ok := ses.State()["temp:k"]; ok {
		t.Error("temp key applied to the session state")
	}

	partial := newEvent("agent", "chunk", nil)
	partial.Partial = true
	if _, err := svc.AppendEvent(ctx, ses, partial); err != nil {
		t.Fatalf("AppendEvent(partial): %v", err)
	}

	stored, err := svc.GetSession(ctx, "app", "user", "s1", nil)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if n := len(stored.Events()); n != 1 {
		t.Errorf("stored events = %d, want 1 (partial events are not stored)", n)
	}
	want := map[string]any{
		"app:k":  "a",
		"user:k": "u",
		"k":      "s",
	}
	if diff := cmp.Diff(want, stored.State()); diff != "" {
		t.Errorf("stored state mismatch (-want +got):\n%s", diff)
	}

	// user state is visible from another session of the same user
	s2, err := svc.CreateSession(ctx, "app", "user", "s2", nil)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"app:k": "a", "user:k": "u"}, s2.State()); diff != "" {
		t.Errorf("second session state mismatch (-want +got):\n%s", diff)
	}
}

func TestGetSessionIsolation(t *testing.T) {
	svc := session.NewInMemoryService()
	ctx := t.Context()

	if _, err := svc.CreateSession(ctx, "app", "user", "s1", map[string]any{"k": "v"}); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := svc.GetSession(ctx, "app", "user", "s1", nil)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	got.State()["k"] = "changed"

	again, err := svc.GetSession(ctx, "app", "user", "s1", nil)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if v := again.State()["k"]; v != "v" {
		t.Errorf("stored state changed through a returned copy: k = %v", v)
	}

	missing, err := svc.GetSession(ctx, "app", "user", "nope", nil)
	if err != nil || missing != nil {
		t.Errorf("GetSession(missing) = %v, %v, want nil, nil", missing, err)
	}
}

func TestGetSessionConfig(t *testing.T) {
	svc := session.NewInMemoryService()
	ctx := t.Context()

	ses, err := svc.CreateSession(ctx, "app", "user", "s1", nil)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, text := range []string{"a", "b", "c", "d"} {
		ev := newEvent("agent", text, nil).WithTimestamp(base.Add(time.Duration(i) * time.Minute))
		if _, err := svc.AppendEvent(ctx, ses, ev); err != nil {
			t.Fatalf("AppendEvent: %v", err)
		}
	}

	texts := func(ses types.Session) []string {
		var out []string
		for _, ev := range ses.Events() {
			out = append(out, ev.Text())
		}
		return out
	}

	tests := map[string]struct {
		config *types.GetSessionConfig
		want   []string
	}{
		"Recent": {
			config: &types.GetSessionConfig{NumRecentEvents: 2},
			want:   []string{"c", "d"},
		},
		"After": {
			config: &types.GetSessionConfig{AfterTimestamp: base.Add(time.Minute)},
			want:   []string{"b", "c", "d"},
		},
		"Both": {
			config: &types.GetSessionConfig{NumRecentEvents: 3, AfterTimestamp: base.Add(2 * time.Minute)},
			want:   []string{"c", "d"},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := svc.GetSession(ctx, "app", "user", "s1", tt.config)
			if err != nil {
				t.Fatalf("GetSession: %v", err)
			}
			if diff := cmp.Diff(tt.want, texts(got)); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListAndDeleteSessions(t *testing.T) {
	svc := session.NewInMemoryService()
	ctx := t.Context()

	for _, id := range []string{"s1", "s2"} {
		ses, err := svc.CreateSession(ctx, "app", "user", id, nil)
		if err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
		if _, err := svc.AppendEvent(ctx, ses, newEvent("user", "hello", nil)); err != nil {
			t.Fatalf("AppendEvent: %v", err)
		}
	}

	list, err := svc.ListSessions(ctx, "app", "user")
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(ListSessions) = %d, want 2", len(list))
	}
	for _, ses := range list {
		if n := len(ses.Events()); n != 0 {
			t.Errorf("listed session %s has %d events, want 0", ses.ID(), n)
		}
	}

	if err := svc.DeleteSession(ctx, "app", "user", "s1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	list, err = svc.ListSessions(ctx, "app", "user")
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(list) != 1 || list[0].ID() != "s2" {
		t.Errorf("ListSessions after delete = %d sessions, want only s2", len(list))
	}

	empty, err := svc.ListSessions(ctx, "nope", "nobody")
	if err != nil || len(empty) != 0 {
		t.Errorf("ListSessions(unknown) = %v, %v, want empty", empty, err)
	}
}
