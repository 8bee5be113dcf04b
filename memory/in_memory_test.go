// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package memory_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/memory"
	"github.com/zshehov/adk-python-sub001/session"
	"github.com/zshehov/adk-python-sub001/types"
)

func textEvent(author, text string) *types.Event {
	return types.NewEvent().
		WithAuthor(author).
		WithContent(genai.NewContentFromText(text, genai.RoleUser))
}

func TestInMemoryServiceSearch(t *testing.T) {
	ses := session.NewSession("app", "user", "s1", nil, time.Now())
	ses.AddEvent(
		textEvent("user", "What is the Weather in Paris?"),
		textEvent("weather_agent", "It is sunny."),
		types.NewEvent().WithAuthor("weather_agent"),
	)

	svc := memory.NewInMemoryService()
	if err := svc.AddSessionToMemory(t.Context(), ses); err != nil {
		t.Fatal(err)
	}

	tests := map[string]struct {
		appName string
		userID  string
		query   string
		want    []string
	}{
		"case insensitive": {
			appName: "app",
			userID:  "user",
			query:   "weather",
			want:    []string{"What is the Weather in Paris?"},
		},
		"any word matches": {
			appName: "app",
			userID:  "user",
			query:   "sunny, rainy",
			want:    []string{"It is sunny."},
		},
		"no match": {
			appName: "app",
			userID:  "user",
			query:   "London",
			want:    nil,
		},
		"other user": {
			appName: "app",
			userID:  "someone",
			query:   "weather",
			want:    nil,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			resp, err := svc.SearchMemory(t.Context(), tt.appName, tt.userID, tt.query)
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, m := range resp.Memories {
				got = append(got, m.Content.Parts[0].Text)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SearchMemory() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInMemoryServiceReplacesSession(t *testing.T) {
	svc := memory.NewInMemoryService()

	ses := session.NewSession("app", "user", "s1", nil, time.Now())
	ses.AddEvent(textEvent("user", "apples"))
	if err := svc.AddSessionToMemory(t.Context(), ses); err != nil {
		t.Fatal(err)
	}
	ses.AddEvent(textEvent("user", "more apples"))
	if err := svc.AddSessionToMemory(t.Context(), ses); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.SearchMemory(t.Context(), "app", "user", "apples")
	if err != nil {
		t.Fatal(err)
	}
	if got := len(resp.Memories); got != 2 {
		t.Errorf("len(Memories) = %d, want 2", got)
	}
}
