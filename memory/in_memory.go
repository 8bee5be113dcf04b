// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"unicode"

	"github.com/zshehov/adk-python-sub001/types"
	"github.com/zshehov/adk-python-sub001/types/py"
)

// InMemoryService represents an in-memory memory service for prototyping purpose only.
//
// Uses keyword matching instead of semantic search.
type InMemoryService struct {
	mu sync.RWMutex
	// sessionEvents maps app_name/user_id to session id to the events with content.
	sessionEvents map[string]map[string][]*types.Event
	logger        *slog.Logger
}

var _ types.MemoryService = (*InMemoryService)(nil)

// Option configures an [InMemoryService].
type Option func(*InMemoryService)

// WithLogger sets the logger of the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *InMemoryService) {
		s.logger = logger
	}
}

// NewInMemoryService creates a new [InMemoryService].
func NewInMemoryService(opts ...Option) *InMemoryService {
	s := &InMemoryService{
		sessionEvents: make(map[string]map[string][]*types.Event),
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func userKey(appName, userID string) string {
	return appName + "/" + userID
}

// AddSessionToMemory implements [types.MemoryService].
//
// Adding a session again replaces its previously stored events.
func (s *InMemoryService) AddSessionToMemory(ctx context.Context, session types.Session) error {
	var events []*types.Event
	for _, event := range session.Events() {
		if content := event.GetContent(); content != nil && len(content.Parts) > 0 {
			events = append(events, event)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := userKey(session.AppName(), session.UserID())
	if s.sessionEvents[key] == nil {
		s.sessionEvents[key] = make(map[string][]*types.Event)
	}
	s.sessionEvents[key][session.ID()] = events

	s.logger.InfoContext(ctx, "session added to memory",
		slog.String("app_name", session.AppName()),
		slog.String("user_id", session.UserID()),
		slog.String("session_id", session.ID()),
		slog.Int("events", len(events)),
	)
	return nil
}

// SearchMemory implements [types.MemoryService].
func (s *InMemoryService) SearchMemory(ctx context.Context, appName, userID, query string) (*types.SearchMemoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	response := &types.SearchMemoryResponse{
		Memories: []*types.MemoryEntry{},
	}
	sessions, ok := s.sessionEvents[userKey(appName, userID)]
	if !ok {
		return response, nil
	}

	queryWords := extractWordsLower(query)
	for _, events := range sessions {
		for _, event := range events {
			var texts []string
			for _, part := range event.Content.Parts {
				if part != nil && part.Text != "" {
					texts = append(texts, part.Text)
				}
			}
			eventWords := extractWordsLower(strings.Join(texts, " "))
			if eventWords.Len() == 0 || !eventWords.HasAny(queryWords.UnsortedList()...) {
				continue
			}
			response.Memories = append(response.Memories, &types.MemoryEntry{
				Content:   event.Content,
				Author:    event.Author,
				Timestamp: event.Timestamp,
			})
		}
	}

	return response, nil
}

func extractWordsLower(text string) py.Set[string] {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	set := py.NewSet[string]()
	for _, word := range words {
		set.Insert(strings.ToLower(word))
	}
	return set
}
