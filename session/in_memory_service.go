// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	deepcopy "github.com/tiendc/go-deepcopy"

	"github.com/zshehov/adk-python-sub001/types"
)

// InMemoryService is an in-memory implementation of [types.SessionService].
//
// Sessions handed out are deep copies. App and user scoped state is kept
// apart from the sessions and merged into every copy.
type InMemoryService struct {
	mu sync.RWMutex

	// sessions is a map from app name to a map from user ID to a map from session ID to session.
	sessions map[string]map[string]map[string]*session

	// userState is a map from app name to a map from user ID to a map from key to value.
	userState map[string]map[string]map[string]any

	// appState is a map from app name to a map from key to value.
	appState map[string]map[string]any

	logger *slog.Logger
}

var _ types.SessionService = (*InMemoryService)(nil)

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
		sessions:  make(map[string]map[string]map[string]*session),
		userState: make(map[string]map[string]map[string]any),
		appState:  make(map[string]map[string]any),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateSession implements [types.SessionService].
//
// Scoped entries of state go to the app and user state, temp entries are dropped.
func (s *InMemoryService) CreateSession(ctx context.Context, appName, userID, sessionID string, state map[string]any) (types.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	s.logger.InfoContext(ctx, "create session",
		slog.String("app_name", appName),
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)

	if _, ok := s.sessions[appName][userID][sessionID]; ok {
		return nil, fmt.Errorf("%w: %s", types.ErrSessionAlreadyExists, sessionID)
	}

	appDelta, userDelta, sessionState := types.SplitStateDelta(state)
	if len(appDelta) > 0 {
		maps.Copy(s.appStateFor(appName), appDelta)
	}
	if len(userDelta) > 0 {
		maps.Copy(s.userStateFor(appName, userID), userDelta)
	}

	ses := newSession(appName, userID, sessionID, sessionState, time.Now())
	if _, ok := s.sessions[appName]; !ok {
		s.sessions[appName] = make(map[string]map[string]*session)
	}
	if _, ok := s.sessions[appName][userID]; !ok {
		s.sessions[appName][userID] = make(map[string]*session)
	}
	s.sessions[appName][userID][sessionID] = ses

	copied, err := copySession(ses)
	if err != nil {
		return nil, err
	}
	return s.mergeState(appName, userID, copied), nil
}

// GetSession implements [types.SessionService].
func (s *InMemoryService) GetSession(ctx context.Context, appName, userID, sessionID string, config *types.GetSessionConfig) (types.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.logger.DebugContext(ctx, "get session",
		slog.String("app_name", appName),
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)

	stored, ok := s.sessions[appName][userID][sessionID]
	if !ok {
		return nil, nil
	}

	copied, err := copySession(stored)
	if err != nil {
		return nil, err
	}
	if config != nil {
		copied.events = filterEvents(copied.events, config)
	}

	return s.mergeState(appName, userID, copied), nil
}

func filterEvents(events []*types.Event, config *types.GetSessionConfig) []*types.Event {
	if config.NumRecentEvents > 0 && len(events) > config.NumRecentEvents {
		events = events[len(events)-config.NumRecentEvents:]
	}
	if !config.AfterTimestamp.IsZero() {
		i := len(events) - 1
		for i >= 0 && !events[i].Timestamp.Before(config.AfterTimestamp) {
			i--
		}
		events = events[i+1:]
	}
	return events
}

// ListSessions implements [types.SessionService].
func (s *InMemoryService) ListSessions(ctx context.Context, appName, userID string) ([]types.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.logger.DebugContext(ctx, "list sessions",
		slog.String("app_name", appName),
		slog.String("user_id", userID),
	)

	userSessions := s.sessions[appName][userID]
	sessions := make([]types.Session, 0, len(userSessions))
	for _, stored := range userSessions {
		copied, err := copySession(stored)
		if err != nil {
			return nil, err
		}
		copied.events = nil
		sessions = append(sessions, s.mergeState(appName, userID, copied))
	}

	return sessions, nil
}

// DeleteSession implements [types.SessionService].
func (s *InMemoryService) DeleteSession(ctx context.Context, appName, userID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.InfoContext(ctx, "delete session",
		slog.String("app_name", appName),
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)

	delete(s.sessions[appName][userID], sessionID)
	return nil
}

// AppendEvent implements [types.SessionService].
//
// Temp keys are removed from the state delta of event before it is applied
// to ses and to the stored session.
func (s *InMemoryService) AppendEvent(ctx context.Context, ses types.Session, event *types.Event) (*types.Event, error) {
	if event.IsPartial() {
		return event, nil
	}
	event = types.TrimTempDelta(event)

	var delta map[string]any
	if event.Actions != nil {
		delta = event.Actions.StateDelta
	}
	types.ApplyStateDelta(ses, delta)
	ses.AddEvent(event)
	ses.SetLastUpdateTime(event.Timestamp)

	s.mu.Lock()
	defer s.mu.Unlock()

	appName, userID, sessionID := ses.AppName(), ses.UserID(), ses.ID()
	stored, ok := s.sessions[appName][userID][sessionID]
	if !ok {
		s.logger.WarnContext(ctx, "append event to unknown session",
			slog.String("app_name", appName),
			slog.String("user_id", userID),
			slog.String("session_id", sessionID),
		)
		return event, nil
	}

	storedEvent, err := event.Clone()
	if err != nil {
		return nil, fmt.Errorf("copy event: %w", err)
	}
	appDelta, userDelta, _ := types.SplitStateDelta(delta)
	if len(appDelta) > 0 {
		maps.Copy(s.appStateFor(appName), appDelta)
	}
	if len(userDelta) > 0 {
		maps.Copy(s.userStateFor(appName, userID), userDelta)
	}
	types.ApplyStateDelta(stored, delta)
	stored.AddEvent(storedEvent)
	stored.SetLastUpdateTime(event.Timestamp)

	return event, nil
}

func (s *InMemoryService) appStateFor(appName string) map[string]any {
	if _, ok := s.appState[appName]; !ok {
		s.appState[appName] = make(map[string]any)
	}
	return s.appState[appName]
}

func (s *InMemoryService) userStateFor(appName, userID string) map[string]any {
	if _, ok := s.userState[appName]; !ok {
		s.userState[appName] = make(map[string]map[string]any)
	}
	if _, ok := s.userState[appName][userID]; !ok {
		s.userState[appName][userID] = make(map[string]any)
	}
	return s.userState[appName][userID]
}

// copySession returns a deep copy of ses.
func copySession(ses *session) (*session, error) {
	ses.stateMu.RLock()
	var state map[string]any
	err := deepcopy.Copy(&state, ses.state)
	ses.stateMu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("copy session state: %w", err)
	}

	copied := newSession(ses.appName, ses.userID, ses.id, state, ses.LastUpdateTime())
	for _, event := range ses.Events() {
		ev, err := event.Clone()
		if err != nil {
			return nil, fmt.Errorf("copy session event: %w", err)
		}
		copied.events = append(copied.events, ev)
	}

	return copied, nil
}

// mergeState merges app and user state into the state of ses.
func (s *InMemoryService) mergeState(appName, userID string, ses *session) *session {
	for key, value := range s.appState[appName] {
		ses.state[types.AppPrefix+key] = value
	}
	for key, value := range s.userState[appName][userID] {
		ses.state[types.UserPrefix+key] = value
	}

	return ses
}
