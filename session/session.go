// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"slices"
	"sync"
	"time"

	"github.com/zshehov/adk-python-sub001/types"
)

// session is the in-memory [types.Session].
type session struct {
	id      string
	appName string
	userID  string

	mu             sync.RWMutex
	events         []*types.Event
	lastUpdateTime time.Time

	stateMu sync.RWMutex
	state   map[string]any
}

var (
	_ types.Session     = (*session)(nil)
	_ types.StateLocker = (*session)(nil)
)

// NewSession creates a new session with the given parameters.
func NewSession(appName, userID, id string, state map[string]any, lastUpdateTime time.Time) types.Session {
	return newSession(appName, userID, id, state, lastUpdateTime)
}

func newSession(appName, userID, id string, state map[string]any, lastUpdateTime time.Time) *session {
	if state == nil {
		state = make(map[string]any)
	}

	return &session{
		id:             id,
		appName:        appName,
		userID:         userID,
		state:          state,
		lastUpdateTime: lastUpdateTime,
	}
}

// ID implements [types.Session].
func (s *session) ID() string {
	return s.id
}

// AppName implements [types.Session].
func (s *session) AppName() string {
	return s.appName
}

// UserID implements [types.Session].
func (s *session) UserID() string {
	return s.userID
}

// Events implements [types.Session].
//
// The returned slice is a snapshot; events appended later are not visible in it.
func (s *session) Events() []*types.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.events)
}

// State implements [types.Session].
func (s *session) State() map[string]any {
	return s.state
}

// StateLock implements [types.StateLocker].
func (s *session) StateLock() *sync.RWMutex {
	return &s.stateMu
}

// LastUpdateTime implements [types.Session].
func (s *session) LastUpdateTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastUpdateTime
}

// SetLastUpdateTime implements [types.Session].
func (s *session) SetLastUpdateTime(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUpdateTime = t
}

// AddEvent implements [types.Session].
func (s *session) AddEvent(events ...*types.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, events...)
}
