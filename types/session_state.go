// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"maps"
	"strings"
	"sync"
)

// State key prefixes selecting the scope of a state entry.
const (
	// AppPrefix is the prefix for application state keys shared by all users of an app.
	AppPrefix = "app:"

	// UserPrefix is the prefix for user state keys shared by all sessions of a user.
	UserPrefix = "user:"

	// TempPrefix is the prefix for temporary state keys that are never persisted.
	TempPrefix = "temp:"
)

// State maintains the current value of a state dictionary and any pending deltas
// that haven't been committed yet.
//
// Writes go to both the value and the delta so they are visible immediately and
// are recorded on the event that carries the delta.
type State struct {
	mu *sync.RWMutex

	// value is the current value of the state dict
	value map[string]any

	// delta is the pending change to the current value that hasn't been committed
	delta map[string]any
}

// NewState creates a new State with the given value and delta maps.
func NewState(value, delta map[string]any) *State {
	return newSharedState(&sync.RWMutex{}, value, delta)
}

// newSharedState creates a State guarded by mu, which may be shared with other
// State views of the same value map.
func newSharedState(mu *sync.RWMutex, value, delta map[string]any) *State {
	if value == nil {
		value = make(map[string]any)
	}
	if delta == nil {
		delta = make(map[string]any)
	}

	return &State{
		mu:    mu,
		value: value,
		delta: delta,
	}
}

// Get returns the value for the given key, prioritizing delta values
// over the base values.
func (s *State) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if val, ok := s.delta[key]; ok {
		return val, true
	}
	val, ok := s.value[key]
	return val, ok
}

// GetWithDefault returns the value for the given key, or defaultVal if the key doesn't exist.
func (s *State) GetWithDefault(key string, defaultVal any) any {
	if val, ok := s.Get(key); ok {
		return val
	}
	return defaultVal
}

// Set sets the value for the given key in both the value and the delta.
func (s *State) Set(key string, val any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.value[key] = val
	s.delta[key] = val
}

// Has reports whether the key exists in either value or delta.
func (s *State) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// HasDelta reports whether there are pending changes.
func (s *State) HasDelta() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.delta) > 0
}

// Update sets every entry of delta.
func (s *State) Update(delta map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	maps.Copy(s.value, delta)
	maps.Copy(s.delta, delta)
}

// ToMap returns a copy of the state with the delta applied.
func (s *State) ToMap() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := maps.Clone(s.value)
	if out == nil {
		out = make(map[string]any, len(s.delta))
	}
	maps.Copy(out, s.delta)
	return out
}

// Delta returns a copy of the pending changes.
func (s *State) Delta() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.delta)
}

// ClearDelta drops the pending changes.
func (s *State) ClearDelta() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.delta)
}

// IsTempKey reports whether key lives in the temp: scope.
func IsTempKey(key string) bool {
	return strings.HasPrefix(key, TempPrefix)
}

// SplitStateDelta splits delta into app-scoped, user-scoped and session-scoped entries.
//
// Prefixes are stripped from app and user keys. Temp keys are dropped.
func SplitStateDelta(delta map[string]any) (app, user, session map[string]any) {
	app = make(map[string]any)
	user = make(map[string]any)
	session = make(map[string]any)
	for key, val := range delta {
		switch {
		case strings.HasPrefix(key, AppPrefix):
			app[strings.TrimPrefix(key, AppPrefix)] = val
		case strings.HasPrefix(key, UserPrefix):
			user[strings.TrimPrefix(key, UserPrefix)] = val
		case IsTempKey(key):
		default:
			session[key] = val
		}
	}
	return app, user, session
}
