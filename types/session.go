// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"maps"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"google.golang.org/genai"
)

// Session represents a series of interactions between a user and agents.
type Session interface {
	// ID returns the unique identifier of the session.
	ID() string

	// AppName returns the name of the app.
	AppName() string

	// UserID returns the id of the user.
	UserID() string

	// State returns the state of the session.
	//
	// The returned map is live: writes are visible to every holder of the session.
	State() map[string]any

	// Events returns the events of the session, e.g. user input, model response, function call/response, etc.
	Events() []*Event

	// LastUpdateTime returns the last update time of the session.
	LastUpdateTime() time.Time

	// AddEvent appends events to the session.
	AddEvent(events ...*Event)

	// SetLastUpdateTime sets the last update time of the session.
	SetLastUpdateTime(time.Time)
}

// StateLocker is implemented by sessions that guard their state with a lock.
//
// Contexts created for such a session share the lock, so state written by
// tools and by the session service never races.
type StateLocker interface {
	StateLock() *sync.RWMutex
}

func sessionStateLock(session Session) *sync.RWMutex {
	if l, ok := session.(StateLocker); ok {
		if mu := l.StateLock(); mu != nil {
			return mu
		}
	}
	return &sync.RWMutex{}
}

// ApplyStateDelta writes every non-temp entry of delta into the state of session.
//
// Keys keep their scope prefix. Session services call it when they append an event.
func ApplyStateDelta(session Session, delta map[string]any) {
	if len(delta) == 0 {
		return
	}
	if l, ok := session.(StateLocker); ok {
		mu := l.StateLock()
		mu.Lock()
		defer mu.Unlock()
	}
	state := session.State()
	for key, val := range delta {
		if IsTempKey(key) {
			continue
		}
		state[key] = val
	}
}

// TrimTempDelta removes temp keys from the state delta of event.
func TrimTempDelta(event *Event) *Event {
	if event == nil || event.Actions == nil || len(event.Actions.StateDelta) == 0 {
		return event
	}
	maps.DeleteFunc(event.Actions.StateDelta, func(key string, _ any) bool {
		return IsTempKey(key)
	})
	return event
}

// EncodeContent converts content into its JSON object form.
func EncodeContent(content *genai.Content) (map[string]any, error) {
	if content == nil {
		return nil, nil
	}

	data, err := sonic.ConfigFastest.Marshal(content)
	if err != nil {
		return nil, err
	}
	var result map[string]any
	if err := sonic.ConfigFastest.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// DecodeContent converts the JSON object form produced by [EncodeContent] back into content.
func DecodeContent(content map[string]any) (*genai.Content, error) {
	if content == nil {
		return nil, nil
	}

	data, err := sonic.ConfigFastest.Marshal(content)
	if err != nil {
		return nil, err
	}
	var result genai.Content
	if err := sonic.ConfigFastest.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
