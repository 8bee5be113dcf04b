// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"time"
)

// GetSessionConfig narrows the events returned by [SessionService.GetSession].
type GetSessionConfig struct {
	// NumRecentEvents keeps only the last N events when positive.
	NumRecentEvents int

	// AfterTimestamp keeps only events at or after the timestamp when non-zero.
	AfterTimestamp time.Time
}

// SessionService manages sessions and their events.
type SessionService interface {
	// CreateSession creates a new session. A new id is generated when sessionID is empty.
	CreateSession(ctx context.Context, appName, userID, sessionID string, state map[string]any) (Session, error)

	// GetSession returns the session, or nil if it does not exist.
	GetSession(ctx context.Context, appName, userID, sessionID string, config *GetSessionConfig) (Session, error)

	// ListSessions lists the sessions of a user, without events.
	ListSessions(ctx context.Context, appName, userID string) ([]Session, error)

	// DeleteSession deletes a session.
	DeleteSession(ctx context.Context, appName, userID, sessionID string) error

	// AppendEvent appends an event to a session and applies its state delta.
	//
	// Partial events are returned unchanged and not stored.
	AppendEvent(ctx context.Context, ses Session, event *Event) (*Event, error)
}
