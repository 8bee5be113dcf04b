// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package session implements [types.SessionService] in memory.
//
// Sessions are organized per app and user:
//
//	{appName} -> {userID} -> {sessionID} -> Session
//
// State keys are scoped by prefix. Keys with the "app:" prefix are shared by
// all users of an app, keys with the "user:" prefix by all sessions of a user,
// and keys with the "temp:" prefix are dropped when an event is appended.
// Other keys belong to the session.
package session
