// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package credentialservice stores the credentials of authenticated tools.
//
// Credentials are scoped by app and user and addressed by the key of their
// [types.AuthConfig]:
//
//	{appName} -> {userID} -> {credentialKey} -> AuthCredential
//
// [InMemory] keeps them in process memory. [SessionState] keeps them in the
// session state as JSON, so they follow the persistence rules of the state key.
//
// # Experimental
//
// This package is experimental and may change in future versions.
package credentialservice
