// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package credentialservice

import (
	"context"
	"fmt"
	"sync"

	"github.com/zshehov/adk-python-sub001/types"
)

type (
	// Credentials maps app names to their user credentials.
	Credentials map[string]AppCredentials // appName -> appCredentials

	// AppCredentials maps user IDs to their credentials.
	AppCredentials map[string]UserCredentials // userID -> userCredentials

	// UserCredentials maps credential keys to credentials.
	UserCredentials map[string]*types.AuthCredential // credential key -> *types.AuthCredential
)

// InMemory is an in-memory [types.CredentialService].
//
// # Experimental
//
// This feature is experimental and may change or be removed in future versions without notice. It may
// introduce breaking changes at any time.
type InMemory struct {
	mu          sync.Mutex
	credentials Credentials
}

var _ types.CredentialService = (*InMemory)(nil)

// NewInMemory returns an empty [InMemory].
func NewInMemory() *InMemory {
	return &InMemory{
		credentials: make(Credentials),
	}
}

// LoadCredential implements [types.CredentialService].
func (c *InMemory) LoadCredential(_ context.Context, authConfig *types.AuthConfig, toolCtx *types.ToolContext) (*types.AuthCredential, error) {
	key, err := authConfig.Key()
	if err != nil {
		return nil, fmt.Errorf("credential key: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.bucket(toolCtx)[key], nil
}

// SaveCredential implements [types.CredentialService].
func (c *InMemory) SaveCredential(_ context.Context, authConfig *types.AuthConfig, toolCtx *types.ToolContext) error {
	key, err := authConfig.Key()
	if err != nil {
		return fmt.Errorf("credential key: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.bucket(toolCtx)[key] = authConfig.ExchangedAuthCredential
	return nil
}

// bucket returns the credentials of the current app and user, creating them lazily.
func (c *InMemory) bucket(toolCtx *types.ToolContext) UserCredentials {
	ictx := toolCtx.InvocationContext()

	appName := ictx.AppName()
	if _, ok := c.credentials[appName]; !ok {
		c.credentials[appName] = make(AppCredentials)
	}
	userID := ictx.UserID()
	if _, ok := c.credentials[appName][userID]; !ok {
		c.credentials[appName][userID] = make(UserCredentials)
	}

	return c.credentials[appName][userID]
}
