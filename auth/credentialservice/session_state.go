// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package credentialservice

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/zshehov/adk-python-sub001/types"
)

// SessionState is a [types.CredentialService] using the session state as the store.
//
// Credentials are saved as JSON strings. A key with the "temp:" prefix, the
// default for derived keys, is never persisted past the invocation.
//
// # Experimental
//
// This feature is experimental and may change or be removed in future versions without notice. It may
// introduce breaking changes at any time.
type SessionState struct{}

var _ types.CredentialService = (*SessionState)(nil)

// LoadCredential implements [types.CredentialService].
func (c *SessionState) LoadCredential(_ context.Context, authConfig *types.AuthConfig, toolCtx *types.ToolContext) (*types.AuthCredential, error) {
	if _, err := authConfig.Key(); err != nil {
		return nil, fmt.Errorf("credential key: %w", err)
	}
	return types.NewAuthHandler(authConfig).GetAuthResponse(toolCtx.State()), nil
}

// SaveCredential implements [types.CredentialService].
func (c *SessionState) SaveCredential(_ context.Context, authConfig *types.AuthConfig, toolCtx *types.ToolContext) error {
	key, err := authConfig.Key()
	if err != nil {
		return fmt.Errorf("credential key: %w", err)
	}
	if authConfig.ExchangedAuthCredential == nil {
		toolCtx.State().Set(key, nil)
		return nil
	}

	data, err := sonic.ConfigStd.MarshalToString(authConfig.ExchangedAuthCredential)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	toolCtx.State().Set(key, data)

	return nil
}
