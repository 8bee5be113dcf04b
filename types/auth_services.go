// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
)

// CredentialService stores the exchanged credentials of tools outside the session.
type CredentialService interface {
	// LoadCredential returns the credential stored for authConfig, or nil when none is stored.
	LoadCredential(ctx context.Context, authConfig *AuthConfig, toolCtx *ToolContext) (*AuthCredential, error)

	// SaveCredential stores authConfig.ExchangedAuthCredential.
	SaveCredential(ctx context.Context, authConfig *AuthConfig, toolCtx *ToolContext) error
}

// CredentialExchangeError is returned when a credential cannot be exchanged.
type CredentialExchangeError string

func (e CredentialExchangeError) Error() string {
	return string(e)
}

// CredentialExchanger turns a raw credential into one usable by a tool,
// e.g. an OAuth2 authorization code into an access token.
type CredentialExchanger interface {
	Exchange(ctx context.Context, authCredential *AuthCredential, authScheme AuthScheme) (*AuthCredential, error)
}

// CredentialRefresherError is returned when an expired credential cannot be refreshed.
type CredentialRefresherError string

func (e CredentialRefresherError) Error() string {
	return string(e)
}

// CredentialRefresher renews credentials that expired.
type CredentialRefresher interface {
	// IsRefreshNeeded reports whether authCredential expired.
	IsRefreshNeeded(ctx context.Context, authCredential *AuthCredential, authScheme AuthScheme) bool

	// Refresh returns a renewed copy of authCredential, or authCredential itself
	// when no refresh is needed.
	Refresh(ctx context.Context, authCredential *AuthCredential, authScheme AuthScheme) (*AuthCredential, error)
}

// AuthenticatedTool is a [Tool] run with a credential resolved by the credential manager.
type AuthenticatedTool interface {
	Tool

	// Execute runs the tool with the ready credential; credential is nil for
	// tools whose credential is optional and was not provided.
	Execute(ctx context.Context, args map[string]any, toolCtx *ToolContext, credential *AuthCredential) (any, error)
}
