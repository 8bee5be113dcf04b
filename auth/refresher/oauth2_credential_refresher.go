// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package refresher

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/zshehov/adk-python-sub001/types"
)

// OAuth2CredentialRefresher refreshes OAuth2 and OpenID Connect credentials using their refresh token.
type OAuth2CredentialRefresher struct{}

var _ types.CredentialRefresher = (*OAuth2CredentialRefresher)(nil)

// IsRefreshNeeded implements [types.CredentialRefresher].
//
// A credential needs a refresh once its access token is expired. Credentials
// without an expiry never do.
func (r *OAuth2CredentialRefresher) IsRefreshNeeded(_ context.Context, authCredential *types.AuthCredential, _ types.AuthScheme) bool {
	if authCredential == nil || authCredential.OAuth2 == nil {
		return false
	}
	tok := types.TokenFromCredential(authCredential)
	if tok.Expiry.IsZero() {
		return false
	}
	return !tok.Valid()
}

// Refresh implements [types.CredentialRefresher].
//
// On failure the original credential is returned so callers can keep using it.
func (r *OAuth2CredentialRefresher) Refresh(ctx context.Context, authCredential *types.AuthCredential, authScheme types.AuthScheme) (*types.AuthCredential, error) {
	if authCredential == nil || authCredential.OAuth2 == nil || authScheme == nil {
		return authCredential, nil
	}
	if !r.IsRefreshNeeded(ctx, authCredential, authScheme) || authCredential.OAuth2.RefreshToken == "" {
		return authCredential, nil
	}

	session := types.CreateOAuth2Session(authScheme, authCredential)
	if session == nil {
		return authCredential, nil
	}

	expired := &oauth2.Token{
		RefreshToken: authCredential.OAuth2.RefreshToken,
		Expiry:       time.Now().Add(-time.Hour),
	}
	tok, err := session.TokenSource(ctx, expired).Token()
	if err != nil {
		return authCredential, types.CredentialRefresherError("refresh oauth2 token: " + err.Error())
	}

	return types.UpdateCredentialWithTokens(authCredential, tok), nil
}
