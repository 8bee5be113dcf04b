// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package exchanger

import (
	"context"
	"fmt"
	"net/url"

	"github.com/zshehov/adk-python-sub001/types"
)

// OAuth2CredentialExchanger exchanges an OAuth2 authorization response for tokens.
//
// # Experimental
//
// This feature is experimental and may change or be removed in future versions without notice. It may
// introduce breaking changes at any time.
type OAuth2CredentialExchanger struct{}

var _ types.CredentialExchanger = (*OAuth2CredentialExchanger)(nil)

// Exchange implements [types.CredentialExchanger].
//
// Credentials that already hold an access token, that cannot form an OAuth2
// session, or whose scheme does not use the authorization code grant are
// returned unchanged. When the exchange itself fails the unexchanged credential
// is returned along with the error.
func (e *OAuth2CredentialExchanger) Exchange(ctx context.Context, authCredential *types.AuthCredential, authScheme types.AuthScheme) (*types.AuthCredential, error) {
	if authScheme == nil {
		return nil, types.CredentialExchangeError("auth scheme is required for OAuth2 credential exchange")
	}
	if authCredential == nil || authCredential.OAuth2 == nil {
		return authCredential, nil
	}
	if authCredential.OAuth2.AccessToken != "" {
		return authCredential, nil
	}
	if scheme, ok := authScheme.(*types.OAuth2SecurityScheme); ok && types.FromOAuthFlows(scheme.Flows) != types.AuthorizationCodeGrant {
		return authCredential, nil
	}

	session := types.CreateOAuth2Session(authScheme, authCredential)
	if session == nil {
		return authCredential, nil
	}

	code := authCredential.OAuth2.AuthCode
	if uri := authCredential.OAuth2.AuthResponseURI; uri != "" {
		authURL, err := url.Parse(uri)
		if err != nil {
			return authCredential, types.CredentialExchangeError(fmt.Sprintf("invalid auth response uri: %v", err))
		}
		query := authURL.Query()
		// state guards against CSRF
		if state := query.Get("state"); session.State != "" && state != session.State {
			return authCredential, types.CredentialExchangeError(fmt.Sprintf("state mismatch: expected %s, got %s", session.State, state))
		}
		if code == "" {
			code = query.Get("code")
		}
	}
	if code == "" {
		return authCredential, types.CredentialExchangeError("authorization code not found")
	}

	tok, err := session.Exchange(ctx, code)
	if err != nil {
		return authCredential, types.CredentialExchangeError(fmt.Sprintf("exchange code for token: %v", err))
	}

	return types.UpdateCredentialWithTokens(authCredential, tok), nil
}
