// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"maps"
	"slices"

	"golang.org/x/oauth2"
)

// OAuth2Session represents a new OAuth 2 client requests session.
type OAuth2Session struct {
	*oauth2.Config
	State string
}

// CreateOAuth2Session create an OAuth2 session for token operations.
//
// It returns nil when the scheme has no token endpoint or the credential lacks
// the client id or secret.
func CreateOAuth2Session(authScheme AuthScheme, authCredential *AuthCredential) *OAuth2Session {
	var (
		tokenEndpoint string
		scopes        []string
	)

	switch authScheme := authScheme.(type) {
	case *OpenIDConnectWithConfig:
		if authScheme.TokenEndpoint == "" {
			return nil
		}
		tokenEndpoint = authScheme.TokenEndpoint
		scopes = authScheme.Scopes

	case *OAuth2SecurityScheme:
		if authScheme.Flows == nil || authScheme.Flows.AuthorizationCode == nil || authScheme.Flows.AuthorizationCode.TokenURL == "" {
			return nil
		}
		tokenEndpoint = authScheme.Flows.AuthorizationCode.TokenURL
		scopes = slices.Sorted(maps.Keys(authScheme.Flows.AuthorizationCode.Scopes))

	default:
		return nil
	}

	if authCredential == nil || authCredential.OAuth2 == nil || authCredential.OAuth2.ClientID == "" || authCredential.OAuth2.ClientSecret == "" {
		return nil
	}

	return &OAuth2Session{
		Config: &oauth2.Config{
			ClientID:     authCredential.OAuth2.ClientID,
			ClientSecret: authCredential.OAuth2.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL: tokenEndpoint,
			},
			Scopes:      scopes,
			RedirectURL: authCredential.OAuth2.RedirectURI,
		},
		State: authCredential.OAuth2.State,
	}
}

// TokenFromCredential returns the OAuth2 token held by authCredential, or nil.
func TokenFromCredential(authCredential *AuthCredential) *oauth2.Token {
	if authCredential == nil || authCredential.OAuth2 == nil {
		return nil
	}

	return &oauth2.Token{
		AccessToken:  authCredential.OAuth2.AccessToken,
		RefreshToken: authCredential.OAuth2.RefreshToken,
		Expiry:       authCredential.OAuth2.ExpiresAt,
		ExpiresIn:    authCredential.OAuth2.ExpiresIn,
	}
}

// UpdateCredentialWithTokens stores the token fields of tok in authCredential and returns it.
func UpdateCredentialWithTokens(authCredential *AuthCredential, tok *oauth2.Token) *AuthCredential {
	if authCredential.OAuth2 == nil {
		authCredential.OAuth2 = &OAuth2Auth{}
	}
	authCredential.OAuth2.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		authCredential.OAuth2.RefreshToken = tok.RefreshToken
	}
	authCredential.OAuth2.ExpiresAt = tok.Expiry
	authCredential.OAuth2.ExpiresIn = tok.ExpiresIn

	return authCredential
}
