// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"slices"

	"github.com/bytedance/sonic"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	deepcopy "github.com/tiendc/go-deepcopy"
	"golang.org/x/oauth2"
)

// AuthHandler drives the end user credential flow of one [AuthConfig].
type AuthHandler struct {
	authConfig *AuthConfig
}

// NewAuthHandler creates a new AuthHandler with the given authConfig.
func NewAuthHandler(authConfig *AuthConfig) *AuthHandler {
	return &AuthHandler{
		authConfig: authConfig,
	}
}

// needsExchange reports whether the scheme of the config goes through an OAuth2 style exchange.
func (h *AuthHandler) needsExchange() bool {
	switch GetAuthSchemeType(h.authConfig.AuthScheme) {
	case OAuth2CredentialTypes, OpenIDConnectCredentialTypes:
		return true
	default:
		return false
	}
}

// ExchangeAuthToken generates an auth token from the authorization response.
//
// The exchanged credential is returned unchanged when the scheme has no token
// endpoint or the credential already carries an access token.
func (h *AuthHandler) ExchangeAuthToken(ctx context.Context) (*AuthCredential, error) {
	authCredential := h.authConfig.ExchangedAuthCredential
	if authCredential == nil || authCredential.OAuth2 == nil || authCredential.OAuth2.AccessToken != "" {
		return authCredential, nil
	}

	session := CreateOAuth2Session(h.authConfig.AuthScheme, authCredential)
	if session == nil {
		return authCredential, nil
	}

	code := authCredential.OAuth2.AuthCode
	if code == "" && authCredential.OAuth2.AuthResponseURI != "" {
		u, err := url.Parse(authCredential.OAuth2.AuthResponseURI)
		if err != nil {
			return authCredential, fmt.Errorf("parse auth response uri: %w", err)
		}
		code = u.Query().Get("code")
	}
	if code == "" {
		return authCredential, errors.New("authorization code not found in auth response")
	}

	tok, err := session.Exchange(ctx, code)
	if err != nil {
		return authCredential, fmt.Errorf("exchange authorization code: %w", err)
	}

	return UpdateCredentialWithTokens(&AuthCredential{AuthType: OAuth2CredentialTypes}, tok), nil
}

// ParseAndStoreAuthResponse stores the credential the client returned in state under
// the credential key, exchanging it for a token first for OAuth2 and OpenID Connect.
//
// When the exchange fails the unexchanged credential stays stored and the error is returned.
func (h *AuthHandler) ParseAndStoreAuthResponse(ctx context.Context, state *State) error {
	credentialKey, err := h.authConfig.Key()
	if err != nil {
		return err
	}
	state.Set(credentialKey, h.authConfig.ExchangedAuthCredential)

	if !h.needsExchange() {
		return nil
	}

	creds, err := h.ExchangeAuthToken(ctx)
	if err != nil {
		return err
	}
	state.Set(credentialKey, creds)

	return nil
}

// GetAuthResponse returns the credential stored in state under the credential key, or nil.
//
// Stored values may be a credential or its JSON form when the state was
// reloaded from storage. A config whose key cannot be derived has no response.
func (h *AuthHandler) GetAuthResponse(state *State) *AuthCredential {
	key, err := h.authConfig.Key()
	if err != nil {
		return nil
	}
	v, ok := state.Get(key)
	if !ok || v == nil {
		return nil
	}

	switch v := v.(type) {
	case *AuthCredential:
		return v
	case AuthCredential:
		return &v
	case string:
		return decodeCredential([]byte(v))
	case []byte:
		return decodeCredential(v)
	default:
		data, err := sonic.ConfigStd.Marshal(v)
		if err != nil {
			return nil
		}
		return decodeCredential(data)
	}
}

func decodeCredential(data []byte) *AuthCredential {
	var cred AuthCredential
	if err := sonic.ConfigStd.Unmarshal(data, &cred); err != nil {
		return nil
	}
	return &cred
}

// GenerateAuthRequest returns the config sent to the client to start the credential flow.
//
// For OAuth2 and OpenID Connect it fills the exchanged credential with an
// authorization uri unless one is already present.
func (h *AuthHandler) GenerateAuthRequest() (*AuthConfig, error) {
	if !h.needsExchange() {
		return cloneAuthConfig(h.authConfig)
	}

	// auth_uri already in exchanged credential
	if exchanged := h.authConfig.ExchangedAuthCredential; exchanged != nil && exchanged.OAuth2 != nil && exchanged.OAuth2.AuthURI != "" {
		return cloneAuthConfig(h.authConfig)
	}

	schemeType := GetAuthSchemeType(h.authConfig.AuthScheme)
	raw := h.authConfig.RawAuthCredential
	if raw == nil {
		return nil, fmt.Errorf("%w: auth scheme %s requires auth_credential", ErrInvalidAuthConfig, schemeType)
	}
	if raw.OAuth2 == nil {
		return nil, fmt.Errorf("%w: auth scheme %s requires oauth2 in auth_credential", ErrInvalidAuthConfig, schemeType)
	}

	// auth_uri in raw credential
	if raw.OAuth2.AuthURI != "" {
		exchanged, err := cloneCredential(raw)
		if err != nil {
			return nil, err
		}
		return &AuthConfig{
			AuthScheme:              h.authConfig.AuthScheme,
			RawAuthCredential:       raw,
			ExchangedAuthCredential: exchanged,
			CredentialKey:           h.authConfig.CredentialKey,
		}, nil
	}

	if raw.OAuth2.ClientID == "" || raw.OAuth2.ClientSecret == "" {
		return nil, fmt.Errorf("%w: auth scheme %s requires both client_id and client_secret in auth_credential.oauth2", ErrInvalidAuthConfig, schemeType)
	}

	exchanged, err := h.GenerateAuthURI()
	if err != nil {
		return nil, err
	}

	return &AuthConfig{
		AuthScheme:              h.authConfig.AuthScheme,
		RawAuthCredential:       raw,
		ExchangedAuthCredential: exchanged,
		CredentialKey:           h.authConfig.CredentialKey,
	}, nil
}

// GetCredentialKey generates a stable key for the auth scheme and raw credential of the config.
//
// The key is "temp:adk_<scheme type>_<hash>", where hash is the SHA-256 of the
// canonical JSON of the scheme and the raw credential, so equal configs map
// to the same key across processes.
func (h *AuthHandler) GetCredentialKey() (string, error) {
	payload := struct {
		AuthScheme        AuthScheme      `json:"auth_scheme,omitzero"`
		RawAuthCredential *AuthCredential `json:"raw_auth_credential,omitzero"`
	}{
		AuthScheme:        h.authConfig.AuthScheme,
		RawAuthCredential: h.authConfig.RawAuthCredential,
	}

	data, err := json.Marshal(payload, json.Deterministic(true))
	if err != nil {
		return "", fmt.Errorf("marshal credential key payload: %w", err)
	}
	canonical := jsontext.Value(data)
	if err := canonical.Canonicalize(); err != nil {
		return "", fmt.Errorf("canonicalize credential key payload: %w", err)
	}
	sum := sha256.Sum256(canonical)

	return "temp:adk_" + string(GetAuthSchemeType(h.authConfig.AuthScheme)) + "_" + hex.EncodeToString(sum[:16]), nil
}

// GenerateAuthURI generates a credential containing the auth uri for the user to sign in.
func (h *AuthHandler) GenerateAuthURI() (*AuthCredential, error) {
	var (
		authorizationEndpoint string
		scopes                []string
	)
	switch authScheme := h.authConfig.AuthScheme.(type) {
	case *OpenIDConnectWithConfig:
		authorizationEndpoint = authScheme.AuthorizationEndpoint
		scopes = authScheme.Scopes

	case *OAuth2SecurityScheme:
		if authScheme.Flows == nil {
			return nil, errors.New("oauth flows not defined in security scheme")
		}

		var flow *OAuthFlow
		switch flows := authScheme.Flows; {
		case flows.Implicit != nil && flows.Implicit.AuthorizationURL != "":
			flow, authorizationEndpoint = flows.Implicit, flows.Implicit.AuthorizationURL
		case flows.AuthorizationCode != nil && flows.AuthorizationCode.AuthorizationURL != "":
			flow, authorizationEndpoint = flows.AuthorizationCode, flows.AuthorizationCode.AuthorizationURL
		case flows.ClientCredentials != nil && flows.ClientCredentials.TokenURL != "":
			flow, authorizationEndpoint = flows.ClientCredentials, flows.ClientCredentials.TokenURL
		case flows.Password != nil && flows.Password.TokenURL != "":
			flow, authorizationEndpoint = flows.Password, flows.Password.TokenURL
		default:
			return nil, errors.New("no valid authorization URL found in security scheme")
		}
		scopes = slices.Sorted(maps.Keys(flow.Scopes))

	default:
		return nil, fmt.Errorf("unsupported auth scheme type %T", authScheme)
	}

	raw := h.authConfig.RawAuthCredential
	conf := &oauth2.Config{
		ClientID:     raw.OAuth2.ClientID,
		ClientSecret: raw.OAuth2.ClientSecret,
		Scopes:       scopes,
		RedirectURL:  raw.OAuth2.RedirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL: authorizationEndpoint,
		},
	}
	state := generateState()
	uri := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	exchanged, err := cloneCredential(raw)
	if err != nil {
		return nil, err
	}
	exchanged.OAuth2.AuthURI = uri
	exchanged.OAuth2.State = state

	return exchanged, nil
}

func cloneCredential(cred *AuthCredential) (*AuthCredential, error) {
	if cred == nil {
		return nil, nil
	}
	var out AuthCredential
	if err := deepcopy.Copy(&out, cred); err != nil {
		return nil, fmt.Errorf("copy auth credential: %w", err)
	}
	return &out, nil
}

// cloneAuthConfig copies the credentials of ac. The scheme is shared.
func cloneAuthConfig(ac *AuthConfig) (*AuthConfig, error) {
	raw, err := cloneCredential(ac.RawAuthCredential)
	if err != nil {
		return nil, err
	}
	exchanged, err := cloneCredential(ac.ExchangedAuthCredential)
	if err != nil {
		return nil, err
	}

	return &AuthConfig{
		AuthScheme:              ac.AuthScheme,
		RawAuthCredential:       raw,
		ExchangedAuthCredential: exchanged,
		CredentialKey:           ac.CredentialKey,
	}, nil
}

func generateState() string {
	data := make([]byte, 30)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(data)
}
