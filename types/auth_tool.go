// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// AuthConfig is sent by a tool asking the client to collect auth credentials. The framework
// and the client together fill in the response.
type AuthConfig struct {
	// The auth scheme used to collect credentials
	AuthScheme AuthScheme

	// The raw auth credential used to collect credentials. The raw auth
	// credentials are used in some auth scheme that needs to exchange auth
	// credentials. e.g. OAuth2 and OIDC. For other auth scheme, it could be nil.
	RawAuthCredential *AuthCredential

	// The exchanged auth credential used to collect credentials. The framework and
	// the client work together to fill it. For auth schemes that don't need an
	// exchange, e.g. API key or service account, it's filled by the client
	// directly. For OAuth2 and OIDC it's first filled by the framework with the
	// authorization uri and state, then the client fills the auth response.
	ExchangedAuthCredential *AuthCredential

	// CredentialKey is a user specified key used to load and save this credential
	// in a credential service. When empty the key is derived from the scheme and
	// the raw credential.
	CredentialKey string
}

type authConfigJSON struct {
	AuthScheme              jsontext.Value  `json:"auth_scheme,omitzero"`
	RawAuthCredential       *AuthCredential `json:"raw_auth_credential,omitzero"`
	ExchangedAuthCredential *AuthCredential `json:"exchanged_auth_credential,omitzero"`
	CredentialKey           string          `json:"credential_key,omitzero"`
}

// MarshalJSON implements [json.Marshaler].
func (ac *AuthConfig) MarshalJSON() ([]byte, error) {
	wire := authConfigJSON{
		RawAuthCredential:       ac.RawAuthCredential,
		ExchangedAuthCredential: ac.ExchangedAuthCredential,
		CredentialKey:           ac.CredentialKey,
	}
	if ac.AuthScheme != nil {
		scheme, err := json.Marshal(ac.AuthScheme)
		if err != nil {
			return nil, fmt.Errorf("encode auth scheme: %w", err)
		}
		wire.AuthScheme = scheme
	}

	return json.Marshal(wire)
}

// UnmarshalJSON implements [json.Unmarshaler].
func (ac *AuthConfig) UnmarshalJSON(data []byte) error {
	var wire authConfigJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*ac = AuthConfig{
		RawAuthCredential:       wire.RawAuthCredential,
		ExchangedAuthCredential: wire.ExchangedAuthCredential,
		CredentialKey:           wire.CredentialKey,
	}
	if len(wire.AuthScheme) > 0 && wire.AuthScheme.Kind() == '{' {
		scheme, err := UnmarshalAuthScheme(wire.AuthScheme)
		if err != nil {
			return err
		}
		ac.AuthScheme = scheme
	}

	return nil
}

// Validate reports a structurally invalid config.
//
// OAuth2 and OpenID Connect schemes need a raw credential, and OAuth2 further
// needs the client id and secret of that credential.
func (ac *AuthConfig) Validate() error {
	if ac == nil || ac.AuthScheme == nil {
		return fmt.Errorf("%w: auth_scheme is empty", ErrInvalidAuthConfig)
	}

	switch schemeType := GetAuthSchemeType(ac.AuthScheme); schemeType {
	case OAuth2CredentialTypes, OpenIDConnectCredentialTypes:
		if ac.RawAuthCredential == nil {
			return fmt.Errorf("%w: raw_auth_credential is required for auth_scheme type %s", ErrInvalidAuthConfig, schemeType)
		}
		if schemeType == OAuth2CredentialTypes {
			oauth2 := ac.RawAuthCredential.OAuth2
			if oauth2 == nil || oauth2.ClientID == "" || oauth2.ClientSecret == "" {
				return fmt.Errorf("%w: auth_config.raw_credential.oauth2 requires client_id and client_secret", ErrInvalidAuthConfig)
			}
		}
	}

	return nil
}

// Key returns the key used to save / load this credential to / from a credential service
// or the session state.
func (ac *AuthConfig) Key() (string, error) {
	if ac.CredentialKey != "" {
		return ac.CredentialKey, nil
	}
	return NewAuthHandler(ac).GetCredentialKey()
}

// ToMap returns the JSON object form of the config, as carried in function call arguments and responses.
func (ac *AuthConfig) ToMap() (map[string]any, error) {
	return toJSONMap(ac)
}

// AuthConfigFromMap decodes a config from its JSON object form.
func AuthConfigFromMap(data map[string]any) (*AuthConfig, error) {
	var ac AuthConfig
	if err := fromJSONMap(data, &ac); err != nil {
		return nil, fmt.Errorf("decode auth config: %w", err)
	}
	return &ac, nil
}

// AuthToolArguments is the arguments of the special long running function tool that is used to
// request end user credentials.
type AuthToolArguments struct {
	// FunctionCallID is the ID of the function call requesting authentication.
	FunctionCallID string `json:"function_call_id"`

	// AuthConfig is the authentication configuration requested.
	AuthConfig *AuthConfig `json:"auth_config"`
}

// ToMap returns the JSON object form of the arguments.
func (a *AuthToolArguments) ToMap() (map[string]any, error) {
	return toJSONMap(a)
}

// AuthToolArgumentsFromMap decodes the arguments of a credential request call.
func AuthToolArgumentsFromMap(data map[string]any) (*AuthToolArguments, error) {
	var args AuthToolArguments
	if err := fromJSONMap(data, &args); err != nil {
		return nil, fmt.Errorf("decode auth tool arguments: %w", err)
	}
	return &args, nil
}

func toJSONMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromJSONMap(m map[string]any, v any) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
