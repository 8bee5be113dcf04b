// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import "time"

// HTTPCredentials holds the secrets of an HTTP credential: a username and
// password for basic auth, a token for bearer auth.
type HTTPCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Token    string `json:"token"`
}

// HTTPAuth is an HTTP credential; Scheme is the RFC 7235 scheme name, e.g. "basic" or "bearer".
type HTTPAuth struct {
	Scheme      string          `json:"scheme"`
	Credentials HTTPCredentials `json:"credentials"`
}

// OAuth2Auth is an OAuth2 credential at any stage of the authorization code flow.
//
// The client fields are set by the tool, AuthURI and State when the
// authorization is requested, AuthResponseURI or AuthCode by the client, and
// the tokens once the code is exchanged.
type OAuth2Auth struct {
	ClientID     string `json:"client_id,omitzero"`
	ClientSecret string `json:"client_secret,omitzero"`
	AuthURI string `json:"auth_uri,omitzero"`
	State   string `json:"state,omitzero"`
	RedirectURI     string `json:"redirect_uri,omitzero"`
	AuthResponseURI string `json:"auth_response_uri,omitzero"`
	AuthCode        string `json:"auth_code,omitzero"`
	AccessToken     string `json:"access_token,omitzero"`
	RefreshToken    string `json:"refresh_token,omitzero"`
	// ExpiresAt is the absolute expiry of AccessToken.
	ExpiresAt time.Time `json:"expires_at,omitzero"`
	// ExpiresIn is the token lifetime in seconds as reported by the token endpoint.
	ExpiresIn int64 `json:"expires_in,omitzero"`
}

// ServiceAccountCredential mirrors the JSON key file of a Google service account.
type ServiceAccountCredential struct {
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url"`
	UniverseDomain          string `json:"universe_domain"`
}

// ServiceAccount selects a service account key, or the application default
// credentials with UseDefaultCredential, and the scopes to request.
type ServiceAccount struct {
	ServiceAccountCredential ServiceAccountCredential `json:"service_account_credential,omitzero"`
	Scopes                   []string                 `json:"scopes"`
	UseDefaultCredential     bool                     `json:"use_default_credential,omitzero"`
}

// AuthCredentialTypes names the kind of an [AuthCredential].
type AuthCredentialTypes string

const (
	// APIKeyCredentialTypes is a static API key.
	APIKeyCredentialTypes AuthCredentialTypes = "apiKey"

	// HTTPCredentialTypes is an HTTP Authorization header credential.
	HTTPCredentialTypes AuthCredentialTypes = "http"

	// OAuth2CredentialTypes is an OAuth2 client or token.
	OAuth2CredentialTypes AuthCredentialTypes = "oauth2"

	// OpenIDConnectCredentialTypes is an OAuth2 credential of an OpenID Connect provider.
	OpenIDConnectCredentialTypes AuthCredentialTypes = "openIdConnect"

	// ServiceAccountCredentialTypes is a Google service account.
	ServiceAccountCredentialTypes AuthCredentialTypes = "serviceAccount"
)

// AuthCredential is a credential of one of the [AuthCredentialTypes].
//
// Only the field matching AuthType is set. Raw credentials are turned into
// usable ones by a [CredentialExchanger].
type AuthCredential struct {
	AuthType AuthCredentialTypes `json:"auth_type,omitzero"`

	// ResourceRef references a credential kept by an external store.
	ResourceRef string `json:"resource_ref,omitzero"`

	APIKey         string          `json:"api_key,omitzero"`
	HTTP           *HTTPAuth       `json:"http,omitzero"`
	ServiceAccount *ServiceAccount `json:"service_account,omitzero"`
	OAuth2         *OAuth2Auth     `json:"oauth2,omitzero"`
}
