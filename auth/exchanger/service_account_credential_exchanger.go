// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package exchanger

import (
	"context"
	"fmt"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
	"github.com/bytedance/sonic"

	"github.com/zshehov/adk-python-sub001/types"
)

// ServiceAccountCredentialExchanger exchanges a Google service account credential for a
// bearer access token.
//
// # Experimental
//
// This feature is experimental and may change or be removed in future versions without notice. It may
// introduce breaking changes at any time.
type ServiceAccountCredentialExchanger struct {
	// detect resolves credentials. Tests replace it.
	detect func(opts *credentials.DetectOptions) (*auth.Credentials, error)
}

var _ types.CredentialExchanger = (*ServiceAccountCredentialExchanger)(nil)

// Exchange implements [types.CredentialExchanger].
//
// The returned credential is an HTTP bearer credential carrying the access token.
func (e *ServiceAccountCredentialExchanger) Exchange(ctx context.Context, authCredential *types.AuthCredential, _ types.AuthScheme) (*types.AuthCredential, error) {
	if authCredential == nil || authCredential.ServiceAccount == nil {
		return nil, types.CredentialExchangeError("service account credentials are missing")
	}
	sa := authCredential.ServiceAccount

	opts := &credentials.DetectOptions{
		Scopes: sa.Scopes,
	}
	if !sa.UseDefaultCredential {
		if sa.ServiceAccountCredential.PrivateKey == "" {
			return nil, types.CredentialExchangeError("service account credentials are missing")
		}
		data, err := sonic.ConfigStd.Marshal(struct {
			Type string `json:"type"`
			types.ServiceAccountCredential
		}{
			Type:                     "service_account",
			ServiceAccountCredential: sa.ServiceAccountCredential,
		})
		if err != nil {
			return nil, types.CredentialExchangeError(fmt.Sprintf("encode service account credential: %v", err))
		}
		opts.CredentialsJSON = data
	}

	detect := e.detect
	if detect == nil {
		detect = credentials.DetectDefault
	}
	creds, err := detect(opts)
	if err != nil {
		return nil, types.CredentialExchangeError(fmt.Sprintf("load service account credentials: %v", err))
	}
	tok, err := creds.Token(ctx)
	if err != nil {
		return nil, types.CredentialExchangeError(fmt.Sprintf("exchange service account token: %v", err))
	}

	return &types.AuthCredential{
		AuthType: types.HTTPCredentialTypes,
		HTTP: &types.HTTPAuth{
			Scheme: "bearer",
			Credentials: types.HTTPCredentials{
				Token: tok.Value,
			},
		},
	}, nil
}
