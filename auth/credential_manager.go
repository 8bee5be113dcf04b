// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zshehov/adk-python-sub001/auth/exchanger"
	"github.com/zshehov/adk-python-sub001/auth/refresher"
	"github.com/zshehov/adk-python-sub001/pkg/logging"
	"github.com/zshehov/adk-python-sub001/types"
)

// CredentialManager prepares the credential of one [types.AuthConfig] for a tool.
//
// GetAuthCredential walks the credential through these steps:
//
//  1. validate the config
//  2. return the raw credential when it is ready to use (API key, HTTP)
//  3. load a stored credential from the credential service or the config
//  4. otherwise load the auth response the client returned
//  5. exchange it when an exchanger is registered for its type
//  6. otherwise refresh it when it is expired
//  7. save it back to the credential service when it changed
//
// # Experimental
//
// This feature is experimental and may change or be removed in future versions without notice. It may
// introduce breaking changes at any time.
type CredentialManager struct {
	authConfig        *types.AuthConfig
	exchangerRegistry *exchanger.CredentialExchangerRegistry
	refresherRegistry *refresher.CredentialRefresherRegistry
}

// NewCredentialManager returns a [CredentialManager] for authConfig with the default
// exchangers and refreshers registered.
func NewCredentialManager(authConfig *types.AuthConfig) *CredentialManager {
	return &CredentialManager{
		authConfig:        authConfig,
		exchangerRegistry: exchanger.NewDefaultRegistry(),
		refresherRegistry: refresher.NewDefaultRegistry(),
	}
}

// AuthConfig returns the config managed by m.
func (m *CredentialManager) AuthConfig() *types.AuthConfig {
	return m.authConfig
}

// RegisterCredentialExchanger registers an exchanger for credentialType.
func (m *CredentialManager) RegisterCredentialExchanger(credentialType types.AuthCredentialTypes, ex types.CredentialExchanger) {
	m.exchangerRegistry.Register(credentialType, ex)
}

// RegisterCredentialRefresher registers a refresher for credentialType.
func (m *CredentialManager) RegisterCredentialRefresher(credentialType types.AuthCredentialTypes, rf types.CredentialRefresher) {
	m.refresherRegistry.Register(credentialType, rf)
}

// RequestCredential asks the client for the credential of the managed config.
func (m *CredentialManager) RequestCredential(toolCtx *types.ToolContext) error {
	return toolCtx.RequestCredential(m.authConfig)
}

// GetAuthCredential returns the credential ready for use, or nil when the
// client still has to provide one.
func (m *CredentialManager) GetAuthCredential(ctx context.Context, toolCtx *types.ToolContext) (*types.AuthCredential, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	if m.isCredentialReady() {
		return m.authConfig.RawAuthCredential, nil
	}

	credential, err := m.loadExistingCredential(ctx, toolCtx)
	if err != nil {
		return nil, err
	}
	fromAuthResponse := false
	if credential == nil {
		credential = toolCtx.GetAuthResponse(m.authConfig)
		fromAuthResponse = true
	}
	if credential == nil {
		return nil, nil
	}

	credential, exchanged := m.exchange(ctx, credential)
	refreshed := false
	if !exchanged {
		credential, refreshed = m.refresh(ctx, credential)
	}
	if fromAuthResponse || exchanged || refreshed {
		if err := m.save(ctx, toolCtx, credential); err != nil {
			return nil, err
		}
	}

	return credential, nil
}

func (m *CredentialManager) validate() error {
	if m.authConfig == nil {
		return fmt.Errorf("%w: auth config is nil", types.ErrInvalidAuthConfig)
	}
	if err := m.authConfig.Validate(); err != nil {
		return err
	}
	if raw := m.authConfig.RawAuthCredential; raw != nil {
		switch raw.AuthType {
		case types.OAuth2CredentialTypes, types.OpenIDConnectCredentialTypes:
			if raw.OAuth2 == nil {
				return fmt.Errorf("%w: auth_config.raw_credential.oauth2 required for credential type %s", types.ErrInvalidAuthConfig, raw.AuthType)
			}
		}
	}
	return nil
}

// isCredentialReady reports whether the raw credential can be used without processing.
func (m *CredentialManager) isCredentialReady() bool {
	raw := m.authConfig.RawAuthCredential
	if raw == nil {
		return false
	}
	return raw.AuthType == types.APIKeyCredentialTypes || raw.AuthType == types.HTTPCredentialTypes
}

func (m *CredentialManager) loadExistingCredential(ctx context.Context, toolCtx *types.ToolContext) (*types.AuthCredential, error) {
	if svc := toolCtx.InvocationContext().CredentialService; svc != nil {
		credential, err := svc.LoadCredential(ctx, m.authConfig, toolCtx)
		if err != nil {
			return nil, fmt.Errorf("load credential: %w", err)
		}
		if credential != nil {
			return credential, nil
		}
	}
	return m.authConfig.ExchangedAuthCredential, nil
}

// exchange degrades to the unexchanged credential when the exchange fails.
func (m *CredentialManager) exchange(ctx context.Context, credential *types.AuthCredential) (*types.AuthCredential, bool) {
	ex, ok := m.exchangerRegistry.GetExchanger(credential.AuthType)
	if !ok {
		return credential, false
	}
	exchanged, err := ex.Exchange(ctx, credential, m.authConfig.AuthScheme)
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "credential exchange failed",
			slog.String("auth_type", string(credential.AuthType)),
			slog.Any("error", err),
		)
		return credential, false
	}
	return exchanged, true
}

// refresh degrades to the current credential when the refresh fails.
func (m *CredentialManager) refresh(ctx context.Context, credential *types.AuthCredential) (*types.AuthCredential, bool) {
	rf, ok := m.refresherRegistry.GetRefresher(credential.AuthType)
	if !ok || !rf.IsRefreshNeeded(ctx, credential, m.authConfig.AuthScheme) {
		return credential, false
	}
	refreshed, err := rf.Refresh(ctx, credential, m.authConfig.AuthScheme)
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "credential refresh failed",
			slog.String("auth_type", string(credential.AuthType)),
			slog.Any("error", err),
		)
		return credential, false
	}
	return refreshed, true
}

func (m *CredentialManager) save(ctx context.Context, toolCtx *types.ToolContext, credential *types.AuthCredential) error {
	svc := toolCtx.InvocationContext().CredentialService
	if svc == nil {
		return nil
	}
	m.authConfig.ExchangedAuthCredential = credential
	if err := svc.SaveCredential(ctx, m.authConfig, toolCtx); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}
