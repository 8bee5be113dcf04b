// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package refresher

import (
	"sync"

	"github.com/zshehov/adk-python-sub001/types"
)

// CredentialRefresherRegistry maps credential types to their [types.CredentialRefresher].
//
// # Experimental
//
// This feature is experimental and may change or be removed in future versions without notice. It may
// introduce breaking changes at any time.
type CredentialRefresherRegistry struct {
	mu         sync.RWMutex
	refreshers map[types.AuthCredentialTypes]types.CredentialRefresher
}

// NewCredentialRefresherRegistry returns an empty [CredentialRefresherRegistry].
func NewCredentialRefresherRegistry() *CredentialRefresherRegistry {
	return &CredentialRefresherRegistry{
		refreshers: make(map[types.AuthCredentialTypes]types.CredentialRefresher),
	}
}

// NewDefaultRegistry returns a registry refreshing OAuth2 and OpenID Connect credentials.
func NewDefaultRegistry() *CredentialRefresherRegistry {
	r := NewCredentialRefresherRegistry()
	oauth2Refresher := &OAuth2CredentialRefresher{}
	r.Register(types.OAuth2CredentialTypes, oauth2Refresher)
	r.Register(types.OpenIDConnectCredentialTypes, oauth2Refresher)
	return r
}

// Register registers refresher for credentialType, replacing any previous one.
func (r *CredentialRefresherRegistry) Register(credentialType types.AuthCredentialTypes, refresher types.CredentialRefresher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshers[credentialType] = refresher
}

// GetRefresher returns the refresher registered for credentialType.
func (r *CredentialRefresherRegistry) GetRefresher(credentialType types.AuthCredentialTypes) (types.CredentialRefresher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	refresher, ok := r.refreshers[credentialType]
	return refresher, ok
}
