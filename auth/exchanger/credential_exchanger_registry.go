// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package exchanger

import (
	"sync"

	"github.com/zshehov/adk-python-sub001/types"
)

// CredentialExchangerRegistry maps credential types to their [types.CredentialExchanger].
//
// # Experimental
//
// This feature is experimental and may change or be removed in future versions without notice. It may
// introduce breaking changes at any time.
type CredentialExchangerRegistry struct {
	mu         sync.RWMutex
	exchangers map[types.AuthCredentialTypes]types.CredentialExchanger
}

// NewCredentialExchangerRegistry returns an empty [CredentialExchangerRegistry].
func NewCredentialExchangerRegistry() *CredentialExchangerRegistry {
	return &CredentialExchangerRegistry{
		exchangers: make(map[types.AuthCredentialTypes]types.CredentialExchanger),
	}
}

// NewDefaultRegistry returns a registry with the OAuth2 and service account exchangers registered.
func NewDefaultRegistry() *CredentialExchangerRegistry {
	r := NewCredentialExchangerRegistry()
	oauth2Exchanger := &OAuth2CredentialExchanger{}
	r.Register(types.OAuth2CredentialTypes, oauth2Exchanger)
	r.Register(types.OpenIDConnectCredentialTypes, oauth2Exchanger)
	r.Register(types.ServiceAccountCredentialTypes, &ServiceAccountCredentialExchanger{})
	return r
}

// Register registers exchanger for credentialType, replacing any previous one.
func (r *CredentialExchangerRegistry) Register(credentialType types.AuthCredentialTypes, exchanger types.CredentialExchanger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exchangers[credentialType] = exchanger
}

// GetExchanger returns the exchanger registered for credentialType.
func (r *CredentialExchangerRegistry) GetExchanger(credentialType types.AuthCredentialTypes) (types.CredentialExchanger, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exchanger, ok := r.exchangers[credentialType]
	return exchanger, ok
}
