// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"log/slog"
	"maps"

	"github.com/zshehov/adk-python-sub001/auth"
	"github.com/zshehov/adk-python-sub001/tool"
	"github.com/zshehov/adk-python-sub001/types"
)

// AuthenticatedFunction is a [Function] that also receives the credential ready for use.
//
// credential is nil when the tool was created without an auth scheme.
type AuthenticatedFunction func(ctx context.Context, args map[string]any, toolCtx *types.ToolContext, credential *types.AuthCredential) (any, error)

// DefaultResponseForAuthRequired is returned to the model while the user has not authorized the tool yet.
const DefaultResponseForAuthRequired = "Pending User Authorization."

// AuthenticatedFunctionTool is a function tool that obtains a credential before the function runs.
//
// When no usable credential exists the tool requests one from the client and
// answers with the auth-required response. The flow calls the tool again once
// the client sends the credential back.
//
// # Experimental
//
// This feature is experimental and may change or be removed in future versions without notice.
type AuthenticatedFunctionTool struct {
	*FunctionTool

	Logger *slog.Logger

	fn                      AuthenticatedFunction
	credentialManager       *auth.CredentialManager
	responseForAuthRequired any
}

var _ types.AuthenticatedTool = (*AuthenticatedFunctionTool)(nil)

// AuthenticatedToolOption configures an [AuthenticatedFunctionTool].
type AuthenticatedToolOption func(*AuthenticatedFunctionTool)

// WithResponseForAuthRequired sets the response returned while authorization is pending.
func WithResponseForAuthRequired(response any) AuthenticatedToolOption {
	return func(t *AuthenticatedFunctionTool) {
		t.responseForAuthRequired = response
	}
}

// WithFunctionToolOptions applies [FunctionToolOption]s to the wrapped function tool.
func WithFunctionToolOptions(opts ...FunctionToolOption) AuthenticatedToolOption {
	return func(t *AuthenticatedFunctionTool) {
		for _, opt := range opts {
			opt(t.FunctionTool)
		}
	}
}

// WithCredentialManager replaces the credential manager built from the auth config.
func WithCredentialManager(manager *auth.CredentialManager) AuthenticatedToolOption {
	return func(t *AuthenticatedFunctionTool) {
		t.credentialManager = manager
	}
}

// NewAuthenticatedFunctionTool returns the new [AuthenticatedFunctionTool] authenticating with authConfig.
func NewAuthenticatedFunctionTool(name, description string, authConfig *types.AuthConfig, fn AuthenticatedFunction, opts ...AuthenticatedToolOption) *AuthenticatedFunctionTool {
	t := &AuthenticatedFunctionTool{
		FunctionTool:            NewFunctionTool(name, description, nil),
		Logger:                  slog.Default(),
		fn:                      fn,
		responseForAuthRequired: DefaultResponseForAuthRequired,
	}
	if authConfig != nil && authConfig.AuthScheme != nil {
		t.credentialManager = auth.NewCredentialManager(authConfig)
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.credentialManager == nil {
		t.Logger.Warn("auth config or auth scheme is missing, the tool runs without authentication", slog.String("tool", name))
	}

	return t
}

// Run implements [types.Tool].
func (t *AuthenticatedFunctionTool) Run(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error) {
	var credential *types.AuthCredential
	if t.credentialManager != nil {
		cred, err := t.credentialManager.GetAuthCredential(ctx, toolCtx)
		if err != nil {
			return nil, err
		}
		if cred == nil {
			if err := t.credentialManager.RequestCredential(toolCtx); err != nil {
				return nil, err
			}
			return t.responseForAuthRequired, nil
		}
		credential = cred
	}

	return t.Execute(ctx, args, toolCtx, credential)
}

// Execute implements [types.AuthenticatedTool].
func (t *AuthenticatedFunctionTool) Execute(ctx context.Context, args map[string]any, toolCtx *types.ToolContext, credential *types.AuthCredential) (any, error) {
	if missing := t.missingMandatoryArgs(args); len(missing) > 0 {
		return t.FunctionTool.Run(ctx, args, toolCtx)
	}
	return t.fn(ctx, maps.Clone(args), toolCtx, credential)
}

// ProcessLLMRequest implements [types.Tool].
func (t *AuthenticatedFunctionTool) ProcessLLMRequest(_ context.Context, _ *types.ToolContext, request *types.LLMRequest) error {
	tool.AppendToRequest(t, request)
	return nil
}
