// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/zshehov/adk-python-sub001/auth/credentialservice"
	"github.com/zshehov/adk-python-sub001/session"
	"github.com/zshehov/adk-python-sub001/tool/tools"
	"github.com/zshehov/adk-python-sub001/types"
)

func oauth2Config() *types.AuthConfig {
	return &types.AuthConfig{
		AuthScheme: &types.OAuth2SecurityScheme{
			Type: types.OAuth2CredentialTypes,
			Flows: &types.OAuthFlows{
				AuthorizationCode: &types.OAuthFlow{
					AuthorizationURL: "https://example.com/oauth2/authorize",
					TokenURL:         "https://example.com/oauth2/token",
					Scopes:           map[string]string{"read": "Read access"},
				},
			},
		},
		RawAuthCredential: &types.AuthCredential{
			AuthType: types.OAuth2CredentialTypes,
			OAuth2: &types.OAuth2Auth{
				ClientID:     "client_id",
				ClientSecret: "client_secret",
				RedirectURI:  "https://example.com/callback",
			},
		},
	}
}

// echoCredential returns the credential it was given.
func echoCredential(_ context.Context, _ map[string]any, _ *types.ToolContext, credential *types.AuthCredential) (any, error) {
	return credential, nil
}

func TestAuthenticatedFunctionToolAPIKey(t *testing.T) {
	config := &types.AuthConfig{
		AuthScheme: &types.APIKeySecurityScheme{Type: types.APIKeyCredentialTypes, In: "header", Name: "X-Key"},
		RawAuthCredential: &types.AuthCredential{
			AuthType: types.APIKeyCredentialTypes,
			APIKey:   "secret",
		},
	}
	at := tools.NewAuthenticatedFunctionTool("call_api", "Calls the API.", config, echoCredential)

	got, err := at.Run(t.Context(), map[string]any{}, newToolContext(t))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(config.RawAuthCredential, got); diff != "" {
		t.Errorf("credential mismatch (-want +got):\n%s", diff)
	}
}

func TestAuthenticatedFunctionToolRequestsCredential(t *testing.T) {
	at := tools.NewAuthenticatedFunctionTool("list_files", "Lists files.", oauth2Config(), echoCredential)

	toolCtx := newToolContext(t)
	got, err := at.Run(t.Context(), map[string]any{}, toolCtx)
	if err != nil {
		t.Fatal(err)
	}
	if got != tools.DefaultResponseForAuthRequired {
		t.Errorf("Run() = %v, want %q", got, tools.DefaultResponseForAuthRequired)
	}

	requested, ok := toolCtx.Actions().RequestedAuthConfigs["call-1"]
	if !ok {
		t.Fatalf("RequestedAuthConfigs = %v, want an entry for call-1", toolCtx.Actions().RequestedAuthConfigs)
	}
	if requested.ExchangedAuthCredential == nil || requested.ExchangedAuthCredential.OAuth2.AuthURI == "" {
		t.Error("requested config carries no authorization uri")
	}
}

func TestAuthenticatedFunctionToolUsesAuthResponse(t *testing.T) {
	config := oauth2Config()
	response := &types.AuthCredential{
		AuthType: types.OAuth2CredentialTypes,
		OAuth2:   &types.OAuth2Auth{AccessToken: "token"},
	}
	key, err := config.Key()
	if err != nil {
		t.Fatal(err)
	}
	ses := session.NewSession("app", "user", "session", map[string]any{key: response}, time.Now())
	credentials := credentialservice.NewInMemory()
	ictx := types.NewInvocationContext(nil, ses, nil, types.WithCredentialService(credentials))
	toolCtx := types.NewToolContext(ictx).WithFunctionCallID("call-1")

	at := tools.NewAuthenticatedFunctionTool("list_files", "Lists files.", config, echoCredential)
	got, err := at.Run(t.Context(), map[string]any{}, toolCtx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(response, got); diff != "" {
		t.Errorf("credential mismatch (-want +got):\n%s", diff)
	}
	if len(toolCtx.Actions().RequestedAuthConfigs) != 0 {
		t.Errorf("RequestedAuthConfigs = %v, want none", toolCtx.Actions().RequestedAuthConfigs)
	}

	stored, err := credentials.LoadCredential(t.Context(), config, toolCtx)
	if err != nil {
		t.Fatal(err)
	}
	if stored == nil || stored.OAuth2.AccessToken != "token" {
		t.Errorf("stored credential = %+v, want the access token saved", stored)
	}
}

func TestAuthenticatedFunctionToolWithoutAuth(t *testing.T) {
	at := tools.NewAuthenticatedFunctionTool("ping", "Pings.", nil, echoCredential,
		tools.WithResponseForAuthRequired("unused"))

	got, err := at.Run(t.Context(), map[string]any{}, newToolContext(t))
	if err != nil {
		t.Fatal(err)
	}
	if got.(*types.AuthCredential) != nil {
		t.Errorf("Run() = %v, want a nil credential", got)
	}
}
