// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types"
)

// ForwardingArtifactService represents an artifact service that forwards to the parent tool context.
//
// The app, user and session arguments are ignored: every call addresses the
// session of the tool context, and saves are recorded in its artifact delta.
type ForwardingArtifactService struct {
	toolCtx *types.ToolContext
	ictx    *types.InvocationContext
}

var _ types.ArtifactService = (*ForwardingArtifactService)(nil)

// NewForwardingArtifactService returns a new [ForwardingArtifactService] given a tool context.
func NewForwardingArtifactService(toolCtx *types.ToolContext) *ForwardingArtifactService {
	return &ForwardingArtifactService{
		toolCtx: toolCtx,
		ictx:    toolCtx.InvocationContext(),
	}
}

// SaveArtifact implements [types.ArtifactService].
func (a *ForwardingArtifactService) SaveArtifact(ctx context.Context, _, _, _, filename string, artifact *genai.Part) (int, error) {
	return a.toolCtx.SaveArtifact(ctx, filename, artifact)
}

// LoadArtifact implements [types.ArtifactService].
func (a *ForwardingArtifactService) LoadArtifact(ctx context.Context, _, _, _, filename string, version int) (*genai.Part, error) {
	return a.toolCtx.LoadArtifact(ctx, filename, version)
}

// ListArtifactKey implements [types.ArtifactService].
func (a *ForwardingArtifactService) ListArtifactKey(ctx context.Context, _, _, _ string) ([]string, error) {
	return a.toolCtx.ListArtifacts(ctx)
}

// DeleteArtifact implements [types.ArtifactService].
func (a *ForwardingArtifactService) DeleteArtifact(ctx context.Context, _, _, _, filename string) error {
	if a.ictx.ArtifactService == nil {
		return types.ErrArtifactServiceNotInitialized
	}
	return a.ictx.ArtifactService.DeleteArtifact(ctx, a.ictx.AppName(), a.ictx.UserID(), a.ictx.Session.ID(), filename)
}

// ListVersions implements [types.ArtifactService].
func (a *ForwardingArtifactService) ListVersions(ctx context.Context, _, _, _, filename string) ([]int, error) {
	if a.ictx.ArtifactService == nil {
		return nil, types.ErrArtifactServiceNotInitialized
	}
	return a.ictx.ArtifactService.ListVersions(ctx, a.ictx.AppName(), a.ictx.UserID(), a.ictx.Session.ID(), filename)
}

// Close implements [types.ArtifactService].
func (a *ForwardingArtifactService) Close() error {
	return nil
}
