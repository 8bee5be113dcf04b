// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"context"
	"slices"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types"
)

// InMemoryService is an in-memory [types.ArtifactService].
type InMemoryService struct {
	mu        sync.RWMutex
	artifacts map[string][]*genai.Part
}

var _ types.ArtifactService = (*InMemoryService)(nil)

// NewInMemoryService creates a new instance of [InMemoryService].
func NewInMemoryService() *InMemoryService {
	return &InMemoryService{
		artifacts: make(map[string][]*genai.Part),
	}
}

// SaveArtifact implements [types.ArtifactService].
func (a *InMemoryService) SaveArtifact(_ context.Context, appName, userID, sessionID, filename string, artifact *genai.Part) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	path := artifactPath(appName, userID, sessionID, filename)
	version := len(a.artifacts[path])
	a.artifacts[path] = append(a.artifacts[path], artifact)

	return version, nil
}

// LoadArtifact implements [types.ArtifactService].
func (a *InMemoryService) LoadArtifact(_ context.Context, appName, userID, sessionID, filename string, version int) (*genai.Part, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	versions := a.artifacts[artifactPath(appName, userID, sessionID, filename)]
	if len(versions) == 0 {
		return nil, nil
	}
	if version < 0 {
		version = len(versions) - 1
	}
	if version >= len(versions) {
		return nil, nil
	}

	return versions[version], nil
}

// ListArtifactKey implements [types.ArtifactService].
func (a *InMemoryService) ListArtifactKey(_ context.Context, appName, userID, sessionID string) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	sessionPrefix := sessionPrefix(appName, userID, sessionID)
	userPrefix := userPrefix(appName, userID)

	filenames := []string{}
	for path := range a.artifacts {
		switch {
		case strings.HasPrefix(path, sessionPrefix):
			filenames = append(filenames, strings.TrimPrefix(path, sessionPrefix))
		case strings.HasPrefix(path, userPrefix):
			filenames = append(filenames, strings.TrimPrefix(path, userPrefix))
		}
	}
	slices.Sort(filenames)

	return filenames, nil
}

// DeleteArtifact implements [types.ArtifactService].
func (a *InMemoryService) DeleteArtifact(_ context.Context, appName, userID, sessionID, filename string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.artifacts, artifactPath(appName, userID, sessionID, filename))
	return nil
}

// ListVersions implements [types.ArtifactService].
func (a *InMemoryService) ListVersions(_ context.Context, appName, userID, sessionID, filename string) ([]int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	versions := a.artifacts[artifactPath(appName, userID, sessionID, filename)]
	if len(versions) == 0 {
		return nil, nil
	}

	verList := make([]int, len(versions))
	for i := range versions {
		verList[i] = i
	}
	return verList, nil
}

// Close implements [types.ArtifactService].
func (a *InMemoryService) Close() error {
	return nil
}
