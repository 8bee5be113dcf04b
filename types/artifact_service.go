// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"

	"google.golang.org/genai"
)

// LatestArtifactVersion selects the newest version in [ArtifactService.LoadArtifact].
const LatestArtifactVersion = -1

// ArtifactService stores versioned artifacts.
//
// Filenames with the "user:" prefix are scoped to the user instead of the session.
type ArtifactService interface {
	// SaveArtifact saves an artifact and returns its new version, starting at 0.
	SaveArtifact(ctx context.Context, appName, userID, sessionID, filename string, artifact *genai.Part) (int, error)

	// LoadArtifact loads an artifact version, or the latest one for [LatestArtifactVersion].
	//
	// It returns nil without error when the artifact does not exist.
	LoadArtifact(ctx context.Context, appName, userID, sessionID, filename string, version int) (*genai.Part, error)

	// ListArtifactKey lists the sorted filenames visible to the session.
	ListArtifactKey(ctx context.Context, appName, userID, sessionID string) ([]string, error)

	// DeleteArtifact deletes all versions of an artifact.
	DeleteArtifact(ctx context.Context, appName, userID, sessionID, filename string) error

	// ListVersions lists the versions of an artifact.
	ListVersions(ctx context.Context, appName, userID, sessionID, filename string) ([]int, error)

	// Close releases the resources of the service.
	Close() error
}
