// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package artifact implements versioned [types.ArtifactService] backends.
//
// Artifacts are addressed by app, user, session and filename:
//
//	{appName}/{userID}/{sessionID}/{filename}/{version}  // session scoped
//	{appName}/{userID}/user/{filename}/{version}         // filenames with the "user:" prefix
//
// Versions start at 0 and grow by one with every save.
// [InMemoryService] keeps artifacts in process memory and [GCSService] in a
// Google Cloud Storage bucket.
package artifact
