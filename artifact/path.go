// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package artifact

import (
	"fmt"
	"strings"
)

// userNamespacePrefix marks filenames shared by every session of a user.
const userNamespacePrefix = "user:"

func fileHasUserNamespace(filename string) bool {
	return strings.HasPrefix(filename, userNamespacePrefix)
}

// artifactPath returns the path of all versions of an artifact, without a trailing slash.
func artifactPath(appName, userID, sessionID, filename string) string {
	if fileHasUserNamespace(filename) {
		return fmt.Sprintf("%s/%s/user/%s", appName, userID, filename)
	}
	return fmt.Sprintf("%s/%s/%s/%s", appName, userID, sessionID, filename)
}

// sessionPrefix returns the path prefix of the session scoped artifacts.
func sessionPrefix(appName, userID, sessionID string) string {
	return fmt.Sprintf("%s/%s/%s/", appName, userID, sessionID)
}

// userPrefix returns the path prefix of the user scoped artifacts.
func userPrefix(appName, userID string) string {
	return fmt.Sprintf("%s/%s/user/", appName, userID)
}
