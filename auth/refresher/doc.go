// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package refresher refreshes expired credentials.
package refresher
