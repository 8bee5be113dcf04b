// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package auth prepares credentials for authenticated tools.
//
// The credential types and the end user flow live in package types. This
// package ties them to the exchangers of package exchanger, the refreshers of
// package refresher and a [types.CredentialService].
package auth
