// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package exchanger turns credentials collected from the user into credentials
// ready for use, such as OAuth2 access tokens.
package exchanger
