// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package adktest provides a scripted model and runner helpers for testing agents and flows.
package adktest
