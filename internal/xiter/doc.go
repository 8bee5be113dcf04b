// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package xiter contains helpers for the [iter.Seq2] event streams used across the module.
package xiter
