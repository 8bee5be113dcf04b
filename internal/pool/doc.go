// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package pool provides generic type pooling, and provides [*bytes.Buffer] and [*strings.Builder] pooling objects.
//
// Values handed back with [Pool.Put] are reset before they are reused:
//
//	sb := pool.String.Get()
//	defer pool.String.Put(sb)
//	sb.WriteString("...")
package pool
