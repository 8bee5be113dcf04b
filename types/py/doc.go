// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package py provides small container types that mirror the set semantics used
// across the agent runtime.
//
// The primary type is [Set], a map-backed set of comparable values:
//
//	ids := py.NewSet("call-1", "call-2")
//	if ids.Has("call-1") {
//		// ...
//	}
//	sorted := py.List(ids)
//
// Sets are not safe for concurrent mutation.
//
// The Set implementation is adapted from Kubernetes' utility library
// (k8s.io/apimachinery/pkg/util/sets), Copyright 2022 The Kubernetes Authors,
// used under the Apache 2.0 license.
package py
