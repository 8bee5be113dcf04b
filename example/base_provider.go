// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package example

import (
	"context"
)

// Provider represents a base interface for example providers.
//
// This type defines the interface for providing examples for a given query.
type Provider interface {
	GetExamples(ctx context.Context, query string) ([]*Example, error)
}

// List is a fixed [Provider] returning the same examples for every query.
type List []*Example

var _ Provider = List(nil)

// GetExamples implements [Provider].
func (l List) GetExamples(context.Context, string) ([]*Example, error) {
	return l, nil
}
