// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/zshehov/adk-python-sub001/types"
)

func init() {
	MustRegisterLLM(func(ctx context.Context, modelName string, opts ...Option) (types.Model, error) {
		return NewClaude(ctx, modelName, opts...)
	},
		`claude-3-.*`,
		`claude-.*-4.*`,
		`claude-(sonnet|opus|haiku)-.*`,
	)

	MustRegisterLLM(func(ctx context.Context, modelName string, opts ...Option) (types.Model, error) {
		return NewGemini(ctx, modelName, opts...)
	},
		`gemini-.*`,
		`projects\/.+\/locations\/.+\/endpoints\/.+`,
		`projects\/.+\/locations\/.+\/publishers\/google\/models\/gemini.+`,
	)
}

// CreatorFunc creates the [types.Model] serving modelName.
type CreatorFunc func(ctx context.Context, modelName string, opts ...Option) (types.Model, error)

type registryEntry struct {
	pattern *regexp.Regexp
	creator CreatorFunc
}

// Registry resolves model names to model implementations.
//
// A pattern matches the whole model name. Patterns are tried in registration order.
type Registry struct {
	mu      sync.RWMutex
	entries []registryEntry
	cache   map[string]CreatorFunc
}

// NewRegistry returns an empty [Registry].
func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[string]CreatorFunc),
	}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process wide registry holding the built-in models.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register registers creator for the model names matching the patterns.
//
// Registering an already known pattern replaces its creator.
func (r *Registry) Register(creator CreatorFunc, patterns ...string) error {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, pattern := range patterns {
		re, err := regexp.Compile(`^(?:` + pattern + `)$`)
		if err != nil {
			return fmt.Errorf("compile model pattern %q: %w", pattern, err)
		}
		compiled[i] = re
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.cache)
outer:
	for _, re := range compiled {
		for i, entry := range r.entries {
			if entry.pattern.String() == re.String() {
				r.entries[i].creator = creator
				continue outer
			}
		}
		r.entries = append(r.entries, registryEntry{pattern: re, creator: creator})
	}
	return nil
}

// Resolve returns the creator registered for modelName.
//
// It returns [types.ErrModelNotFound] when no pattern matches.
func (r *Registry) Resolve(modelName string) (CreatorFunc, error) {
	r.mu.RLock()
	creator, ok := r.cache[modelName]
	r.mu.RUnlock()
	if ok {
		return creator, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if entry.pattern.MatchString(modelName) {
			r.cache[modelName] = entry.creator
			return entry.creator, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", types.ErrModelNotFound, modelName)
}

// New creates the model serving modelName.
func (r *Registry) New(ctx context.Context, modelName string, opts ...Option) (types.Model, error) {
	creator, err := r.Resolve(modelName)
	if err != nil {
		return nil, err
	}
	return creator(ctx, modelName, opts...)
}

// RegisterLLM registers creator in the [DefaultRegistry].
func RegisterLLM(creator CreatorFunc, patterns ...string) error {
	return defaultRegistry.Register(creator, patterns...)
}

// MustRegisterLLM is like [RegisterLLM] but panics on an invalid pattern.
func MustRegisterLLM(creator CreatorFunc, patterns ...string) {
	if err := RegisterLLM(creator, patterns...); err != nil {
		panic(err)
	}
}

// NewLLM creates the model serving modelName from the [DefaultRegistry].
func NewLLM(ctx context.Context, modelName string, opts ...Option) (types.Model, error) {
	return defaultRegistry.New(ctx, modelName, opts...)
}
