// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"log/slog"
)

// Config represents the configuration shared by every [Agent].
type Config struct {
	name        string
	description string

	parentAgent Agent
	subAgents   []Agent

	beforeAgentCallbacks []AgentCallback
	afterAgentCallbacks  []AgentCallback

	logger *slog.Logger
}

// Option configures a [Config].
type Option interface {
	apply(*Config)
}

type optionFunc func(*Config)

func (o optionFunc) apply(c *Config) { o(c) }

// WithDescription sets the description of the agent.
func WithDescription(description string) Option {
	return optionFunc(func(c *Config) {
		c.description = description
	})
}

// WithSubAgents adds sub-agents for the [Config].
func WithSubAgents(agents ...Agent) Option {
	return optionFunc(func(c *Config) {
		c.subAgents = append(c.subAgents, agents...)
	})
}

// WithBeforeAgentCallbacks adds callbacks invoked before the agent runs.
func WithBeforeAgentCallbacks(callbacks ...AgentCallback) Option {
	return optionFunc(func(c *Config) {
		c.beforeAgentCallbacks = append(c.beforeAgentCallbacks, callbacks...)
	})
}

// WithAfterAgentCallbacks adds callbacks invoked after the agent runs.
func WithAfterAgentCallbacks(callbacks ...AgentCallback) Option {
	return optionFunc(func(c *Config) {
		c.afterAgentCallbacks = append(c.afterAgentCallbacks, callbacks...)
	})
}

// WithLogger sets the logger for the [Config].
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(c *Config) {
		c.logger = logger
	})
}

// NewConfig creates a new agent configuration with the given name.
func NewConfig(name string, opts ...Option) *Config {
	c := &Config{
		name:   name,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	return c
}

// Logger returns the logger of the agent.
func (c *Config) Logger() *slog.Logger {
	return c.logger
}
