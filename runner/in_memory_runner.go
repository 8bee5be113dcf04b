// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"github.com/zshehov/adk-python-sub001/artifact"
	"github.com/zshehov/adk-python-sub001/memory"
	"github.com/zshehov/adk-python-sub001/session"
	"github.com/zshehov/adk-python-sub001/types"
)

// DefaultInMemoryAppName is the application name used by [NewInMemoryRunner] when appName is empty.
const DefaultInMemoryAppName = "InMemoryRunner"

// InMemoryRunner is a [Runner] backed by in-memory session, artifact and memory services.
//
// It is meant for tests and local development.
type InMemoryRunner struct {
	*Runner

	Sessions  *session.InMemoryService
	Artifacts *artifact.InMemoryService
	Memory    *memory.InMemoryService
}

// NewInMemoryRunner returns an [InMemoryRunner] for agent.
//
// opts are applied after the in-memory services, so they may replace them.
func NewInMemoryRunner(appName string, agent types.Agent, opts ...Option) *InMemoryRunner {
	if appName == "" {
		appName = DefaultInMemoryAppName
	}

	r := &InMemoryRunner{
		Sessions:  session.NewInMemoryService(),
		Artifacts: artifact.NewInMemoryService(),
		Memory:    memory.NewInMemoryService(),
	}
	opts = append([]Option{
		WithArtifactService(r.Artifacts),
		WithMemoryService(r.Memory),
	}, opts...)
	r.Runner = New(appName, agent, r.Sessions, opts...)
	return r
}
