// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package types provides the core interfaces and data types shared by every
// package of the module.
//
// # Events and sessions
//
// An [Event] is one append-only entry of a [Session]: a user message, a model
// response, a function call or response, or a structural event carrying only
// [EventActions]. Session [State] is scoped by key prefix: no prefix for the
// session, [AppPrefix] for the app, [UserPrefix] for the user and [TempPrefix]
// for values that are never persisted.
//
// # Agents
//
// Every [Agent] embeds [*BaseAgent], which owns the agent tree and runs the
// before and after agent callbacks around Execute:
//
//	root := ...                     // agent with sub-agents
//	for event, err := range root.Run(ctx, ictx) {
//		if err != nil {
//			return err
//		}
//		...
//	}
//
// An agent can be attached to one parent only. [Agent.FindAgent] searches the
// whole tree, [Agent.FindSubAgent] only the descendants.
//
// # Contexts
//
// [InvocationContext] carries the services and the session of one invocation.
// Callbacks receive a [CallbackContext] and tools a [ToolContext]. Both record
// state and artifact changes in the [EventActions] of the event they produce.
//
// # Credentials
//
// Tools ask the client for credentials with [ToolContext.RequestCredential].
// Credentials returned by the client are stored in the session state under
// [AuthConfig.Key] and read back with [ToolContext.GetAuthResponse].
package types
