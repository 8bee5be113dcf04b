// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package memory provides [types.MemoryService] implementations.
//
// [InMemoryService] keeps the events of ingested sessions per app and user and
// answers searches by keyword matching:
//
//	svc := memory.NewInMemoryService()
//	if err := svc.AddSessionToMemory(ctx, ses); err != nil {
//		return err
//	}
//	resp, err := svc.SearchMemory(ctx, "app", "user", "weather in Paris")
//
// An event matches when it shares at least one word with the query. Words are
// runs of letters compared case-insensitively.
package memory
