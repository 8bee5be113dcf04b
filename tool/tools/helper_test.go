// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools_test

import (
	"testing"
	"time"

	"github.com/zshehov/adk-python-sub001/session"
	"github.com/zshehov/adk-python-sub001/types"
)

func newToolContext(t *testing.T, opts ...types.InvocationContextOption) *types.ToolContext {
	t.Helper()

	ses := session.NewSession("app", "user", "session", map[string]any{}, time.Now())
	ictx := types.NewInvocationContext(nil, ses, nil, opts...)
	return types.NewToolContext(ictx).WithFunctionCallID("call-1")
}
