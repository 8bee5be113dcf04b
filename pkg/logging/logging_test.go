// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/zshehov/adk-python-sub001/pkg/logging"
)

func TestFromContextDefault(t *testing.T) {
	if got := logging.FromContext(t.Context()); got != slog.Default() {
		t.Errorf("FromContext() = %v, want slog.Default()", got)
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := logging.NewContext(t.Context(), logger)
	ctx = logging.With(ctx, slog.String("agent", "root"))
	logging.FromContext(ctx).InfoContext(ctx, "hello")

	out := buf.String()
	if !strings.Contains(out, "agent=root") || !strings.Contains(out, "msg=hello") {
		t.Errorf("log output = %q", out)
	}
}
