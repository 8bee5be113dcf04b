// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging carries a [*log/slog.Logger] in a [context.Context].
//
// The runner stores its logger in the run context, so tools and callbacks can
// log with the invocation attributes attached:
//
//	ctx = logging.With(ctx, slog.String("invocation_id", ictx.InvocationID))
//	logging.FromContext(ctx).InfoContext(ctx, "tool finished")
//
// Without a logger in the context, [FromContext] returns [slog.Default].
package logging
