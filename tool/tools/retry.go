// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/zshehov/adk-python-sub001/pkg/logging"
	"github.com/zshehov/adk-python-sub001/types"
)

// DefaultMaxTries is the number of attempts a [RetryTool] makes unless configured otherwise.
const DefaultMaxTries = 3

// RetryTool retries the Run of the wrapped tool while it fails with a retryable error.
//
// All other methods are those of the wrapped tool.
type RetryTool struct {
	types.Tool

	maxTries    uint
	maxElapsed  time.Duration
	newBackOff  func() backoff.BackOff
	isRetryable func(error) bool
}

var _ types.Tool = (*RetryTool)(nil)

// RetryToolOption configures a [RetryTool].
type RetryToolOption func(*RetryTool)

// WithMaxTries sets the maximum number of attempts, including the first one.
func WithMaxTries(n uint) RetryToolOption {
	return func(t *RetryTool) {
		t.maxTries = n
	}
}

// WithMaxElapsedTime bounds the total time spent retrying.
func WithMaxElapsedTime(d time.Duration) RetryToolOption {
	return func(t *RetryTool) {
		t.maxElapsed = d
	}
}

// WithBackOff sets the constructor of the back-off policy used for each Run.
func WithBackOff(newBackOff func() backoff.BackOff) RetryToolOption {
	return func(t *RetryTool) {
		t.newBackOff = newBackOff
	}
}

// WithRetryable sets the predicate selecting the errors worth another attempt.
//
// By default every error except context cancellation is retried.
func WithRetryable(isRetryable func(error) bool) RetryToolOption {
	return func(t *RetryTool) {
		t.isRetryable = isRetryable
	}
}

// NewRetryTool wraps tool with retries.
func NewRetryTool(tool types.Tool, opts ...RetryToolOption) *RetryTool {
	t := &RetryTool{
		Tool:       tool,
		maxTries:   DefaultMaxTries,
		maxElapsed: backoff.DefaultMaxElapsedTime,
		newBackOff: func() backoff.BackOff {
			return backoff.NewExponentialBackOff()
		},
		isRetryable: func(err error) bool {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run implements [types.Tool].
func (t *RetryTool) Run(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error) {
	logger := logging.FromContext(ctx)

	operation := func() (any, error) {
		result, err := t.Tool.Run(ctx, args, toolCtx)
		if err != nil && !t.isRetryable(err) {
			return nil, backoff.Permanent(err)
		}
		return result, err
	}
	notify := func(err error, next time.Duration) {
		logger.WarnContext(ctx, "retrying tool",
			slog.String("tool", t.Name()),
			slog.Duration("backoff", next),
			slog.Any("error", err),
		)
	}

	result, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(t.newBackOff()),
		backoff.WithMaxTries(t.maxTries),
		backoff.WithMaxElapsedTime(t.maxElapsed),
		backoff.WithNotify(notify),
	)
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		err = perm.Err
	}
	return result, err
}

// ProcessLLMRequest implements [types.Tool].
//
// The wrapped tool declares itself, then the wrapper takes its place in the tool map.
func (t *RetryTool) ProcessLLMRequest(ctx context.Context, toolCtx *types.ToolContext, request *types.LLMRequest) error {
	if err := t.Tool.ProcessLLMRequest(ctx, toolCtx, request); err != nil {
		return err
	}
	if _, ok := request.ToolMap[t.Name()]; ok {
		request.ToolMap[t.Name()] = t
	}
	return nil
}
