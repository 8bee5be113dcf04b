// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types"
)

// liveSession is the part of [*genai.Session] used by [geminiConnection].
type liveSession interface {
	SendClientContent(input genai.LiveClientContentInput) error
	SendRealtimeInput(input genai.LiveRealtimeInput) error
	SendToolResponse(input genai.LiveToolResponseInput) error
	Receive() (*genai.LiveServerMessage, error)
	Close() error
}

var _ liveSession = (*genai.Session)(nil)

// geminiConnection implements [types.ModelConnection] over a Gemini live session.
type geminiConnection struct {
	session liveSession
	logger  *slog.Logger
}

var _ types.ModelConnection = (*geminiConnection)(nil)

func newGeminiConnection(session liveSession, logger *slog.Logger) *geminiConnection {
	return &geminiConnection{
		session: session,
		logger:  logger,
	}
}

// SendHistory implements [types.ModelConnection].
//
// Only text contents are sent. The turn is completed when the history ends
// with a user content.
func (c *geminiConnection) SendHistory(ctx context.Context, history []*genai.Content) error {
	contents := make([]*genai.Content, 0, len(history))
	for _, content := range history {
		if len(content.Parts) > 0 && content.Parts[0].Text != "" {
			contents = append(contents, content)
		}
	}
	if len(contents) == 0 {
		c.logger.InfoContext(ctx, "no history to send")
		return nil
	}

	turnComplete := contents[len(contents)-1].Role == genai.RoleUser
	c.logger.DebugContext(ctx, "sending history", slog.Int("contents", len(contents)), slog.Bool("turn_complete", turnComplete))
	if err := c.session.SendClientContent(genai.LiveClientContentInput{
		Turns:        contents,
		TurnComplete: genai.Ptr(turnComplete),
	}); err != nil {
		return fmt.Errorf("send history: %w", err)
	}
	return nil
}

// SendContent implements [types.ModelConnection].
//
// Function responses are sent as tool responses, everything else as a complete user turn.
func (c *geminiConnection) SendContent(ctx context.Context, content *genai.Content) error {
	if content == nil || len(content.Parts) == 0 {
		return fmt.Errorf("send content: content has no parts")
	}

	if content.Parts[0].FunctionResponse != nil {
		responses := make([]*genai.FunctionResponse, 0, len(content.Parts))
		for _, part := range content.Parts {
			if part.FunctionResponse != nil {
				responses = append(responses, part.FunctionResponse)
			}
		}
		c.logger.DebugContext(ctx, "sending tool responses", slog.Int("responses", len(responses)))
		if err := c.session.SendToolResponse(genai.LiveToolResponseInput{FunctionResponses: responses}); err != nil {
			return fmt.Errorf("send tool response: %w", err)
		}
		return nil
	}

	if err := c.session.SendClientContent(genai.LiveClientContentInput{
		Turns:        []*genai.Content{content},
		TurnComplete: genai.Ptr(true),
	}); err != nil {
		return fmt.Errorf("send content: %w", err)
	}
	return nil
}

// SendRealtime implements [types.ModelConnection].
func (c *geminiConnection) SendRealtime(ctx context.Context, blob *genai.Blob) error {
	c.logger.DebugContext(ctx, "sending realtime input", slog.String("mime_type", blob.MIMEType), slog.Int("bytes", len(blob.Data)))
	if err := c.session.SendRealtimeInput(genai.LiveRealtimeInput{Media: blob}); err != nil {
		return fmt.Errorf("send realtime: %w", err)
	}
	return nil
}

// Receive implements [types.ModelConnection].
//
// The sequence ends after the turn complete response.
func (c *geminiConnection) Receive(ctx context.Context) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		var text strings.Builder
		flush := func() bool {
			if text.Len() == 0 {
				return true
			}
			resp := newTextResponse(text.String(), false)
			text.Reset()
			return yield(resp, nil)
		}

		for {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}
			msg, err := c.session.Receive()
			if err != nil {
				yield(nil, fmt.Errorf("receive: %w", err))
				return
			}
			c.logger.DebugContext(ctx, "received live message", slog.Bool("server_content", msg.ServerContent != nil), slog.Bool("tool_call", msg.ToolCall != nil))

			if sc := msg.ServerContent; sc != nil {
				if content := sc.ModelTurn; content != nil && len(content.Parts) > 0 {
					resp := &types.LLMResponse{
						Content:           content,
						Interrupted:       sc.Interrupted,
						GroundingMetadata: sc.GroundingMetadata,
					}
					switch {
					case content.Parts[0].Text != "":
						text.WriteString(content.Parts[0].Text)
						resp.Partial = true
					case content.Parts[0].InlineData == nil:
						if !flush() {
							return
						}
					}
					if !yield(resp, nil) {
						return
					}
				}

				if sc.TurnComplete {
					if flush() {
						yield(&types.LLMResponse{TurnComplete: true, Interrupted: sc.Interrupted}, nil)
					}
					return
				}

				// Text of an interrupted turn is flushed before the interruption.
				if sc.Interrupted && text.Len() > 0 {
					if !flush() || !yield(&types.LLMResponse{Interrupted: true}, nil) {
						return
					}
				}
			}

			if tc := msg.ToolCall; tc != nil {
				if !flush() {
					return
				}
				parts := make([]*genai.Part, 0, len(tc.FunctionCalls))
				for _, call := range tc.FunctionCalls {
					parts = append(parts, &genai.Part{FunctionCall: call})
				}
				if !yield(&types.LLMResponse{Content: genai.NewContentFromParts(parts, genai.RoleModel)}, nil) {
					return
				}
			}
		}
	}
}

// Close implements [types.ModelConnection].
func (c *geminiConnection) Close() error {
	return c.session.Close()
}
