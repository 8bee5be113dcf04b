// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package adktest

import (
	"context"
	"errors"
	"iter"
	"sync"

	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types"
)

// ErrNoMoreResponses is returned by [Model] once every scripted response was consumed.
var ErrNoMoreResponses = errors.New("adktest: no more scripted responses")

// Model is a [types.Model] replaying scripted responses, one per call.
//
// Every request is recorded so tests can assert what the model was sent.
type Model struct {
	mu        sync.Mutex
	name      string
	responses []*types.LLMResponse
	requests  []*types.LLMRequest
	conn      *Connection

	// Err, when set, is returned by every call instead of a response.
	Err error
}

var _ types.Model = (*Model)(nil)

// NewModel returns a [Model] answering successive calls with responses.
func NewModel(responses ...*types.LLMResponse) *Model {
	return &Model{
		name:      "mock",
		responses: responses,
	}
}

// Name implements [types.Model].
func (m *Model) Name() string {
	return m.name
}

// Requests returns the requests received so far.
func (m *Model) Requests() []*types.LLMRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*types.LLMRequest(nil), m.requests...)
}

func (m *Model) next(request *types.LLMRequest) (*types.LLMResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, request)
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.responses) == 0 {
		return nil, ErrNoMoreResponses
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, nil
}

// GenerateContent implements [types.Model].
func (m *Model) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.next(request)
}

// StreamGenerateContent implements [types.Model].
//
// The scripted response is yielded as a single chunk.
func (m *Model) StreamGenerateContent(ctx context.Context, request *types.LLMRequest) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		yield(m.GenerateContent(ctx, request))
	}
}

// Connect implements [types.Model].
//
// The connection replays the remaining scripted responses.
func (m *Model) Connect(ctx context.Context, request *types.LLMRequest) (types.ModelConnection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, request)
	if m.Err != nil {
		return nil, m.Err
	}
	m.conn = newConnection(m.responses)
	m.responses = nil
	return m.conn, nil
}

// Connection returns the last live connection opened on the model.
func (m *Model) Connection() *Connection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conn
}

// Connection is a [types.ModelConnection] replaying scripted responses.
type Connection struct {
	mu        sync.Mutex
	responses []*types.LLMResponse
	history   []*genai.Content
	contents  []*genai.Content
	blobs     []*genai.Blob
	closed    chan struct{}
	closeOnce sync.Once
}

var _ types.ModelConnection = (*Connection)(nil)

func newConnection(responses []*types.LLMResponse) *Connection {
	return &Connection{
		responses: responses,
		closed:    make(chan struct{}),
	}
}

// SendHistory implements [types.ModelConnection].
func (c *Connection) SendHistory(_ context.Context, history []*genai.Content) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, history...)
	return nil
}

// SendContent implements [types.ModelConnection].
func (c *Connection) SendContent(_ context.Context, content *genai.Content) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contents = append(c.contents, content)
	return nil
}

// SendRealtime implements [types.ModelConnection].
func (c *Connection) SendRealtime(_ context.Context, blob *genai.Blob) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blobs = append(c.blobs, blob)
	return nil
}

// Receive implements [types.ModelConnection].
//
// The scripted responses are yielded, then Receive blocks until the
// connection is closed or ctx is done.
func (c *Connection) Receive(ctx context.Context) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		for {
			c.mu.Lock()
			if len(c.responses) == 0 {
				c.mu.Unlock()
				break
			}
			resp := c.responses[0]
			c.responses = c.responses[1:]
			c.mu.Unlock()

			if !yield(resp, nil) {
				return
			}
		}

		select {
		case <-c.closed:
		case <-ctx.Done():
		}
	}
}

// Close implements [types.ModelConnection].
func (c *Connection) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

// History returns the history sent on the connection.
func (c *Connection) History() []*genai.Content {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*genai.Content(nil), c.history...)
}

// Contents returns the contents sent on the connection after the history.
func (c *Connection) Contents() []*genai.Content {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*genai.Content(nil), c.contents...)
}

// Blobs returns the realtime blobs sent on the connection.
func (c *Connection) Blobs() []*genai.Blob {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*genai.Blob(nil), c.blobs...)
}
