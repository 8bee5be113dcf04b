// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"sync"

	"google.golang.org/genai"
)

// LiveRequest is one request sent to a live model connection.
type LiveRequest struct {
	// Content is sent as a turn-based content.
	Content *genai.Content `json:"content,omitzero"`

	// Blob is sent as realtime input.
	Blob *genai.Blob `json:"blob,omitzero"`

	// Close signals the end of the queue.
	Close bool `json:"close,omitzero"`
}

// liveRequestQueueSize bounds the number of buffered live requests.
const liveRequestQueueSize = 100

// LiveRequestQueue queues requests sent by the client to a live agent.
type LiveRequestQueue struct {
	ch        chan *LiveRequest
	closeOnce sync.Once
}

// NewLiveRequestQueue creates a new [LiveRequestQueue].
func NewLiveRequestQueue() *LiveRequestQueue {
	return &LiveRequestQueue{
		ch: make(chan *LiveRequest, liveRequestQueueSize),
	}
}

// Close enqueues a close request. Later calls are no-ops.
func (q *LiveRequestQueue) Close() {
	q.closeOnce.Do(func() {
		q.ch <- &LiveRequest{Close: true}
	})
}

// SendContent enqueues a content.
func (q *LiveRequestQueue) SendContent(content *genai.Content) {
	q.Send(&LiveRequest{Content: content})
}

// SendRealtime enqueues a realtime blob.
func (q *LiveRequestQueue) SendRealtime(blob *genai.Blob) {
	q.Send(&LiveRequest{Blob: blob})
}

// Send enqueues req, blocking while the queue is full.
func (q *LiveRequestQueue) Send(req *LiveRequest) {
	q.ch <- req
}

// Get dequeues the next request, blocking until one is available or ctx is done.
func (q *LiveRequestQueue) Get(ctx context.Context) (*LiveRequest, error) {
	select {
	case req := <-q.ch:
		return req, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
