// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/zshehov/adk-python-sub001/telemetry"
	"github.com/zshehov/adk-python-sub001/types"
)

// LLMFlow is the model and tool loop of an LLM agent.
//
// Each step builds a request with the request processors and the tools of the
// agent, calls the model and runs the tools it calls. Steps repeat until one
// ends with a final response.
type LLMFlow struct {
	requestProcessors []types.LLMRequestProcessor
	logger            *slog.Logger
}

var _ types.Flow = (*LLMFlow)(nil)

// Option configures an [LLMFlow].
type Option func(*LLMFlow)

// WithLogger sets the logger of the flow.
func WithLogger(logger *slog.Logger) Option {
	return func(f *LLMFlow) {
		f.logger = logger
	}
}

// WithRequestProcessors appends processors run after the built-in ones.
func WithRequestProcessors(processors ...types.LLMRequestProcessor) Option {
	return func(f *LLMFlow) {
		f.requestProcessors = append(f.requestProcessors, processors...)
	}
}

// NewLLMFlow creates an [LLMFlow] building requests with processors.
func NewLLMFlow(processors []types.LLMRequestProcessor, opts ...Option) *LLMFlow {
	f := &LLMFlow{
		requestProcessors: processors,
		logger:            slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run implements [types.Flow].
func (f *LLMFlow) Run(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		for {
			var last *types.Event
			for event, err := range f.runOneStep(ctx, ictx) {
				if err != nil {
					yield(nil, err)
					return
				}
				last = event
				if !yield(event, nil) {
					return
				}
			}

			if last == nil || last.IsFinalResponse() || ictx.EndInvocation {
				return
			}
			if last.IsPartial() {
				f.logger.WarnContext(ctx, "the last event of a step is partial", slog.String("event_id", last.ID))
				return
			}
		}
	}
}

// runOneStep runs one model call and the tool calls it asks for.
func (f *LLMFlow) runOneStep(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		request := types.NewLLMRequest(nil)
		for event, err := range f.preprocess(ctx, ictx, request) {
			if !yield(event, err) || err != nil {
				return
			}
		}
		if ictx.EndInvocation {
			return
		}

		template := newModelResponseEvent(ictx)
		for response, err := range f.callLLM(ctx, ictx, request, template) {
			if err != nil {
				yield(nil, err)
				return
			}
			for event, err := range f.postprocess(ctx, ictx, request, response, template) {
				if !yield(event, err) || err != nil {
					return
				}
			}
		}
	}
}

// preprocess runs the request processors, then lets every tool of the agent update the request.
func (f *LLMFlow) preprocess(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		llmAgent, ok := ictx.Agent.AsLLMAgent()
		if !ok {
			return
		}

		for _, processor := range f.requestProcessors {
			for event, err := range processor.Run(ctx, ictx, request) {
				if !yield(event, err) || err != nil {
					return
				}
			}
		}

		tools, err := llmAgent.CanonicalTools(ctx, types.NewReadOnlyContext(ictx))
		if err != nil {
			yield(nil, err)
			return
		}
		for _, tool := range tools {
			if err := tool.ProcessLLMRequest(ctx, types.NewToolContext(ictx), request); err != nil {
				yield(nil, fmt.Errorf("tool %s: %w", tool.Name(), err))
				return
			}
		}
	}
}

// callLLM calls the model, or returns the response of a before model callback instead.
//
// Model failures are yielded as error responses.
func (f *LLMFlow) callLLM(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest, template *types.Event) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		llmAgent, ok := ictx.Agent.AsLLMAgent()
		if !ok {
			return
		}
		cctx := types.NewCallbackContextWithActions(ictx, template.Actions)

		response, err := types.RunBeforeModelCallbacks(cctx, request, llmAgent.BeforeModelCallbacks())
		if err != nil {
			yield(nil, fmt.Errorf("before model callback of %s: %w", llmAgent.Name(), err))
			return
		}
		if response != nil {
			yield(response, nil)
			return
		}

		if err := ictx.IncrementLLMCallCount(); err != nil {
			yield(nil, err)
			return
		}
		model, err := llmAgent.CanonicalModel(ctx)
		if err != nil {
			yield(nil, err)
			return
		}

		ctx, span := telemetry.StartCallLLM(ctx)
		defer span.End()

		f.logger.DebugContext(ctx, "calling model",
			slog.String("agent", llmAgent.Name()),
			slog.String("model", request.Model),
			slog.Int("contents", len(request.Contents)),
			slog.Int("tools", len(request.ToolMap)),
		)

		for response, err := range generate(ctx, ictx, model, request) {
			if err != nil {
				f.logger.ErrorContext(ctx, "model call failed", slog.String("agent", llmAgent.Name()), slog.Any("error", err))
				errResponse := types.NewErrorLLMResponse(types.ErrorCodeModel, err.Error())
				telemetry.TraceCallLLM(span, ictx, template.ID, request, errResponse)
				yield(errResponse, nil)
				return
			}
			if response == nil {
				continue
			}
			telemetry.TraceCallLLM(span, ictx, template.ID, request, response)

			altered, err := types.RunAfterModelCallbacks(cctx, response, llmAgent.AfterModelCallbacks())
			if err != nil {
				yield(nil, fmt.Errorf("after model callback of %s: %w", llmAgent.Name(), err))
				return
			}
			if altered != nil {
				response = altered
			}
			if !yield(response, nil) {
				return
			}
		}
	}
}

// generate streams the model responses when the run asks for SSE streaming.
func generate(ctx context.Context, ictx *types.InvocationContext, model types.Model, request *types.LLMRequest) iter.Seq2[*types.LLMResponse, error] {
	if ictx.RunConfig != nil && ictx.RunConfig.StreamingMode == types.StreamingModeSSE {
		return model.StreamGenerateContent(ctx, request)
	}
	return func(yield func(*types.LLMResponse, error) bool) {
		yield(model.GenerateContent(ctx, request))
	}
}

// postprocess turns a model response into events and runs the function calls it carries.
func (f *LLMFlow) postprocess(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest, response *types.LLMResponse, template *types.Event) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		if response.Content == nil && response.ErrorCode == "" && !response.Interrupted {
			return
		}

		event := finalizeModelResponseEvent(request, response, template)
		if !yield(event, nil) {
			return
		}
		if len(event.GetFunctionCalls()) == 0 || event.IsPartial() {
			return
		}

		for ev, err := range f.handleFunctionCalls(ctx, ictx, request, event) {
			if !yield(ev, err) || err != nil {
				return
			}
		}
	}
}

// handleFunctionCalls runs the calls of event, then hands control to the transfer target if any.
//
// Responses of calls requesting credentials are withheld. The responses of the
// other calls are yielded, then the credential request ends the step. The
// withheld calls are run again once the client answers it.
func (f *LLMFlow) handleFunctionCalls(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest, event *types.Event) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		responseEvent, err := HandleFunctionCalls(ctx, ictx, event, request.ToolMap, nil)
		if err != nil {
			yield(nil, err)
			return
		}
		if responseEvent == nil {
			return
		}

		authEvent, err := GenerateAuthEvent(ictx, responseEvent)
		if err != nil {
			yield(nil, err)
			return
		}
		if authEvent != nil {
			if answered := withoutAuthRequests(responseEvent); answered != nil {
				if !yield(answered, nil) {
					return
				}
			}
			yield(authEvent, nil)
			return
		}

		if !yield(responseEvent, nil) {
			return
		}

		agentName := responseEvent.Actions.TransferToAgent
		if agentName == "" {
			return
		}
		target, err := transferTarget(ictx, agentName)
		if err != nil {
			yield(nil, err)
			return
		}
		f.logger.DebugContext(ctx, "transferring to agent", slog.String("from", ictx.Agent.Name()), slog.String("to", agentName))
		for ev, err := range target.Run(ctx, ictx) {
			if !yield(ev, err) || err != nil {
				return
			}
		}
	}
}

// transferTarget resolves agentName anywhere in the agent tree of the invocation.
func transferTarget(ictx *types.InvocationContext, agentName string) (types.Agent, error) {
	target := ictx.Agent.RootAgent().FindAgent(agentName)
	if target == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrAgentNotFound, agentName)
	}
	return target, nil
}

func newModelResponseEvent(ictx *types.InvocationContext) *types.Event {
	return types.NewEvent().
		WithInvocationID(ictx.InvocationID).
		WithAuthor(ictx.Agent.Name()).
		WithBranch(ictx.Branch)
}

// finalizeModelResponseEvent builds the event of response from template.
//
// All events of one model call share the id and the actions of template.
func finalizeModelResponseEvent(request *types.LLMRequest, response *types.LLMResponse, template *types.Event) *types.Event {
	event := &types.Event{
		LLMResponse:  response,
		InvocationID: template.InvocationID,
		Author:       template.Author,
		Actions:      template.Actions,
		Branch:       template.Branch,
		ID:           template.ID,
		Timestamp:    template.Timestamp,
	}

	if calls := event.GetFunctionCalls(); len(calls) > 0 {
		PopulateClientFunctionCallID(event)
		event.LongRunningToolIDs = GetLongRunningFunctionCalls(calls, request.ToolMap)
	}
	return event
}

// errLiveRequestsClosed ends the live session after the client closed the request queue.
var errLiveRequestsClosed = errors.New("live request queue closed")

// RunLive implements [types.Flow].
func (f *LLMFlow) RunLive(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		request := types.NewLLMRequest(nil)
		for event, err := range f.preprocess(ctx, ictx, request) {
			if !yield(event, err) || err != nil {
				return
			}
		}
		if ictx.EndInvocation {
			return
		}
		if ictx.LiveRequestQueue == nil {
			yield(nil, errors.New("live request queue is not set"))
			return
		}

		llmAgent, ok := ictx.Agent.AsLLMAgent()
		if !ok {
			return
		}
		model, err := llmAgent.CanonicalModel(ctx)
		if err != nil {
			yield(nil, err)
			return
		}
		conn, err := model.Connect(ctx, request)
		if err != nil {
			yield(nil, err)
			return
		}

		if len(request.Contents) > 0 {
			_, span := telemetry.StartSendData(ctx)
			telemetry.TraceSendData(span, ictx, types.NewEventID(), request.Contents)
			err := conn.SendHistory(ctx, request.Contents)
			span.End()
			if err != nil {
				conn.Close()
				yield(nil, err)
				return
			}
		}

		sendCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		g, gctx := errgroup.WithContext(sendCtx)
		g.Go(func() error {
			return sendToModel(gctx, ictx, conn)
		})
		stop := func() error {
			cancel()
			conn.Close()
			err := g.Wait()
			if errors.Is(err, errLiveRequestsClosed) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		for response, err := range conn.Receive(gctx) {
			if err != nil {
				if gctx.Err() != nil {
					// The sender ended the session.
					break
				}
				stop()
				yield(nil, err)
				return
			}

			template := newModelResponseEvent(ictx)
			var transfer *types.Event
			for event, err := range f.postprocessLive(ctx, ictx, request, response, template) {
				if !yield(event, err) || err != nil {
					stop()
					return
				}
				if len(event.GetFunctionResponses()) == 0 {
					continue
				}
				if event.Actions != nil && event.Actions.TransferToAgent != "" {
					transfer = event
					break
				}
				ictx.LiveRequestQueue.SendContent(event.GetContent())
			}

			if transfer != nil {
				if err := stop(); err != nil {
					yield(nil, err)
					return
				}
				target, err := transferTarget(ictx, transfer.Actions.TransferToAgent)
				if err != nil {
					yield(nil, err)
					return
				}
				for ev, err := range target.RunLive(ctx, ictx) {
					if !yield(ev, err) || err != nil {
						return
					}
				}
				return
			}
		}

		if err := stop(); err != nil {
			yield(nil, err)
		}
	}
}

// sendToModel forwards the live requests of the client to the model connection.
func sendToModel(ctx context.Context, ictx *types.InvocationContext, conn types.ModelConnection) error {
	for {
		req, err := ictx.LiveRequestQueue.Get(ctx)
		if err != nil {
			return err
		}
		if req.Close {
			conn.Close()
			return errLiveRequestsClosed
		}
		if req.Blob != nil {
			if err := conn.SendRealtime(ctx, req.Blob); err != nil {
				return err
			}
		}
		if req.Content != nil {
			if err := conn.SendContent(ctx, req.Content); err != nil {
				return err
			}
		}
	}
}

// postprocessLive turns a live model response into events and runs the function calls it carries.
func (f *LLMFlow) postprocessLive(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest, response *types.LLMResponse, template *types.Event) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		if response.Content == nil && response.ErrorCode == "" && !response.Interrupted && !response.TurnComplete {
			return
		}

		event := finalizeModelResponseEvent(request, response, template)
		if !yield(event, nil) {
			return
		}
		if len(event.GetFunctionCalls()) == 0 {
			return
		}

		responseEvent, err := HandleFunctionCalls(ctx, ictx, event, request.ToolMap, nil)
		if err != nil {
			yield(nil, err)
			return
		}
		if responseEvent != nil {
			yield(responseEvent, nil)
		}
	}
}
