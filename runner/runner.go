// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/pkg/logging"
	"github.com/zshehov/adk-python-sub001/telemetry"
	"github.com/zshehov/adk-python-sub001/types"
)

// Runner runs an agent tree within sessions.
//
// Each call to Run is one invocation: the new message is appended to the
// session, the agent that should answer it is selected and every non-partial
// event it produces is appended to the session before being yielded.
type Runner struct {
	appName string
	agent   types.Agent

	sessionService    types.SessionService
	artifactService   types.ArtifactService
	memoryService     types.MemoryService
	credentialService types.CredentialService

	logger *slog.Logger
}

// Option configures a [Runner].
type Option func(*Runner)

// WithArtifactService sets the artifact service of the runner.
func WithArtifactService(svc types.ArtifactService) Option {
	return func(r *Runner) {
		r.artifactService = svc
	}
}

// WithMemoryService sets the memory service of the runner.
func WithMemoryService(svc types.MemoryService) Option {
	return func(r *Runner) {
		r.memoryService = svc
	}
}

// WithCredentialService sets the credential service of the runner.
func WithCredentialService(svc types.CredentialService) Option {
	return func(r *Runner) {
		r.credentialService = svc
	}
}

// WithLogger sets the logger of the runner.
//
// The logger is stored in the context of every run, see [logging.FromContext].
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New returns a [Runner] running agent for the application appName.
func New(appName string, agent types.Agent, sessionService types.SessionService, opts ...Option) *Runner {
	r := &Runner{
		appName:        appName,
		agent:          agent,
		sessionService: sessionService,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// AppName returns the application name of the runner.
func (r *Runner) AppName() string {
	return r.appName
}

// Agent returns the root agent of the runner.
func (r *Runner) Agent() types.Agent {
	return r.agent
}

// SessionService returns the session service of the runner.
func (r *Runner) SessionService() types.SessionService {
	return r.sessionService
}

// Run runs the agent for newMessage in the session sessionID of userID.
//
// The session must exist. A nil runConfig uses [types.NewRunConfig].
func (r *Runner) Run(ctx context.Context, userID, sessionID string, newMessage *genai.Content, runConfig *types.RunConfig) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		ctx = logging.NewContext(ctx, r.logger.With(
			slog.String("app_name", r.appName),
			slog.String("user_id", userID),
			slog.String("session_id", sessionID),
		))
		ctx, span := telemetry.Tracer().Start(ctx, "invocation")
		defer span.End()

		fail := func(err error) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			yield(nil, err)
		}

		ses, err := r.getSession(ctx, userID, sessionID)
		if err != nil {
			fail(err)
			return
		}

		ictx := r.newInvocationContext(ses, types.WithUserContent(newMessage), types.WithRunConfig(runConfig))
		span.SetAttributes(attribute.String("gcp.vertex.agent.invocation_id", ictx.InvocationID))

		if newMessage != nil {
			if err := r.appendNewMessage(ctx, ictx, newMessage, ictx.RunConfig.SaveInputBlobsAsArtifacts); err != nil {
				fail(err)
				return
			}
		}

		ictx.Agent = r.findAgentToRun(ctx, ses, r.agent)
		r.logger.DebugContext(ctx, "running agent",
			slog.String("agent", ictx.Agent.Name()),
			slog.String("invocation_id", ictx.InvocationID),
		)

		for event, err := range ictx.Agent.Run(ctx, ictx) {
			if err != nil {
				fail(err)
				return
			}
			if !event.IsPartial() {
				if _, err := r.sessionService.AppendEvent(ctx, ses, event); err != nil {
					fail(fmt.Errorf("appending event %s: %w", event.ID, err))
					return
				}
			}
			if !yield(event, nil) {
				return
			}
		}
	}
}

// RunLive runs the agent in live mode, reading the client input from queue.
//
// The run ends when the model connection closes or the caller stops iterating.
func (r *Runner) RunLive(ctx context.Context, userID, sessionID string, queue *types.LiveRequestQueue, runConfig *types.RunConfig) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		ctx = logging.NewContext(ctx, r.logger.With(
			slog.String("app_name", r.appName),
			slog.String("user_id", userID),
			slog.String("session_id", sessionID),
		))
		ctx, span := telemetry.Tracer().Start(ctx, "invocation")
		defer span.End()

		ses, err := r.getSession(ctx, userID, sessionID)
		if err != nil {
			span.RecordError(err)
			yield(nil, err)
			return
		}

		ictx := r.newInvocationContext(ses, types.WithLiveRequestQueue(queue), types.WithRunConfig(runConfig))
		ictx.Agent = r.findAgentToRun(ctx, ses, r.agent)

		for event, err := range ictx.Agent.RunLive(ctx, ictx) {
			if err != nil {
				span.RecordError(err)
				yield(nil, err)
				return
			}
			if !event.IsPartial() {
				if _, err := r.sessionService.AppendEvent(ctx, ses, event); err != nil {
					yield(nil, fmt.Errorf("appending event %s: %w", event.ID, err))
					return
				}
			}
			if !yield(event, nil) {
				return
			}
		}
	}
}

// CloseSession adds the session to the memory service, when one is configured.
func (r *Runner) CloseSession(ctx context.Context, ses types.Session) error {
	if r.memoryService == nil {
		return nil
	}
	return r.memoryService.AddSessionToMemory(ctx, ses)
}

func (r *Runner) getSession(ctx context.Context, userID, sessionID string) (types.Session, error) {
	ses, err := r.sessionService.GetSession(ctx, r.appName, userID, sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting session %s: %w", sessionID, err)
	}
	if ses == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrSessionNotFound, sessionID)
	}
	return ses, nil
}

func (r *Runner) newInvocationContext(ses types.Session, opts ...types.InvocationContextOption) *types.InvocationContext {
	opts = append([]types.InvocationContextOption{
		types.WithArtifactService(r.artifactService),
		types.WithMemoryService(r.memoryService),
		types.WithCredentialService(r.credentialService),
	}, opts...)
	return types.NewInvocationContext(r.agent, ses, r.sessionService, opts...)
}

// appendNewMessage appends the user message to the session.
//
// With saveInputBlobs, inline data parts are stored as artifacts and replaced
// by a text part naming the artifact.
func (r *Runner) appendNewMessage(ctx context.Context, ictx *types.InvocationContext, message *genai.Content, saveInputBlobs bool) error {
	if len(message.Parts) == 0 {
		return fmt.Errorf("new message of invocation %s has no parts", ictx.InvocationID)
	}

	if saveInputBlobs && r.artifactService != nil {
		for i, part := range message.Parts {
			if part == nil || part.InlineData == nil {
				continue
			}
			filename := "artifact_" + ictx.InvocationID + "_" + strconv.Itoa(i)
			if _, err := r.artifactService.SaveArtifact(ctx, r.appName, ictx.UserID(), ictx.Session.ID(), filename, part); err != nil {
				return fmt.Errorf("saving input blob %s: %w", filename, err)
			}
			message.Parts[i] = genai.NewPartFromText("Uploaded file: " + filename + ". It is saved into artifacts")
		}
	}

	event := types.NewEvent().
		WithInvocationID(ictx.InvocationID).
		WithAuthor(types.AuthorUser).
		WithContent(message)
	if _, err := r.sessionService.AppendEvent(ctx, ictx.Session, event); err != nil {
		return fmt.Errorf("appending user message: %w", err)
	}
	return nil
}

// findAgentToRun selects the agent answering the new message.
//
// A function response resumes the agent that made the call. Otherwise the
// latest agent that replied and can still transfer across the tree keeps the
// conversation. The root agent answers by default.
func (r *Runner) findAgentToRun(ctx context.Context, ses types.Session, root types.Agent) types.Agent {
	events := ses.Events()

	if call := findMatchingFunctionCall(events); call != nil {
		if agent := root.FindAgent(call.Author); agent != nil {
			return agent
		}
	}

	for i := len(events) - 1; i >= 0; i-- {
		event := events[i]
		switch event.Author {
		case types.AuthorUser:
			continue
		case root.Name():
			return root
		}

		agent := root.FindSubAgent(event.Author)
		if agent == nil {
			r.logger.WarnContext(ctx, "event author not found in the agent tree",
				slog.String("author", event.Author),
				slog.String("event_id", event.ID),
			)
			continue
		}
		if isTransferableAcrossAgentTree(agent) {
			return agent
		}
	}
	return root
}

// findMatchingFunctionCall returns the event calling the function answered by the
// last event, if the last event is a function response.
func findMatchingFunctionCall(events []*types.Event) *types.Event {
	if len(events) == 0 {
		return nil
	}
	responses := events[len(events)-1].GetFunctionResponses()
	if len(responses) == 0 {
		return nil
	}
	id := responses[0].ID

	for i := len(events) - 2; i >= 0; i-- {
		for _, call := range events[i].GetFunctionCalls() {
			if call.ID == id {
				return events[i]
			}
		}
	}
	return nil
}

// isTransferableAcrossAgentTree reports whether agent and all its ancestors are
// LLM agents allowed to transfer to their parent.
func isTransferableAcrossAgentTree(agent types.Agent) bool {
	for a := agent; a != nil; a = a.ParentAgent() {
		llmAgent, ok := a.AsLLMAgent()
		if !ok || llmAgent.DisallowTransferToParent() {
			return false
		}
	}
	return true
}
