// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"time"

	"github.com/google/uuid"
	deepcopy "github.com/tiendc/go-deepcopy"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types/py"
)

// AuthorUser is the author of events produced by the end user.
const AuthorUser = "user"

// Event represents an event in a conversation between agents and users.
//
// It is used to store the content of the conversation, as well as the actions
// taken by the agents like function calls, etc.
type Event struct {
	*LLMResponse

	// InvocationID is the invocation ID of the event.
	InvocationID string `json:"invocation_id,omitzero"`

	// Author is "user" or the name of the agent, indicating who appended the event to the session.
	Author string `json:"author"`

	// Actions is the actions taken by the agent.
	Actions *EventActions `json:"actions"`

	// LongRunningToolIDs is the set of ids of the long running function calls.
	// Agent client will know from this field about which function call is long running.
	// only valid for function call event.
	LongRunningToolIDs py.Set[string] `json:"long_running_tool_ids,omitzero"`

	// Branch is the branch of the event.
	//
	// The format is like agent_1.agent_2.agent_3, where agent_1 is the parent of
	// agent_2, and agent_2 is the parent of agent_3.
	//
	// Branch is used when multiple sub-agent shouldn't see their peer agents'
	// conversation history.
	Branch string `json:"branch,omitzero"`

	// ID is the unique identifier of the event.
	ID string `json:"id"`

	// Timestamp is the timestamp of the event.
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates a new [Event] with a fresh ID, the current timestamp and empty actions.
func NewEvent() *Event {
	return &Event{
		LLMResponse: &LLMResponse{},
		Actions:     NewEventActions(),
		ID:          NewEventID(),
		Timestamp:   time.Now(),
	}
}

// WithInvocationID sets the invocation ID of the event.
func (e *Event) WithInvocationID(invocationID string) *Event {
	e.InvocationID = invocationID
	return e
}

// WithAuthor sets the author of the event.
func (e *Event) WithAuthor(author string) *Event {
	e.Author = author
	return e
}

// WithActions sets the actions of the event.
func (e *Event) WithActions(actions *EventActions) *Event {
	e.Actions = actions
	return e
}

// WithLongRunningToolIDs sets the long running tool IDs of the event.
func (e *Event) WithLongRunningToolIDs(ids py.Set[string]) *Event {
	e.LongRunningToolIDs = ids
	return e
}

// WithBranch sets the branch of the event.
func (e *Event) WithBranch(branch string) *Event {
	e.Branch = branch
	return e
}

// WithTimestamp sets the timestamp of the event.
func (e *Event) WithTimestamp(ts time.Time) *Event {
	e.Timestamp = ts
	return e
}

// WithLLMResponse sets the LLMResponse for the event.
func (e *Event) WithLLMResponse(response *LLMResponse) *Event {
	e.LLMResponse = response
	return e
}

// WithContent sets the content of the event's LLMResponse.
func (e *Event) WithContent(content *genai.Content) *Event {
	if e.LLMResponse == nil {
		e.LLMResponse = &LLMResponse{}
	}
	e.Content = content
	return e
}

// GetContent returns the content of the event, or nil.
func (e *Event) GetContent() *genai.Content {
	if e == nil || e.LLMResponse == nil {
		return nil
	}
	return e.Content
}

// IsPartial reports whether the event is a chunk of a streamed response.
func (e *Event) IsPartial() bool {
	return e.LLMResponse != nil && e.Partial
}

// IsFinalResponse reports whether the event is the final response of the agent.
func (e *Event) IsFinalResponse() bool {
	if (e.Actions != nil && e.Actions.SkipSummarization) || len(e.LongRunningToolIDs) > 0 {
		return true
	}

	return len(e.GetFunctionCalls()) == 0 &&
		len(e.GetFunctionResponses()) == 0 &&
		!e.IsPartial() &&
		!e.HasTrailingCodeExecutionResult()
}

// GetFunctionCalls returns the function calls in the event.
func (e *Event) GetFunctionCalls() []*genai.FunctionCall {
	content := e.GetContent()
	if content == nil {
		return nil
	}
	var calls []*genai.FunctionCall
	for _, part := range content.Parts {
		if part != nil && part.FunctionCall != nil {
			calls = append(calls, part.FunctionCall)
		}
	}
	return calls
}

// GetFunctionResponses returns the function responses in the event.
func (e *Event) GetFunctionResponses() []*genai.FunctionResponse {
	content := e.GetContent()
	if content == nil {
		return nil
	}
	var responses []*genai.FunctionResponse
	for _, part := range content.Parts {
		if part != nil && part.FunctionResponse != nil {
			responses = append(responses, part.FunctionResponse)
		}
	}
	return responses
}

// HasTrailingCodeExecutionResult reports whether the event has a trailing code execution result.
func (e *Event) HasTrailingCodeExecutionResult() bool {
	content := e.GetContent()
	if content == nil || len(content.Parts) == 0 {
		return false
	}
	last := content.Parts[len(content.Parts)-1]
	return last != nil && last.CodeExecutionResult != nil
}

// Clone returns a deep copy of the event.
func (e *Event) Clone() (*Event, error) {
	var out Event
	if err := deepcopy.Copy(&out, e); err != nil {
		return nil, err
	}
	return &out, nil
}

// NewEventID generates a new unique event ID.
func NewEventID() string {
	return uuid.NewString()
}
