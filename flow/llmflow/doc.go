// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package llmflow implements the model and tool loop of LLM agents.
//
// A step of the loop runs in this order:
//
//	build request    request processors, then ProcessLLMRequest of every tool
//	before model     the first non-nil callback response replaces the model call
//	call model       one response, or partial chunks then the aggregate with SSE streaming
//	after model      the first non-nil callback response replaces the model response
//	function calls   tools run concurrently; responses are merged in call order
//	transfer         transfer_to_agent hands the invocation to the named agent
//
// The loop ends when the last event of a step is a final response.
//
// Request processors:
//
//   - [BasicLLMRequestProcessor]: model name, a copy of the generation config, output schema.
//   - [AuthLLMRequestProcessor]: resumes tools once the client answered adk_request_credential.
//   - [InstructionsLLMRequestProcessor]: global and agent instructions with state injection.
//   - [IdentityLLMRequestProcessor]: the name and description of the agent.
//   - [ContentLLMRequestProcessor]: the conversation history, see [GetContents].
//   - [AgentTransferLLMRequestProcessor]: transfer targets and the transfer_to_agent tool ([AutoFlow] only).
//
// Tool failures become error payloads in the function response so the model can
// react to them. Model failures become events carrying an error code that end
// the run.
package llmflow
