// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"context"
	"fmt"
	"iter"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-json-experiment/json"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types"
)

// InstructionsLLMRequestProcessor appends the global instruction of the root agent and the
// instruction of the current agent to the system instruction.
type InstructionsLLMRequestProcessor struct{}

var _ types.LLMRequestProcessor = (*InstructionsLLMRequestProcessor)(nil)

// Run implements [types.LLMRequestProcessor].
func (p *InstructionsLLMRequestProcessor) Run(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		llmAgent, ok := ictx.Agent.AsLLMAgent()
		if !ok {
			return
		}
		rctx := types.NewReadOnlyContext(ictx)

		if root, ok := ictx.Agent.RootAgent().AsLLMAgent(); ok {
			instruction, bypass, err := root.CanonicalGlobalInstruction(rctx)
			if err != nil {
				yield(nil, err)
				return
			}
			if err := appendInstruction(ctx, request, rctx, instruction, bypass); err != nil {
				yield(nil, fmt.Errorf("global instruction of %s: %w", root.Name(), err))
				return
			}
		}

		instruction, bypass, err := llmAgent.CanonicalInstruction(rctx)
		if err != nil {
			yield(nil, err)
			return
		}
		if err := appendInstruction(ctx, request, rctx, instruction, bypass); err != nil {
			yield(nil, fmt.Errorf("instruction of %s: %w", llmAgent.Name(), err))
			return
		}
	}
}

func appendInstruction(ctx context.Context, request *types.LLMRequest, rctx *types.ReadOnlyContext, instruction string, bypass bool) error {
	if instruction == "" {
		return nil
	}
	if !bypass {
		var err error
		if instruction, err = InjectSessionState(ctx, instruction, rctx); err != nil {
			return err
		}
	}
	request.AppendInstructions(instruction)
	return nil
}

var placeholderRe = regexp.MustCompile(`{+[^{}]*}+`)

const artifactPrefix = "artifact."

// InjectSessionState replaces the {placeholders} of template with session state values and artifacts.
//
// {key} is replaced by state[key] and fails with [types.ErrContextVariableNotFound]
// when the key is missing; {key?} is replaced by the empty string instead.
// Keys may carry the app:, user: or temp: prefix. {artifact.name} is replaced by
// the text of the latest version of the artifact. Placeholders that are not
// valid state names are kept as is.
func InjectSessionState(ctx context.Context, template string, rctx *types.ReadOnlyContext) (string, error) {
	ictx := rctx.InvocationContext()
	state := rctx.State()

	var (
		sb   strings.Builder
		last int
	)
	for _, loc := range placeholderRe.FindAllStringIndex(template, -1) {
		sb.WriteString(template[last:loc[0]])
		last = loc[1]

		match := template[loc[0]:loc[1]]
		name := strings.TrimSpace(strings.TrimRight(strings.TrimLeft(match, "{"), "}"))
		optional := false
		if n, ok := strings.CutSuffix(name, "?"); ok {
			name, optional = n, true
		}

		if filename, ok := strings.CutPrefix(name, artifactPrefix); ok {
			text, err := loadArtifactText(ctx, ictx, filename, optional)
			if err != nil {
				return "", err
			}
			sb.WriteString(text)
			continue
		}

		if !isValidStateName(name) {
			sb.WriteString(match)
			continue
		}
		v, ok := state[name]
		switch {
		case ok:
			sb.WriteString(fmt.Sprint(v))
		case optional:
		default:
			return "", fmt.Errorf("%w: `%s`", types.ErrContextVariableNotFound, name)
		}
	}
	sb.WriteString(template[last:])

	return sb.String(), nil
}

func loadArtifactText(ctx context.Context, ictx *types.InvocationContext, filename string, optional bool) (string, error) {
	if ictx.ArtifactService == nil {
		return "", types.ErrArtifactServiceNotInitialized
	}
	artifact, err := ictx.ArtifactService.LoadArtifact(ctx, ictx.AppName(), ictx.UserID(), ictx.Session.ID(), filename, types.LatestArtifactVersion)
	if err != nil {
		return "", fmt.Errorf("loading artifact %s: %w", filename, err)
	}
	if artifact == nil {
		if optional {
			return "", nil
		}
		return "", fmt.Errorf("%w: %s", types.ErrArtifactNotFound, filename)
	}
	return artifactText(artifact), nil
}

// artifactText renders an artifact: the text of a text part, the JSON form of any other part.
func artifactText(part *genai.Part) string {
	if part.Text != "" {
		return part.Text
	}
	b, err := json.Marshal(part, json.OmitZeroStructFields(true))
	if err != nil {
		return ""
	}
	return string(b)
}

// isValidStateName reports whether name is an identifier, optionally behind a state scope prefix.
func isValidStateName(name string) bool {
	prefix, rest, found := strings.Cut(name, ":")
	if !found {
		return isIdentifier(name)
	}
	switch prefix + ":" {
	case types.AppPrefix, types.UserPrefix, types.TempPrefix:
		return isIdentifier(rest)
	}
	return false
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
