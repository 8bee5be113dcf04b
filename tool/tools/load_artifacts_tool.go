// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"fmt"

	"github.com/go-json-experiment/json"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/tool"
	"github.com/zshehov/adk-python-sub001/types"
)

// LoadArtifactsToolName is the name of the [LoadArtifactsTool].
const LoadArtifactsToolName = "load_artifacts"

// LoadArtifactsTool represents a tool that loads the artifacts and adds them to the session.
//
// The artifact content is attached to the model request only, never to the session.
type LoadArtifactsTool struct {
	*tool.Tool
}

var _ types.Tool = (*LoadArtifactsTool)(nil)

// NewLoadArtifactsTool returns the new [LoadArtifactsTool].
func NewLoadArtifactsTool() *LoadArtifactsTool {
	return &LoadArtifactsTool{
		Tool: tool.NewTool(LoadArtifactsToolName, "Loads the artifacts and adds them to the session.", false),
	}
}

// GetDeclaration implements [types.Tool].
func (t *LoadArtifactsTool) GetDeclaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.Name(),
		Description: t.Description(),
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"artifact_names": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeString,
					},
				},
			},
		},
	}
}

// Run implements [types.Tool].
func (t *LoadArtifactsTool) Run(_ context.Context, args map[string]any, _ *types.ToolContext) (any, error) {
	artifactNames, ok := args["artifact_names"]
	if !ok {
		artifactNames = []string{}
	}

	return map[string]any{
		"artifact_names": artifactNames,
	}, nil
}

// ProcessLLMRequest implements [types.Tool].
func (t *LoadArtifactsTool) ProcessLLMRequest(ctx context.Context, toolCtx *types.ToolContext, request *types.LLMRequest) error {
	tool.AppendToRequest(t, request)
	return t.appendArtifactsToLLMRequest(ctx, toolCtx, request)
}

func (t *LoadArtifactsTool) appendArtifactsToLLMRequest(ctx context.Context, toolCtx *types.ToolContext, request *types.LLMRequest) error {
	artifactNames, err := toolCtx.ListArtifacts(ctx)
	if err != nil {
		return err
	}
	if len(artifactNames) == 0 {
		return nil
	}

	names, err := json.Marshal(artifactNames)
	if err != nil {
		return err
	}
	request.AppendInstructions(`You have a list of artifacts:
  ` + string(names) + `

  When the user asks questions about any of the artifacts, you should call the
  ` + "`load_artifacts`" + ` function to load the artifact. Do not generate any text other
  than the function call.
  `)

	if len(request.Contents) == 0 {
		return nil
	}
	last := request.Contents[len(request.Contents)-1]
	if last == nil || len(last.Parts) == 0 {
		return nil
	}
	funcResponse := last.Parts[0].FunctionResponse
	if funcResponse == nil || funcResponse.Name != LoadArtifactsToolName {
		return nil
	}

	for _, name := range requestedArtifactNames(funcResponse.Response["artifact_names"]) {
		artifact, err := toolCtx.LoadArtifact(ctx, name, types.LatestArtifactVersion)
		if err != nil {
			return err
		}
		if artifact == nil {
			return fmt.Errorf("%w: %s", types.ErrArtifactNotFound, name)
		}
		request.Contents = append(request.Contents, genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(fmt.Sprintf("Artifact %s is:", name)),
			artifact,
		}, genai.RoleUser))
	}

	return nil
}

// requestedArtifactNames accepts both the []string returned by Run and its JSON decoded []any form.
func requestedArtifactNames(v any) []string {
	switch names := v.(type) {
	case []string:
		return names
	case []any:
		out := make([]string, 0, len(names))
		for _, n := range names {
			if s, ok := n.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
