// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"fmt"
	"strings"

	"github.com/go-json-experiment/json"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/internal/pool"
)

// LLMRequest represents a LLM request class that allows passing in tools, output schema and system.
type LLMRequest struct {
	// The model name.
	Model string `json:"model,omitzero"`

	// The contents to send to the model.
	Contents []*genai.Content `json:"contents"`

	// Additional config for the generate content request.
	//
	// tools in generate_content_config should not be set.
	Config *genai.GenerateContentConfig `json:"config,omitzero"`

	// LiveConnectConfig is the config used by the live connection.
	LiveConnectConfig *genai.LiveConnectConfig `json:"live_connect_config,omitzero"`

	// ToolMap maps the declared function names to their tools.
	ToolMap map[string]Tool `json:"-"`
}

// LLMRequestOption configures an [LLMRequest].
type LLMRequestOption func(*LLMRequest)

// WithModelName sets the model name.
func WithModelName(name string) LLMRequestOption {
	return func(r *LLMRequest) {
		r.Model = name
	}
}

// WithGenerationConfig sets the [*genai.GenerateContentConfig] for the [LLMRequestOption].
func WithGenerationConfig(config *genai.GenerateContentConfig) LLMRequestOption {
	return func(r *LLMRequest) {
		r.Config = config
	}
}

// WithLiveConnectConfig sets the [*genai.LiveConnectConfig] for the [LLMRequestOption].
func WithLiveConnectConfig(config *genai.LiveConnectConfig) LLMRequestOption {
	return func(r *LLMRequest) {
		r.LiveConnectConfig = config
	}
}

// NewLLMRequest creates a new [LLMRequest].
func NewLLMRequest(contents []*genai.Content, opts ...LLMRequestOption) *LLMRequest {
	r := &LLMRequest{
		Contents:          contents,
		Config:            &genai.GenerateContentConfig{},
		LiveConnectConfig: &genai.LiveConnectConfig{},
		ToolMap:           make(map[string]Tool),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *LLMRequest) config() *genai.GenerateContentConfig {
	if r.Config == nil {
		r.Config = &genai.GenerateContentConfig{}
	}
	return r.Config
}

// AppendInstructions appends instructions to the system instruction, separated by blank lines.
func (r *LLMRequest) AppendInstructions(instructions ...string) {
	if len(instructions) == 0 {
		return
	}
	text := strings.Join(instructions, "\n\n")

	cfg := r.config()
	if cfg.SystemInstruction == nil || len(cfg.SystemInstruction.Parts) == 0 {
		cfg.SystemInstruction = genai.NewContentFromText(text, genai.RoleUser)
		return
	}
	first := cfg.SystemInstruction.Parts[0]
	if first.Text == "" {
		first.Text = text
		return
	}
	first.Text += "\n\n" + text
}

// SystemInstruction returns the text of the system instruction.
func (r *LLMRequest) SystemInstruction() string {
	if r.Config == nil || r.Config.SystemInstruction == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range r.Config.SystemInstruction.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// AppendTools adds the function declarations of tools to the request.
func (r *LLMRequest) AppendTools(tools ...Tool) *LLMRequest {
	if r.ToolMap == nil {
		r.ToolMap = make(map[string]Tool)
	}
	var declarations []*genai.FunctionDeclaration
	for _, tool := range tools {
		decl := tool.GetDeclaration()
		if decl == nil {
			continue
		}
		declarations = append(declarations, decl)
		r.ToolMap[tool.Name()] = tool
	}
	if len(declarations) == 0 {
		return r
	}

	cfg := r.config()
	cfg.Tools = append(cfg.Tools, &genai.Tool{
		FunctionDeclarations: declarations,
	})

	return r
}

// AppendFunctionDeclaration registers tool under its declared name and adds decl to the
// first [genai.Tool] that already carries function declarations.
func (r *LLMRequest) AppendFunctionDeclaration(tool Tool, decl *genai.FunctionDeclaration) {
	if decl == nil {
		return
	}
	if r.ToolMap == nil {
		r.ToolMap = make(map[string]Tool)
	}
	r.ToolMap[tool.Name()] = tool

	cfg := r.config()
	for _, t := range cfg.Tools {
		if t != nil && t.FunctionDeclarations != nil {
			t.FunctionDeclarations = append(t.FunctionDeclarations, decl)
			return
		}
	}
	cfg.Tools = append(cfg.Tools, &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{decl},
	})
}

// SetOutputSchema configures the expected response format.
func (r *LLMRequest) SetOutputSchema(schema *genai.Schema) *LLMRequest {
	cfg := r.config()
	cfg.ResponseSchema = schema
	cfg.ResponseMIMEType = "application/json"

	return r
}

// ToJSON converts the request to a JSON string.
func (r *LLMRequest) ToJSON() (string, error) {
	sb := pool.String.Get()
	defer pool.String.Put(sb)

	if err := json.MarshalWrite(sb, r, json.OmitZeroStructFields(true)); err != nil {
		return "", fmt.Errorf("marshal LLMRequest to JSON: %w", err)
	}
	return sb.String(), nil
}
