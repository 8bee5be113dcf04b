// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package example provides few-shot examples that are rendered into the system instruction.
//
// A [Provider] returns the examples relevant to the user query; [List] is the
// fixed provider. [ConvertExamplesToText] renders them in the format the
// models were tuned on:
//
//	examples := example.List{{
//		Input: genai.NewContentFromText("What is the capital of France?", genai.RoleUser),
//		Output: []*genai.Content{
//			genai.NewContentFromText("The capital of France is Paris.", genai.RoleModel),
//		},
//	}}
//	si, err := example.BuildExampleSI(ctx, examples, query, "gemini-2.0-flash")
package example
