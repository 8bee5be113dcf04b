// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types"
)

var reflector = &jsonschema.Reflector{
	Anonymous:                 true,
	DoNotReference:            true,
	AllowAdditionalProperties: true,
}

// SchemaFor returns the [*genai.Schema] describing the JSON form of T.
//
// Field names and required-ness follow the json struct tags, descriptions and
// enums the jsonschema tags. T must not be a recursive type.
func SchemaFor[T any]() (*genai.Schema, error) {
	return SchemaFromType(reflect.TypeFor[T]())
}

// SchemaFromType is like [SchemaFor] for a [reflect.Type] known at run time.
func SchemaFromType(typ reflect.Type) (*genai.Schema, error) {
	return ToGeminiSchema(reflector.ReflectFromType(typ))
}

var jsonTypes = map[string]genai.Type{
	"object":  genai.TypeObject,
	"array":   genai.TypeArray,
	"string":  genai.TypeString,
	"integer": genai.TypeInteger,
	"number":  genai.TypeNumber,
	"boolean": genai.TypeBoolean,
	"null":    genai.TypeNULL,
}

// ToGeminiSchema converts a JSON schema into the subset understood by Gemini function declarations.
//
// Property order is kept in PropertyOrdering. A oneOf/anyOf with a "null"
// member collapses into a nullable schema.
func ToGeminiSchema(s *jsonschema.Schema) (*genai.Schema, error) {
	if s == nil {
		return nil, nil
	}

	out := &genai.Schema{
		Description: s.Description,
		Title:       s.Title,
		Format:      s.Format,
		Pattern:     s.Pattern,
		Default:     s.Default,
		Required:    s.Required,
	}
	if s.Type != "" {
		typ, ok := jsonTypes[s.Type]
		if !ok {
			return nil, fmt.Errorf("unsupported JSON schema type %q", s.Type)
		}
		out.Type = typ
	}

	for _, v := range s.Enum {
		out.Enum = append(out.Enum, fmt.Sprint(v))
	}
	if len(s.Examples) > 0 {
		out.Example = s.Examples[0]
	}

	var err error
	if out.Minimum, err = jsonNumber(s.Minimum); err != nil {
		return nil, err
	}
	if out.Maximum, err = jsonNumber(s.Maximum); err != nil {
		return nil, err
	}
	out.MinItems = toInt64(s.MinItems)
	out.MaxItems = toInt64(s.MaxItems)
	out.MinLength = toInt64(s.MinLength)
	out.MaxLength = toInt64(s.MaxLength)
	out.MinProperties = toInt64(s.MinProperties)
	out.MaxProperties = toInt64(s.MaxProperties)

	if s.Items != nil {
		if out.Items, err = ToGeminiSchema(s.Items); err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
	}

	if s.Properties != nil && s.Properties.Len() > 0 {
		out.Properties = make(map[string]*genai.Schema, s.Properties.Len())
		for p := s.Properties.Oldest(); p != nil; p = p.Next() {
			prop, err := ToGeminiSchema(p.Value)
			if err != nil {
				return nil, fmt.Errorf("property %s: %w", p.Key, err)
			}
			out.Properties[p.Key] = prop
			out.PropertyOrdering = append(out.PropertyOrdering, p.Key)
		}
	}

	alternatives := append(append([]*jsonschema.Schema(nil), s.AnyOf...), s.OneOf...)
	for _, alt := range alternatives {
		if alt.Type == "null" {
			out.Nullable = types.ToPtr(true)
			continue
		}
		converted, err := ToGeminiSchema(alt)
		if err != nil {
			return nil, fmt.Errorf("anyOf: %w", err)
		}
		out.AnyOf = append(out.AnyOf, converted)
	}
	// A single non-null alternative is the nullable form of that schema.
	if len(out.AnyOf) == 1 && out.Nullable != nil && out.Type == "" {
		inner := out.AnyOf[0]
		inner.Nullable = out.Nullable
		if inner.Description == "" {
			inner.Description = out.Description
		}
		return inner, nil
	}

	return out, nil
}

func jsonNumber(n json.Number) (*float64, error) {
	if n == "" {
		return nil, nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid JSON schema number: %w", err)
	}
	return &f, nil
}

func toInt64(v *uint64) *int64 {
	if v == nil {
		return nil
	}
	return types.ToPtr(int64(*v))
}
