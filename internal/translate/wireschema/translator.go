// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package wireschema

import (
	"context"
	"fmt"
	"math"

	"github.com/dacolabs/adlc/internal/adl"
	"github.com/dacolabs/adlc/internal/translate"
	"github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"
)

// Draft is the JSON Schema dialect of generated documents.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// primitives lists the number of type parameters of every supported primitive.
var primitives = map[string]int{
	adl.Void: 0, adl.Bool: 0,
	adl.Int8: 0, adl.Int16: 0, adl.Int32: 0, adl.Int64: 0,
	adl.Word8: 0, adl.Word16: 0, adl.Word32: 0, adl.Word64: 0,
	adl.Float: 0, adl.Double: 0, adl.String: 0, adl.Bytes: 0, adl.JSON: 0,
	adl.Vector: 1, adl.StringMap: 1, adl.Nullable: 1,
}

// Translator translates ADL modules to a JSON Schema of their wire format.
type Translator struct{}

// Name returns the format name of the translator.
func (t *Translator) Name() string {
	return "jsonschema"
}

// FileExtension returns the file extension for JSON Schema files.
func (t *Translator) FileExtension() string {
	return ".schema.json"
}

// Translate converts an ADL module to a JSON Schema document holding one
// definition per declaration under "$defs", keyed "<module>.<name>".
func (t *Translator) Translate(ctx context.Context, mod *adl.Module, opts translate.Options) ([]byte, error) {
	s, err := Build(ctx, mod, opts)
	if err != nil {
		return nil, err
	}

	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON schema: %w", err)
	}

	return append(out, '\n'), nil
}

// Describe compiles a module keeping every name as declared.
func (t *Translator) Describe(ctx context.Context, mod *adl.Module, opts translate.Options) (*translate.Result, error) {
	return translate.Compile(ctx, mod, newResolver(), opts)
}

// Build compiles a module and returns its wire format schema.
func Build(ctx context.Context, mod *adl.Module, opts translate.Options) (*jsonschema.Schema, error) {
	result, err := (&Translator{}).Describe(ctx, mod, opts)
	if err != nil {
		return nil, err
	}

	root := &jsonschema.Schema{
		Schema: Draft,
		Title:  mod.Name,
		Defs:   make(map[string]*jsonschema.Schema, len(result.Decls)),
	}
	for i := range result.Decls {
		d := &result.Decls[i]
		s, err := declSchema(d, mod.Name)
		if err != nil {
			return nil, err
		}
		root.Defs[DefName(d.Module, d.WireName)] = s
	}
	return root, nil
}

// DefName returns the "$defs" key of a declaration.
func DefName(module, name string) string {
	return adl.ScopedName{Module: module, Name: name}.String()
}

func declSchema(d *translate.Declaration, module string) (*jsonschema.Schema, error) {
	switch d.Representation {
	case translate.RepRecord:
		s := &jsonschema.Schema{
			Type:                 "object",
			Title:                d.WireName,
			Properties:           make(map[string]*jsonschema.Schema, len(d.Members)),
			AdditionalProperties: falseSchema(),
		}
		for _, m := range d.Members {
			ms, err := typeSchema(m.Type, module)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", d.Schema.ScopedName(), m.WireName, err)
			}
			if m.Default != "" {
				ms.Default = []byte(m.Default)
			}
			s.Properties[m.WireName] = ms
			if !isNullable(m.Type) && m.Default == "" {
				s.Required = append(s.Required, m.WireName)
			}
		}
		return s, nil

	case translate.RepUnion:
		if len(d.Members) == 0 {
			s := falseSchema()
			s.Title = d.WireName
			return s, nil
		}
		s := &jsonschema.Schema{Title: d.WireName}
		for _, m := range d.Members {
			if !m.Payload {
				s.OneOf = append(s.OneOf, &jsonschema.Schema{Type: "string", Enum: []any{m.WireName}})
				continue
			}
			ms, err := typeSchema(m.Type, module)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", d.Schema.ScopedName(), m.WireName, err)
			}
			s.OneOf = append(s.OneOf, &jsonschema.Schema{
				Type:                 "object",
				Properties:           map[string]*jsonschema.Schema{m.WireName: ms},
				Required:             []string{m.WireName},
				AdditionalProperties: falseSchema(),
			})
		}
		return s, nil

	case translate.RepWrapper:
		s, err := typeSchema(d.Members[0].Type, module)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Schema.ScopedName(), err)
		}
		s.Title = d.WireName
		return s, nil

	default:
		return nil, &translate.UnsupportedShape{Type: d.Schema.ScopedName().String(), Shape: d.Representation.String()}
	}
}

func typeSchema(te adl.TypeExpr, module string) (*jsonschema.Schema, error) {
	switch te.Ref.Kind {
	case adl.RefTypeParam:
		return &jsonschema.Schema{}, nil
	case adl.RefReference:
		// Definitions of other modules live in their own documents.
		if te.Ref.Ref.Module != "" && te.Ref.Ref.Module != module {
			return &jsonschema.Schema{}, nil
		}
		return &jsonschema.Schema{Ref: "#/$defs/" + DefName(module, te.Ref.Ref.Name)}, nil
	case adl.RefPrimitive:
		return primitiveSchema(te, module)
	default:
		return nil, fmt.Errorf("unknown type reference in %s", te)
	}
}

func primitiveSchema(te adl.TypeExpr, module string) (*jsonschema.Schema, error) {
	name := te.Ref.Primitive
	arity, ok := primitives[name]
	if !ok || arity != len(te.Params) {
		return nil, fmt.Errorf("unsupported primitive %s", te)
	}

	switch name {
	case adl.Void:
		return &jsonschema.Schema{Type: "null"}, nil
	case adl.Bool:
		return &jsonschema.Schema{Type: "boolean"}, nil
	case adl.Int8:
		return intSchema(math.MinInt8, math.MaxInt8), nil
	case adl.Int16:
		return intSchema(math.MinInt16, math.MaxInt16), nil
	case adl.Int32:
		return intSchema(math.MinInt32, math.MaxInt32), nil
	case adl.Word8:
		return intSchema(0, math.MaxUint8), nil
	case adl.Word16:
		return intSchema(0, math.MaxUint16), nil
	case adl.Word32:
		return intSchema(0, math.MaxUint32), nil
	case adl.Word64:
		zero := 0.0
		return &jsonschema.Schema{Type: "integer", Minimum: &zero}, nil
	case adl.Int64:
		return &jsonschema.Schema{Type: "integer"}, nil
	case adl.Float, adl.Double:
		return &jsonschema.Schema{Type: "number"}, nil
	case adl.String:
		return &jsonschema.Schema{Type: "string"}, nil
	case adl.Bytes:
		return &jsonschema.Schema{Type: "string", ContentEncoding: "base64"}, nil
	case adl.JSON:
		return &jsonschema.Schema{}, nil
	}

	inner, err := typeSchema(te.Params[0], module)
	if err != nil {
		return nil, err
	}
	switch name {
	case adl.Vector:
		return &jsonschema.Schema{Type: "array", Items: inner}, nil
	case adl.StringMap:
		return &jsonschema.Schema{Type: "object", AdditionalProperties: inner}, nil
	default: // Nullable
		return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{{Type: "null"}, inner}}, nil
	}
}

func intSchema(minimum, maximum float64) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer", Minimum: &minimum, Maximum: &maximum}
}

// falseSchema matches nothing.
func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}

func isNullable(te adl.TypeExpr) bool {
	return te.Ref.Kind == adl.RefPrimitive && te.Ref.Primitive == adl.Nullable
}
