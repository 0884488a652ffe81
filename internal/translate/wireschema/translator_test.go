// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package wireschema

import (
	"context"
	"os"
	"testing"

	"github.com/dacolabs/adlc/internal/adl"
	"github.com/dacolabs/adlc/internal/translate"
	"github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func field(wire string, te adl.TypeExpr) adl.Member {
	return adl.Member{Name: wire, WireName: wire, Type: te}
}

// defSchema returns a resolved schema that validates instances of one
// declaration of the module.
func defSchema(t *testing.T, mod *adl.Module, name string) *jsonschema.Resolved {
	t.Helper()
	root, err := Build(context.Background(), mod, translate.Options{})
	require.NoError(t, err)

	root.Ref = "#/$defs/" + DefName(mod.Name, name)
	resolved, err := root.Resolve(nil)
	require.NoError(t, err)
	return resolved
}

func instance(t *testing.T, data string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(data), &v))
	return v
}

func loadTest14(t *testing.T) *adl.Module {
	t.Helper()
	mod, err := adl.NewLoader(os.DirFS("../rust/testdata")).LoadFile("test14.json")
	require.NoError(t, err)
	return mod
}

func TestTranslate_UsesWireNames(t *testing.T) {
	translator := &Translator{}
	output, err := translator.Translate(context.Background(), loadTest14(t), translate.Options{})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(output, &doc))
	assert.Equal(t, Draft, doc["$schema"])

	defs, ok := doc["$defs"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, defs, 3)

	sw := defs["test14.Switch"].(map[string]any)
	props := sw["properties"].(map[string]any)
	assert.Contains(t, props, "for")
	assert.Contains(t, props, "Objects")
	assert.NotContains(t, props, "r#for")
	assert.NotContains(t, props, "objects")
}

func TestBuild_RecordInstances(t *testing.T) {
	s := defSchema(t, loadTest14(t), "Switch")

	tests := []struct {
		name  string
		data  string
		valid bool
	}{
		{"all wire names", `{"double": 1.5, "int": 3, "string": "s", "for": true, "Objects": "o"}`, true},
		{"target name", `{"double": 1.5, "int": 3, "string": "s", "for": true, "objects": "o"}`, false},
		{"missing field", `{"double": 1.5, "int": 3, "string": "s", "for": true}`, false},
		{"int out of range", `{"double": 1.5, "int": 4294967296, "string": "s", "for": true, "Objects": "o"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Validate(instance(t, tt.data))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestBuild_UnionInstances(t *testing.T) {
	mod := &adl.Module{Name: "m", Types: []adl.SchemaType{{
		Module: "m",
		Name:   "Shape",
		Shape:  adl.ShapeUnion,
		Members: []adl.Member{
			field("null", adl.Prim(adl.Void)),
			field("circle", adl.Prim(adl.Double)),
			field("points", adl.Prim(adl.Vector, adl.Prim(adl.Int16))),
		},
	}}}
	s := defSchema(t, mod, "Shape")

	tests := []struct {
		name  string
		data  string
		valid bool
	}{
		{"pure tag", `"null"`, true},
		{"payload", `{"circle": 2.0}`, true},
		{"vector payload", `{"points": [1, 2, 3]}`, true},
		{"target tag", `"Null"`, false},
		{"two tags", `{"circle": 2.0, "points": []}`, false},
		{"unknown tag", `"square"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Validate(instance(t, tt.data))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestBuild_WrapperIsTransparent(t *testing.T) {
	s := defSchema(t, loadTest14(t), "Factory")
	assert.NoError(t, s.Validate(instance(t, `"acme"`)))
	assert.Error(t, s.Validate(instance(t, `{"value": "acme"}`)))
}

func TestBuild_NullableAndReferences(t *testing.T) {
	mod := &adl.Module{Name: "m", Types: []adl.SchemaType{
		{
			Module: "m",
			Name:   "Person",
			Shape:  adl.ShapeRecord,
			Members: []adl.Member{
				field("name", adl.Prim(adl.String)),
				field("nick", adl.Prim(adl.Nullable, adl.Prim(adl.String))),
				field("tags", adl.Prim(adl.StringMap, adl.Prim(adl.Bool))),
				field("id", adl.Ref("m", "Id")),
				field("ext", adl.Ref("other", "Thing")),
			},
		},
		{
			Module:  "m",
			Name:    "Id",
			Shape:   adl.ShapeWrapper,
			Members: []adl.Member{field("value", adl.Prim(adl.Word8))},
		},
	}}
	s := defSchema(t, mod, "Person")

	assert.NoError(t, s.Validate(instance(t, `{"name": "a", "tags": {"x": true}, "id": 7, "ext": [1]}`)))
	assert.NoError(t, s.Validate(instance(t, `{"name": "a", "nick": null, "tags": {}, "id": 0, "ext": null}`)))
	assert.Error(t, s.Validate(instance(t, `{"name": "a", "tags": {}, "id": 256, "ext": 1}`)))
	assert.Error(t, s.Validate(instance(t, `{"name": "a", "tags": {"x": 1}, "id": 1, "ext": 1}`)))
}

func TestBuild_EmptyUnionMatchesNothing(t *testing.T) {
	mod := &adl.Module{Name: "m", Types: []adl.SchemaType{{Module: "m", Name: "Never", Shape: adl.ShapeUnion}}}
	s := defSchema(t, mod, "Never")
	assert.Error(t, s.Validate(instance(t, `"anything"`)))
}

func TestBuild_UnsupportedShape(t *testing.T) {
	mod := &adl.Module{Name: "m", Types: []adl.SchemaType{{Module: "m", Name: "A", Shape: adl.ShapeAlias}}}
	_, err := Build(context.Background(), mod, translate.Options{})
	var us *translate.UnsupportedShape
	require.ErrorAs(t, err, &us)
}

func TestBuild_DefaultedFieldsOptional(t *testing.T) {
	b := field("b", adl.Prim(adl.String))
	b.Default = &adl.Default{Value: "abcde"}
	mod := &adl.Module{Name: "m", Types: []adl.SchemaType{{
		Module:  "m",
		Name:    "S",
		Shape:   adl.ShapeRecord,
		Members: []adl.Member{field("a", adl.Prim(adl.String)), b},
	}}}

	root, err := Build(context.Background(), mod, translate.Options{})
	require.NoError(t, err)
	def := root.Defs["m.S"]
	require.NotNil(t, def)
	assert.Equal(t, []string{"a"}, def.Required)
	assert.JSONEq(t, `"abcde"`, string(def.Properties["b"].Default))

	s := defSchema(t, mod, "S")
	assert.NoError(t, s.Validate(instance(t, `{"a": "x"}`)))
	assert.NoError(t, s.Validate(instance(t, `{"a": "x", "b": "y"}`)))
	assert.Error(t, s.Validate(instance(t, `{"b": "y"}`)))
	assert.Error(t, s.Validate(instance(t, `{"a": "x", "b": 1}`)))
}
