// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package wire

import (
	"context"
	"os"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/dacolabs/adlc/internal/adl"
	"github.com/dacolabs/adlc/internal/translate"
	"github.com/dacolabs/adlc/internal/translate/rust"
	"github.com/dacolabs/adlc/internal/translate/wireschema"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func field(wire string, te adl.TypeExpr) adl.Member {
	return adl.Member{Name: wire, WireName: wire, Type: te}
}

func loadTest14(t *testing.T) *adl.Module {
	t.Helper()
	mod, err := adl.NewLoader(os.DirFS("../translate/rust/testdata")).LoadFile("test14.json")
	require.NoError(t, err)
	return mod
}

func codecFor(t *testing.T, mods ...*adl.Module) *Codec {
	t.Helper()
	var decls []translate.Declaration
	for _, mod := range mods {
		result, err := (&rust.Translator{}).Describe(context.Background(), mod, translate.Options{})
		require.NoError(t, err)
		decls = append(decls, result.Decls...)
	}
	return NewCodec(decls...)
}

func genericModule() *adl.Module {
	return &adl.Module{Name: "sys.types", Types: []adl.SchemaType{
		{
			Module:     "sys.types",
			Name:       "Pair",
			TypeParams: []string{"T1", "T2"},
			Shape:      adl.ShapeRecord,
			Members:    []adl.Member{field("v1", adl.Param("T1")), field("v2", adl.Param("T2"))},
		},
		{
			Module:     "sys.types",
			Name:       "Maybe",
			TypeParams: []string{"T"},
			Shape:      adl.ShapeUnion,
			Members:    []adl.Member{field("nothing", adl.Prim(adl.Void)), field("just", adl.Param("T"))},
		},
		{
			Module: "sys.types",
			Name:   "Blob",
			Shape:  adl.ShapeRecord,
			Members: []adl.Member{
				field("data", adl.Prim(adl.Bytes)),
				field("label", adl.Prim(adl.Nullable, adl.Prim(adl.String))),
				field("sizes", adl.Prim(adl.StringMap, adl.Prim(adl.Word8))),
				field("items", adl.Prim(adl.Vector, adl.Ref("sys.types", "Maybe", adl.Prim(adl.Int16)))),
			},
		},
	}}
}

func TestCodec_RecordRoundTrip(t *testing.T) {
	c := codecFor(t, loadTest14(t))
	te := adl.Ref("test14", "Switch")
	data := `{"double":1.5,"int":3,"string":"s","for":true,"Objects":"o"}`

	v, err := c.Decode(te, []byte(data))
	require.NoError(t, err)
	assert.Equal(t, Record{
		"double":  1.5,
		"int":     int64(3),
		"string":  "s",
		"r#for":   true,
		"objects": "o",
	}, v)

	out, err := c.Encode(te, v)
	require.NoError(t, err)
	assert.Equal(t, data, string(out))
}

func TestCodec_RejectsTargetNamesOnTheWire(t *testing.T) {
	c := codecFor(t, loadTest14(t))

	tests := []struct {
		name string
		te   adl.TypeExpr
		data string
	}{
		{"renamed field", adl.Ref("test14", "Switch"), `{"double":1.5,"int":3,"string":"s","for":true,"objects":"o"}`},
		{"escaped field", adl.Ref("test14", "Switch"), `{"double":1.5,"int":3,"string":"s","r#for":true,"Objects":"o"}`},
		{"variant", adl.Ref("test14", "Unsigned"), `"Null"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decode(tt.te, []byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestCodec_UnionAndWrapper(t *testing.T) {
	c := codecFor(t, loadTest14(t))

	v, err := c.Decode(adl.Ref("test14", "Unsigned"), []byte(`"null"`))
	require.NoError(t, err)
	assert.Equal(t, Variant{Name: "Null"}, v)
	out, err := c.Encode(adl.Ref("test14", "Unsigned"), v)
	require.NoError(t, err)
	assert.Equal(t, `"null"`, string(out))

	v, err = c.Decode(adl.Ref("test14", "Factory"), []byte(`"acme"`))
	require.NoError(t, err)
	assert.Equal(t, Wrapper{Value: "acme"}, v)
	out, err = c.Encode(adl.Ref("test14", "Factory"), v)
	require.NoError(t, err)
	assert.Equal(t, `"acme"`, string(out))
}

func TestCodec_TypeParams(t *testing.T) {
	c := codecFor(t, genericModule())

	pair := adl.Ref("sys.types", "Pair", adl.Prim(adl.String), adl.Prim(adl.Int32))
	out, err := c.Encode(pair, Record{"v1": "a", "v2": int64(2)})
	require.NoError(t, err)
	assert.Equal(t, `{"v1":"a","v2":2}`, string(out))

	maybe := adl.Ref("sys.types", "Maybe", adl.Prim(adl.Int32))
	out, err = c.Encode(maybe, Variant{Name: "Just", Value: 1})
	require.NoError(t, err)
	assert.Equal(t, `{"just":1}`, string(out))

	v, err := c.Decode(maybe, []byte(`"nothing"`))
	require.NoError(t, err)
	assert.Equal(t, Variant{Name: "Nothing"}, v)

	_, err = c.Decode(maybe, []byte(`"just"`))
	assert.Error(t, err, "a payload variant is not a pure tag")

	_, err = c.Encode(adl.Ref("sys.types", "Pair", adl.Prim(adl.String)), Record{"v1": "a", "v2": "b"})
	assert.Error(t, err)
}

func TestCodec_Primitives(t *testing.T) {
	c := codecFor(t, genericModule())
	blob := adl.Ref("sys.types", "Blob")

	v, err := c.Decode(blob, []byte(`{"data":"AQID","sizes":{"b":2,"a":1},"items":["nothing",{"just":-5}]}`))
	require.NoError(t, err)
	assert.Equal(t, Record{
		"data":  []byte{1, 2, 3},
		"label": nil,
		"sizes": map[string]any{"a": uint64(1), "b": uint64(2)},
		"items": []any{Variant{Name: "Nothing"}, Variant{Name: "Just", Value: int64(-5)}},
	}, v)

	out, err := c.Encode(blob, v)
	require.NoError(t, err)
	assert.Equal(t, `{"data":"AQID","label":null,"sizes":{"a":1,"b":2},"items":["nothing",{"just":-5}]}`, string(out))
}

func TestCodec_Errors(t *testing.T) {
	c := codecFor(t, loadTest14(t), genericModule())

	t.Run("decode", func(t *testing.T) {
		tests := []struct {
			name string
			te   adl.TypeExpr
			data string
		}{
			{"int32 overflow", adl.Prim(adl.Int32), `2147483648`},
			{"negative word", adl.Prim(adl.Word8), `-1`},
			{"word8 overflow", adl.Prim(adl.Word8), `256`},
			{"fractional int", adl.Prim(adl.Int64), `1.5`},
			{"missing field", adl.Ref("test14", "Switch"), `{"double":1.5}`},
			{"two tags", adl.Ref("sys.types", "Maybe", adl.Prim(adl.Int32)), `{"just":1,"nothing":null}`},
			{"unknown declaration", adl.Ref("test14", "Nope"), `{}`},
			{"invalid json", adl.Prim(adl.String), `{`},
			{"bad base64", adl.Prim(adl.Bytes), `"!!"`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := c.Decode(tt.te, []byte(tt.data))
				assert.Error(t, err)
			})
		}
	})

	t.Run("encode", func(t *testing.T) {
		tests := []struct {
			name string
			te   adl.TypeExpr
			v    any
		}{
			{"int8 overflow", adl.Prim(adl.Int8), 128},
			{"wrong scalar", adl.Prim(adl.String), 1},
			{"unknown field", adl.Ref("test14", "Switch"), Record{"for": true}},
			{"unknown variant", adl.Ref("test14", "Unsigned"), Variant{Name: "null"}},
			{"record expected", adl.Ref("test14", "Switch"), Variant{Name: "Null"}},
			{"unbound param", adl.Param("T"), "x"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := c.Encode(tt.te, tt.v)
				assert.Error(t, err)
			})
		}
	})
}

func TestCodec_EncodedValuesMatchWireSchema(t *testing.T) {
	mod := loadTest14(t)
	c := codecFor(t, mod)

	root, err := wireschema.Build(context.Background(), mod, translate.Options{})
	require.NoError(t, err)
	root.Ref = "#/$defs/" + wireschema.DefName("test14", "Switch")
	schema, err := root.Resolve(nil)
	require.NoError(t, err)

	out, err := c.Encode(adl.Ref("test14", "Switch"), Record{
		"double":  2.0,
		"int":     int64(-7),
		"string":  "x",
		"r#for":   false,
		"objects": "y",
	})
	require.NoError(t, err)

	var instance any
	require.NoError(t, json.Unmarshal(out, &instance))
	assert.NoError(t, schema.Validate(instance))
}

func TestCodec_FieldDefaults(t *testing.T) {
	fsys := fstest.MapFS{"test.json": &fstest.MapFile{Data: []byte(`{"name":"test","decls":{"S":{"name":"S","type_":{"kind":"struct_","value":{"typeParams":[],"fields":[` +
		`{"name":"a","serializedName":"a","default":{"kind":"nothing"},"typeExpr":{"typeRef":{"kind":"primitive","value":"String"},"parameters":[]}},` +
		`{"name":"b","serializedName":"b","default":{"kind":"just","value":"abcde"},"typeExpr":{"typeRef":{"kind":"primitive","value":"String"},"parameters":[]}},` +
		`{"name":"n","serializedName":"n","default":{"kind":"just","value":7},"typeExpr":{"typeRef":{"kind":"primitive","value":"Int32"},"parameters":[]}},` +
		`{"name":"m","serializedName":"m","default":{"kind":"just","value":"x"},"typeExpr":{"typeRef":{"kind":"primitive","value":"Nullable"},"parameters":[{"typeRef":{"kind":"primitive","value":"String"},"parameters":[]}]}}` +
		`]}}}}}`)}}
	mod, err := adl.NewLoader(fsys).LoadFile("test.json")
	require.NoError(t, err)
	c := codecFor(t, mod)
	te := adl.Ref("test", "S")

	t.Run("missing defaulted fields decode to their defaults", func(t *testing.T) {
		v, err := c.Decode(te, []byte(`{"a":"x"}`))
		require.NoError(t, err)
		assert.Equal(t, Record{"a": "x", "b": "abcde", "n": int64(7), "m": "x"}, v)
	})

	t.Run("present fields win over defaults", func(t *testing.T) {
		v, err := c.Decode(te, []byte(`{"a":"x","b":"y","n":1,"m":null}`))
		require.NoError(t, err)
		assert.Equal(t, Record{"a": "x", "b": "y", "n": int64(1), "m": nil}, v)
	})

	t.Run("fields without default stay required", func(t *testing.T) {
		_, err := c.Decode(te, []byte(`{"b":"y"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `missing field "a"`)
	})

	t.Run("encode fills defaults", func(t *testing.T) {
		data, err := c.Encode(te, Record{"a": "x"})
		require.NoError(t, err)
		assert.Equal(t, `{"a":"x","b":"abcde","n":7,"m":"x"}`, string(data))
	})
}

func TestCodec_CanonicalRoundTrip(t *testing.T) {
	mod := &adl.Module{Name: "m", Types: []adl.SchemaType{{
		Module: "m",
		Name:   "Nums",
		Shape:  adl.ShapeRecord,
		Members: []adl.Member{
			field("i", adl.Prim(adl.Int32)),
			field("w", adl.Prim(adl.Word16)),
			field("f", adl.Prim(adl.Float)),
		},
	}}}
	c := codecFor(t, mod)
	te := adl.Ref("m", "Nums")

	canonical := Record{"i": int64(3), "w": uint64(4), "f": float64(1.5)}
	data, err := c.Encode(te, canonical)
	require.NoError(t, err)
	back, err := c.Decode(te, data)
	require.NoError(t, err)
	assert.True(t, reflect.DeepEqual(canonical, back))

	// Other Go numeric types are accepted and come back canonical.
	data, err = c.Encode(te, Record{"i": int(3), "w": uint8(4), "f": float32(1.5)})
	require.NoError(t, err)
	back, err = c.Decode(te, data)
	require.NoError(t, err)
	assert.Equal(t, canonical, back)
}
