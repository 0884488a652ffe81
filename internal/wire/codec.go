// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package wire encodes and decodes values of emitted declarations in the
// JSON wire format. Values are addressed by target identifiers; the wire
// only ever carries the schema's wire names.
package wire

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"sort"
	"strconv"

	"github.com/dacolabs/adlc/internal/adl"
	"github.com/dacolabs/adlc/internal/translate"
	"github.com/goccy/go-json"
)

// Record is a record value keyed by target field identifiers.
//
// Encode accepts any Go integer type for Int and Word fields and float32 or
// float64 for Float and Double. Decode returns the canonical forms: int64
// for Int, uint64 for Word, float64 for Float and Double, []byte for Bytes,
// []any for Vector and map[string]any for StringMap. A value built from the
// canonical forms survives a round trip unchanged.
type Record map[string]any

// Variant is a union value. Name is the target variant identifier; Value
// is nil for pure tags.
type Variant struct {
	Name  string
	Value any
}

// Wrapper is the value of a single member wrapper.
type Wrapper struct {
	Value any
}

// Codec converts values of a set of declarations to and from JSON.
type Codec struct {
	decls map[adl.ScopedName]*translate.Declaration
}

// NewCodec returns a codec over the given declarations.
func NewCodec(decls ...translate.Declaration) *Codec {
	c := &Codec{decls: make(map[adl.ScopedName]*translate.Declaration, len(decls))}
	for i := range decls {
		d := &decls[i]
		c.decls[adl.ScopedName{Module: d.Module, Name: d.WireName}] = d
	}
	return c
}

// Encode writes v, a value of type te, as JSON. Record keys follow member
// order.
func (c *Codec) Encode(te adl.TypeExpr, v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.encode(&buf, te, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a value of type te from JSON. Only wire names are accepted.
func (c *Codec) Decode(te adl.TypeExpr, data []byte) (any, error) {
	raw, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return c.decode(te, raw)
}

func parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Codec) lookup(ref adl.ScopedName) (*translate.Declaration, error) {
	d, ok := c.decls[ref]
	if !ok {
		return nil, fmt.Errorf("unknown declaration %s", ref)
	}
	return d, nil
}

// bind substitutes the parameters of a reference into the member types of
// its declaration.
func bind(d *translate.Declaration, params []adl.TypeExpr) (map[string]adl.TypeExpr, error) {
	if len(params) != len(d.Schema.TypeParams) {
		return nil, fmt.Errorf("%s expects %d type parameters, got %d",
			d.Schema.ScopedName(), len(d.Schema.TypeParams), len(params))
	}
	env := make(map[string]adl.TypeExpr, len(params))
	for i, p := range d.Schema.TypeParams {
		env[p] = params[i]
	}
	return env, nil
}

func subst(te adl.TypeExpr, env map[string]adl.TypeExpr) adl.TypeExpr {
	if te.Ref.Kind == adl.RefTypeParam {
		if bound, ok := env[te.Ref.Param]; ok {
			return bound
		}
		return te
	}
	if len(te.Params) == 0 {
		return te
	}
	out := adl.TypeExpr{Ref: te.Ref, Params: make([]adl.TypeExpr, len(te.Params))}
	for i, p := range te.Params {
		out.Params[i] = subst(p, env)
	}
	return out
}

func isNullable(te adl.TypeExpr) bool {
	return te.Ref.Kind == adl.RefPrimitive && te.Ref.Primitive == adl.Nullable
}

func (c *Codec) encode(buf *bytes.Buffer, te adl.TypeExpr, v any) error {
	switch te.Ref.Kind {
	case adl.RefPrimitive:
		return c.encodePrimitive(buf, te, v)
	case adl.RefReference:
	default:
		return fmt.Errorf("unbound type %s", te)
	}

	d, err := c.lookup(te.Ref.Ref)
	if err != nil {
		return err
	}
	env, err := bind(d, te.Params)
	if err != nil {
		return err
	}

	switch d.Representation {
	case translate.RepRecord:
		r, ok := v.(Record)
		if !ok {
			return fmt.Errorf("%s: expected Record, got %T", te, v)
		}
		known := make(map[string]bool, len(d.Members))
		for _, m := range d.Members {
			known[m.Ident.Target] = true
		}
		for k := range r {
			if !known[k] {
				return fmt.Errorf("%s: unknown field %q", te, k)
			}
		}
		buf.WriteByte('{')
		for i, m := range d.Members {
			mt := subst(m.Type, env)
			val, ok := r[m.Ident.Target]
			if !ok && m.Default == "" && !isNullable(mt) {
				return fmt.Errorf("%s: missing field %q", te, m.Ident.Target)
			}
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, m.WireName)
			buf.WriteByte(':')
			if !ok && m.Default != "" {
				buf.WriteString(m.Default)
				continue
			}
			if err := c.encode(buf, mt, val); err != nil {
				return fmt.Errorf("%s.%s: %w", te, m.Ident.Target, err)
			}
		}
		buf.WriteByte('}')
		return nil

	case translate.RepUnion:
		u, ok := v.(Variant)
		if !ok {
			return fmt.Errorf("%s: expected Variant, got %T", te, v)
		}
		for _, m := range d.Members {
			if m.Ident.Target != u.Name {
				continue
			}
			if !m.Payload {
				writeString(buf, m.WireName)
				return nil
			}
			buf.WriteByte('{')
			writeString(buf, m.WireName)
			buf.WriteByte(':')
			if err := c.encode(buf, subst(m.Type, env), u.Value); err != nil {
				return fmt.Errorf("%s.%s: %w", te, u.Name, err)
			}
			buf.WriteByte('}')
			return nil
		}
		return fmt.Errorf("%s: unknown variant %q", te, u.Name)

	case translate.RepWrapper:
		w, ok := v.(Wrapper)
		if !ok {
			return fmt.Errorf("%s: expected Wrapper, got %T", te, v)
		}
		return c.encode(buf, subst(d.Members[0].Type, env), w.Value)

	default:
		return fmt.Errorf("%s: unsupported representation %s", te, d.Representation)
	}
}

func (c *Codec) encodePrimitive(buf *bytes.Buffer, te adl.TypeExpr, v any) error {
	name := te.Ref.Primitive
	switch name {
	case adl.Void:
		if v != nil {
			return fmt.Errorf("%s: expected nil, got %T", te, v)
		}
		buf.WriteString("null")
		return nil
	case adl.Bool, adl.String, adl.Float, adl.Double, adl.JSON:
		if err := checkScalar(name, v); err != nil {
			return err
		}
		return writeJSON(buf, v)
	case adl.Int8, adl.Int16, adl.Int32, adl.Int64:
		n, ok := toInt64(v)
		if !ok {
			return fmt.Errorf("%s: expected integer, got %T", te, v)
		}
		if err := checkInt(name, n); err != nil {
			return err
		}
		buf.WriteString(strconv.FormatInt(n, 10))
		return nil
	case adl.Word8, adl.Word16, adl.Word32, adl.Word64:
		n, ok := toUint64(v)
		if !ok {
			return fmt.Errorf("%s: expected unsigned integer, got %T", te, v)
		}
		if err := checkWord(name, n); err != nil {
			return err
		}
		buf.WriteString(strconv.FormatUint(n, 10))
		return nil
	case adl.Bytes:
		b, ok := v.([]byte)
		if !ok {
			return fmt.Errorf("%s: expected []byte, got %T", te, v)
		}
		writeString(buf, base64.StdEncoding.EncodeToString(b))
		return nil
	}

	if len(te.Params) != 1 {
		return fmt.Errorf("unsupported primitive %s", te)
	}
	inner := te.Params[0]
	switch name {
	case adl.Vector:
		items, ok := v.([]any)
		if !ok {
			return fmt.Errorf("%s: expected []any, got %T", te, v)
		}
		buf.WriteByte('[')
		for i, item := range items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := c.encode(buf, inner, item); err != nil {
				return fmt.Errorf("%s[%d]: %w", te, i, err)
			}
		}
		buf.WriteByte(']')
		return nil
	case adl.StringMap:
		m, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected map[string]any, got %T", te, v)
		}
		buf.WriteByte('{')
		for i, k := range sortedKeys(m) {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, k)
			buf.WriteByte(':')
			if err := c.encode(buf, inner, m[k]); err != nil {
				return fmt.Errorf("%s[%q]: %w", te, k, err)
			}
		}
		buf.WriteByte('}')
		return nil
	case adl.Nullable:
		if v == nil {
			buf.WriteString("null")
			return nil
		}
		return c.encode(buf, inner, v)
	default:
		return fmt.Errorf("unsupported primitive %s", te)
	}
}

func (c *Codec) decode(te adl.TypeExpr, raw any) (any, error) {
	switch te.Ref.Kind {
	case adl.RefPrimitive:
		return c.decodePrimitive(te, raw)
	case adl.RefReference:
	default:
		return nil, fmt.Errorf("unbound type %s", te)
	}

	d, err := c.lookup(te.Ref.Ref)
	if err != nil {
		return nil, err
	}
	env, err := bind(d, te.Params)
	if err != nil {
		return nil, err
	}

	switch d.Representation {
	case translate.RepRecord:
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: expected object", te)
		}
		wire := make(map[string]bool, len(d.Members))
		for _, m := range d.Members {
			wire[m.WireName] = true
		}
		for _, k := range sortedKeys(obj) {
			if !wire[k] {
				return nil, fmt.Errorf("%s: unknown field %q", te, k)
			}
		}
		r := make(Record, len(d.Members))
		for _, m := range d.Members {
			mt := subst(m.Type, env)
			val, ok := obj[m.WireName]
			if !ok && m.Default != "" {
				def, err := parse([]byte(m.Default))
				if err != nil {
					return nil, fmt.Errorf("%s.%s: invalid default: %w", te, m.WireName, err)
				}
				ok, val = true, def
			}
			if !ok {
				if !isNullable(mt) {
					return nil, fmt.Errorf("%s: missing field %q", te, m.WireName)
				}
				r[m.Ident.Target] = nil
				continue
			}
			out, err := c.decode(mt, val)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", te, m.WireName, err)
			}
			r[m.Ident.Target] = out
		}
		return r, nil

	case translate.RepUnion:
		switch u := raw.(type) {
		case string:
			for _, m := range d.Members {
				if m.WireName == u && !m.Payload {
					return Variant{Name: m.Ident.Target}, nil
				}
			}
			return nil, fmt.Errorf("%s: unknown tag %q", te, u)
		case map[string]any:
			if len(u) != 1 {
				return nil, fmt.Errorf("%s: expected a single tag, got %d", te, len(u))
			}
			for _, m := range d.Members {
				val, ok := u[m.WireName]
				if !ok || !m.Payload {
					continue
				}
				out, err := c.decode(subst(m.Type, env), val)
				if err != nil {
					return nil, fmt.Errorf("%s.%s: %w", te, m.WireName, err)
				}
				return Variant{Name: m.Ident.Target, Value: out}, nil
			}
			return nil, fmt.Errorf("%s: unknown tag %q", te, sortedKeys(u)[0])
		default:
			return nil, fmt.Errorf("%s: expected tag string or object", te)
		}

	case translate.RepWrapper:
		out, err := c.decode(subst(d.Members[0].Type, env), raw)
		if err != nil {
			return nil, err
		}
		return Wrapper{Value: out}, nil

	default:
		return nil, fmt.Errorf("%s: unsupported representation %s", te, d.Representation)
	}
}

func (c *Codec) decodePrimitive(te adl.TypeExpr, raw any) (any, error) {
	name := te.Ref.Primitive
	switch name {
	case adl.Void:
		if raw != nil {
			return nil, fmt.Errorf("%s: expected null", te)
		}
		return nil, nil
	case adl.Bool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("%s: expected boolean", te)
		}
		return b, nil
	case adl.String:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%s: expected string", te)
		}
		return s, nil
	case adl.Int8, adl.Int16, adl.Int32, adl.Int64:
		num, ok := raw.(json.Number)
		if !ok {
			return nil, fmt.Errorf("%s: expected number", te)
		}
		n, err := strconv.ParseInt(num.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", te, err)
		}
		if err := checkInt(name, n); err != nil {
			return nil, err
		}
		return n, nil
	case adl.Word8, adl.Word16, adl.Word32, adl.Word64:
		num, ok := raw.(json.Number)
		if !ok {
			return nil, fmt.Errorf("%s: expected number", te)
		}
		n, err := strconv.ParseUint(num.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", te, err)
		}
		if err := checkWord(name, n); err != nil {
			return nil, err
		}
		return n, nil
	case adl.Float, adl.Double:
		num, ok := raw.(json.Number)
		if !ok {
			return nil, fmt.Errorf("%s: expected number", te)
		}
		return num.Float64()
	case adl.Bytes:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%s: expected base64 string", te)
		}
		return base64.StdEncoding.DecodeString(s)
	case adl.JSON:
		return raw, nil
	}

	if len(te.Params) != 1 {
		return nil, fmt.Errorf("unsupported primitive %s", te)
	}
	inner := te.Params[0]
	switch name {
	case adl.Vector:
		items, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%s: expected array", te)
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := c.decode(inner, item)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", te, i, err)
			}
			out[i] = v
		}
		return out, nil
	case adl.StringMap:
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: expected object", te)
		}
		out := make(map[string]any, len(obj))
		for _, k := range sortedKeys(obj) {
			v, err := c.decode(inner, obj[k])
			if err != nil {
				return nil, fmt.Errorf("%s[%q]: %w", te, k, err)
			}
			out[k] = v
		}
		return out, nil
	case adl.Nullable:
		if raw == nil {
			return nil, nil
		}
		return c.decode(inner, raw)
	default:
		return nil, fmt.Errorf("unsupported primitive %s", te)
	}
}

func checkScalar(name string, v any) error {
	var ok bool
	switch name {
	case adl.Bool:
		_, ok = v.(bool)
	case adl.String:
		_, ok = v.(string)
	case adl.Float, adl.Double:
		switch v.(type) {
		case float32, float64:
			ok = true
		}
	case adl.JSON:
		ok = true
	}
	if !ok {
		return fmt.Errorf("%s: unexpected value of type %T", name, v)
	}
	return nil
}

var intBits = map[string]int{
	adl.Int8: 8, adl.Int16: 16, adl.Int32: 32, adl.Int64: 64,
	adl.Word8: 8, adl.Word16: 16, adl.Word32: 32, adl.Word64: 64,
}

func checkInt(name string, n int64) error {
	bits := intBits[name]
	if bits < 64 {
		limit := int64(1) << (bits - 1)
		if n < -limit || n >= limit {
			return fmt.Errorf("%s: %d out of range", name, n)
		}
	}
	return nil
}

func checkWord(name string, n uint64) error {
	bits := intBits[name]
	if bits < 64 && n >= uint64(1)<<bits {
		return fmt.Errorf("%s: %d out of range", name, n)
	}
	return nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func toUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case int:
		return uint64(n), n >= 0
	default:
		return 0, false
	}
}

func writeString(buf *bytes.Buffer, s string) {
	// Marshalling a string cannot fail.
	b, _ := json.Marshal(s)
	buf.Write(b)
}

func writeJSON(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
