// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package adl provides the ADL schema model consumed by the binding compiler,
// and loading of ADL AST modules from their JSON and YAML interchange form.
package adl

import (
	"strings"

	"github.com/goccy/go-json"
)

// Shape is the declared shape of a schema type.
type Shape string

const (
	// ShapeRecord is a product type with named members (ADL struct).
	ShapeRecord Shape = "record"
	// ShapeUnion is a tagged sum type (ADL union).
	ShapeUnion Shape = "union"
	// ShapeWrapper is a single member transparent alias (ADL newtype).
	ShapeWrapper Shape = "wrapper"
	// ShapeAlias is a plain type alias (ADL type). The binding backend has
	// no representation for it.
	ShapeAlias Shape = "alias"
)

// Module is a parsed ADL module.
type Module struct {
	Name  string
	Types []SchemaType // declaration order
}

// Type returns the schema type with the given name, or nil.
func (m *Module) Type(name string) *SchemaType {
	for i := range m.Types {
		if m.Types[i].Name == name {
			return &m.Types[i]
		}
	}
	return nil
}

// SchemaType is a named type definition from the schema.
type SchemaType struct {
	Module     string
	Name       string
	TypeParams []string
	Shape      Shape
	Members    []Member // fields or union alternatives, in declaration order
}

// ScopedName returns the module qualified name of the type.
func (t *SchemaType) ScopedName() ScopedName {
	return ScopedName{Module: t.Module, Name: t.Name}
}

// Member is a field of a record, an alternative of a union, or the single
// value of a wrapper.
type Member struct {
	Name     string   // ADL identifier
	WireName string   // serialized name, authoritative on the wire
	Type     TypeExpr // declared value type
	Position int      // index in declaration order
	Default  *Default // declared default, nil when the member has none
}

// Default is the declared default of a record field, held as its wire
// form JSON value. A field with a default may be left out on the wire.
type Default struct {
	Value any
}

// JSON returns the default as JSON text. Object keys are sorted.
func (d *Default) JSON() (string, error) {
	b, err := json.Marshal(d.Value)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ScopedName is a module qualified declaration name.
type ScopedName struct {
	Module string `json:"moduleName" yaml:"moduleName"`
	Name   string `json:"name" yaml:"name"`
}

func (s ScopedName) String() string {
	if s.Module == "" {
		return s.Name
	}
	return s.Module + "." + s.Name
}

// RefKind says what a TypeRef points at.
type RefKind int

const (
	RefPrimitive RefKind = iota
	RefReference
	RefTypeParam
)

// TypeRef is the head of a type expression.
type TypeRef struct {
	Kind      RefKind
	Primitive string     // set for RefPrimitive
	Ref       ScopedName // set for RefReference
	Param     string     // set for RefTypeParam
}

// TypeExpr is a type expression: a head applied to zero or more parameters.
type TypeExpr struct {
	Ref    TypeRef
	Params []TypeExpr
}

// Primitive names understood by the compiler.
const (
	Void      = "Void"
	Bool      = "Bool"
	Int8      = "Int8"
	Int16     = "Int16"
	Int32     = "Int32"
	Int64     = "Int64"
	Word8     = "Word8"
	Word16    = "Word16"
	Word32    = "Word32"
	Word64    = "Word64"
	Float     = "Float"
	Double    = "Double"
	String    = "String"
	Bytes     = "Bytes"
	JSON      = "Json"
	Vector    = "Vector"
	StringMap = "StringMap"
	Nullable  = "Nullable"
)

// Prim returns a type expression for the named primitive.
func Prim(name string, params ...TypeExpr) TypeExpr {
	return TypeExpr{Ref: TypeRef{Kind: RefPrimitive, Primitive: name}, Params: params}
}

// Ref returns a type expression referencing a declaration.
func Ref(module, name string, params ...TypeExpr) TypeExpr {
	return TypeExpr{Ref: TypeRef{Kind: RefReference, Ref: ScopedName{Module: module, Name: name}}, Params: params}
}

// Param returns a type expression referencing a type parameter.
func Param(name string) TypeExpr {
	return TypeExpr{Ref: TypeRef{Kind: RefTypeParam, Param: name}}
}

// IsVoid reports whether the expression is the Void primitive.
func (t TypeExpr) IsVoid() bool {
	return t.Ref.Kind == RefPrimitive && t.Ref.Primitive == Void
}

func (t TypeExpr) String() string {
	var sb strings.Builder
	switch t.Ref.Kind {
	case RefPrimitive:
		sb.WriteString(t.Ref.Primitive)
	case RefReference:
		sb.WriteString(t.Ref.Ref.String())
	case RefTypeParam:
		sb.WriteString(t.Ref.Param)
	}
	if len(t.Params) > 0 {
		sb.WriteString("<")
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.String())
		}
		sb.WriteString(">")
	}
	return sb.String()
}
