// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package adl

import (
	"fmt"
	"sort"
)

// rawModule mirrors the sys.adlast Module interchange form.
type rawModule struct {
	Name  string             `json:"name" yaml:"name"`
	Decls map[string]rawDecl `json:"decls" yaml:"decls"`
}

type rawDecl struct {
	Name string      `json:"name" yaml:"name"`
	Type rawDeclType `json:"type_" yaml:"type_"`
}

type rawDeclType struct {
	Kind  string       `json:"kind" yaml:"kind"`
	Value rawDeclValue `json:"value" yaml:"value"`
}

// rawDeclValue covers struct_, union_, newtype_ and type_ payloads.
type rawDeclValue struct {
	TypeParams []string     `json:"typeParams" yaml:"typeParams"`
	Fields     []rawField   `json:"fields" yaml:"fields"`
	TypeExpr   *rawTypeExpr `json:"typeExpr" yaml:"typeExpr"`
}

type rawField struct {
	Name           string      `json:"name" yaml:"name"`
	SerializedName string      `json:"serializedName" yaml:"serializedName"`
	TypeExpr       rawTypeExpr `json:"typeExpr" yaml:"typeExpr"`
	Default        *rawMaybe   `json:"default" yaml:"default"`
}

// rawMaybe is the sys.types Maybe carrying a field default:
// {"kind":"just","value":...} or {"kind":"nothing"}.
type rawMaybe struct {
	Kind  string `json:"kind" yaml:"kind"`
	Value any    `json:"value" yaml:"value"`
}

func (m *rawMaybe) toDefault() (*Default, error) {
	if m == nil {
		return nil, nil
	}
	switch m.Kind {
	case "nothing":
		return nil, nil
	case "just":
		return &Default{Value: m.Value}, nil
	default:
		return nil, fmt.Errorf("unknown default kind %q", m.Kind)
	}
}

type rawTypeExpr struct {
	TypeRef    rawTypeRef    `json:"typeRef" yaml:"typeRef"`
	Parameters []rawTypeExpr `json:"parameters" yaml:"parameters"`
}

type rawTypeRef struct {
	Kind  string `json:"kind" yaml:"kind"`
	Value any    `json:"value" yaml:"value"`
}

// wrapperMember is the name given to the single positional member of a
// newtype. It never reaches the wire.
const wrapperMember = "value"

// toModule converts the raw AST into the schema model. order lists the decl
// names in document order; decls missing from it are appended sorted.
func (rm *rawModule) toModule(order []string) (*Module, error) {
	if rm.Name == "" {
		return nil, fmt.Errorf("module name is required")
	}

	names := make([]string, 0, len(rm.Decls))
	seen := make(map[string]bool, len(rm.Decls))
	for _, name := range order {
		if _, ok := rm.Decls[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range rm.Decls {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	names = append(names, rest...)

	mod := &Module{Name: rm.Name}
	for _, key := range names {
		rd := rm.Decls[key]
		name := rd.Name
		if name == "" {
			name = key
		}
		t, err := rd.toSchemaType(rm.Name, name)
		if err != nil {
			return nil, fmt.Errorf("decl %q: %w", key, err)
		}
		mod.Types = append(mod.Types, t)
	}
	return mod, nil
}

func (rd *rawDecl) toSchemaType(module, name string) (SchemaType, error) {
	t := SchemaType{
		Module:     module,
		Name:       name,
		TypeParams: rd.Type.Value.TypeParams,
	}

	switch rd.Type.Kind {
	case "struct_", "union_":
		t.Shape = ShapeRecord
		if rd.Type.Kind == "union_" {
			t.Shape = ShapeUnion
		}
		wireNames := make(map[string]bool, len(rd.Type.Value.Fields))
		for i, f := range rd.Type.Value.Fields {
			te, err := f.TypeExpr.toTypeExpr()
			if err != nil {
				return t, fmt.Errorf("field %q: %w", f.Name, err)
			}
			wire := f.SerializedName
			if wire == "" {
				wire = f.Name
			}
			if wireNames[wire] {
				return t, fmt.Errorf("duplicate serialized name %q", wire)
			}
			wireNames[wire] = true
			def, err := f.Default.toDefault()
			if err != nil {
				return t, fmt.Errorf("field %q: %w", f.Name, err)
			}
			t.Members = append(t.Members, Member{
				Name:     f.Name,
				WireName: wire,
				Type:     te,
				Position: i,
				Default:  def,
			})
		}
	case "newtype_", "type_":
		t.Shape = ShapeWrapper
		if rd.Type.Kind == "type_" {
			t.Shape = ShapeAlias
		}
		if rd.Type.Value.TypeExpr == nil {
			return t, fmt.Errorf("%s without typeExpr", rd.Type.Kind)
		}
		te, err := rd.Type.Value.TypeExpr.toTypeExpr()
		if err != nil {
			return t, err
		}
		t.Members = []Member{{Name: wrapperMember, WireName: wrapperMember, Type: te}}
	default:
		// Passed through; the backend reports it as an unsupported shape.
		t.Shape = Shape(rd.Type.Kind)
	}
	return t, nil
}

func (re *rawTypeExpr) toTypeExpr() (TypeExpr, error) {
	var te TypeExpr
	switch re.TypeRef.Kind {
	case "primitive":
		s, ok := re.TypeRef.Value.(string)
		if !ok || s == "" {
			return te, fmt.Errorf("primitive typeRef requires a name")
		}
		te.Ref = TypeRef{Kind: RefPrimitive, Primitive: s}
	case "typeParam":
		s, ok := re.TypeRef.Value.(string)
		if !ok || s == "" {
			return te, fmt.Errorf("typeParam typeRef requires a name")
		}
		te.Ref = TypeRef{Kind: RefTypeParam, Param: s}
	case "reference":
		m, ok := re.TypeRef.Value.(map[string]any)
		if !ok {
			return te, fmt.Errorf("reference typeRef requires a scoped name")
		}
		module, _ := m["moduleName"].(string)
		name, _ := m["name"].(string)
		if name == "" {
			return te, fmt.Errorf("reference typeRef requires a name")
		}
		te.Ref = TypeRef{Kind: RefReference, Ref: ScopedName{Module: module, Name: name}}
	default:
		return te, fmt.Errorf("unknown typeRef kind %q", re.TypeRef.Kind)
	}

	for i := range re.Parameters {
		p, err := re.Parameters[i].toTypeExpr()
		if err != nil {
			return te, err
		}
		te.Params = append(te.Params, p)
	}
	return te, nil
}
