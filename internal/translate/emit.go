// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"fmt"

	"github.com/dacolabs/adlc/internal/adl"
)

// Emit composes the declaration of a schema type. resolved holds one
// identifier per member in member order; mappings is the output of Record
// over the same members.
func Emit(
	t adl.SchemaType,
	rep Representation,
	name ResolvedIdentifier,
	resolved []ResolvedIdentifier,
	mappings []WireMapping,
	r TypeResolver,
) (Declaration, error) {
	if len(resolved) != len(t.Members) {
		return Declaration{}, fmt.Errorf("%s: %d resolved identifiers for %d members",
			t.ScopedName(), len(resolved), len(t.Members))
	}

	decl := Declaration{
		Module:         t.Module,
		WireName:       t.Name,
		Name:           name,
		Representation: rep,
		Mappings:       mappings,
		Schema:         t,
	}

	for _, p := range t.TypeParams {
		id, err := Resolve(p, RoleType, r.Rules())
		if err != nil {
			return Declaration{}, withType(err, t)
		}
		decl.TypeParams = append(decl.TypeParams, id.Target)
	}

	for i, m := range t.Members {
		dm := DeclMember{
			WireName: m.WireName,
			Ident:    resolved[i],
			Payload:  rep != RepUnion || !m.Type.IsVoid(),
			Type:     m.Type,
		}
		if dm.Payload {
			typ, err := TargetType(m.Type, r)
			if err != nil {
				return Declaration{}, fmt.Errorf("%s.%s: %w", t.ScopedName(), m.WireName, err)
			}
			dm.TargetType = typ
		}
		if wm, ok := decl.Mapping(resolved[i].Target); ok {
			dm.Mapping = &wm
		}
		if rep == RepRecord && m.Default != nil {
			def, err := m.Default.JSON()
			if err != nil {
				return Declaration{}, fmt.Errorf("%s.%s: invalid default: %w", t.ScopedName(), m.WireName, err)
			}
			dm.Default = def
		}
		decl.Members = append(decl.Members, dm)
	}

	switch rep {
	case RepRecord, RepWrapper:
		f := &Factory{Name: r.FactoryName(), Params: make([]Param, 0, len(decl.Members))}
		for _, dm := range decl.Members {
			f.Params = append(f.Params, Param{Name: dm.Ident.Target, Type: dm.TargetType})
		}
		decl.Factory = f
	case RepUnion:
	default:
		return Declaration{}, &UnsupportedShape{Type: t.ScopedName().String(), Shape: rep.String()}
	}

	return decl, nil
}

// TargetType renders a schema type expression in the target language.
func TargetType(te adl.TypeExpr, r TypeResolver) (string, error) {
	params := make([]string, 0, len(te.Params))
	for _, p := range te.Params {
		s, err := TargetType(p, r)
		if err != nil {
			return "", err
		}
		params = append(params, s)
	}

	switch te.Ref.Kind {
	case adl.RefPrimitive:
		s, ok := r.PrimitiveType(te.Ref.Primitive, params)
		if !ok {
			return "", fmt.Errorf("unsupported primitive %s", te)
		}
		return s, nil
	case adl.RefReference:
		id, err := Resolve(te.Ref.Ref.Name, RoleType, r.Rules())
		if err != nil {
			return "", err
		}
		return r.RefType(te.Ref.Ref, id.Target, params), nil
	case adl.RefTypeParam:
		id, err := Resolve(te.Ref.Param, RoleType, r.Rules())
		if err != nil {
			return "", err
		}
		return id.Target, nil
	default:
		return "", fmt.Errorf("unknown type reference in %s", te)
	}
}
