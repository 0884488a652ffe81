// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"fmt"
	"strings"

	"github.com/dacolabs/adlc/internal/adl"
)

// Representation is the native shape chosen for a schema type.
// The set is closed; every switch over it is exhaustive.
type Representation int

const (
	// RepRecord is a product type with named, public members.
	RepRecord Representation = iota + 1
	// RepUnion is a tagged sum type with one variant per alternative.
	RepUnion
	// RepWrapper is a single positional member product type.
	RepWrapper
)

func (r Representation) String() string {
	switch r {
	case RepRecord:
		return "record"
	case RepUnion:
		return "union"
	case RepWrapper:
		return "wrapper"
	default:
		return fmt.Sprintf("Representation(%d)", int(r))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Representation) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Representation) UnmarshalText(text []byte) error {
	for _, rep := range []Representation{RepRecord, RepUnion, RepWrapper} {
		if rep.String() == string(text) {
			*r = rep
			return nil
		}
	}
	return fmt.Errorf("unknown representation %q", text)
}

// Role selects the casing convention applied to an identifier.
type Role int

const (
	RoleType Role = iota
	RoleField
	RoleVariant
)

func (r Role) String() string {
	switch r {
	case RoleType:
		return "type"
	case RoleField:
		return "field"
	case RoleVariant:
		return "variant"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// ResolvedIdentifier is the target form of a schema identifier.
type ResolvedIdentifier struct {
	// Candidate is the cased identifier before any reserved word escaping.
	Candidate string `json:"candidate"`
	// Target is the identifier as written in generated code.
	Target string `json:"target"`
	// Escaped is set when Candidate collided with a reserved word.
	Escaped bool `json:"escaped,omitempty"`
	// WireOverride is set when Target differs from the wire name.
	WireOverride bool `json:"wireOverride,omitempty"`
}

func (id ResolvedIdentifier) String() string {
	return id.Target
}

// WireMapping ties a target identifier to the wire name it must be
// serialized as.
type WireMapping struct {
	Target string `json:"target"`
	Wire   string `json:"wire"`
}

// Declaration is the emitted form of one schema type.
type Declaration struct {
	Module         string             `json:"module"`
	WireName       string             `json:"wireName"`
	Name           ResolvedIdentifier `json:"name"`
	Representation Representation     `json:"representation"`
	TypeParams     []string           `json:"typeParams,omitempty"`
	Members        []DeclMember       `json:"members"`
	Mappings       []WireMapping      `json:"mappings,omitempty"`
	Factory        *Factory           `json:"factory,omitempty"`

	// Schema is the type the declaration was emitted from.
	Schema adl.SchemaType `json:"-"`
}

// Header returns the type name with its type parameters, e.g. "Pair<T1, T2>".
func (d *Declaration) Header() string {
	if len(d.TypeParams) == 0 {
		return d.Name.Target
	}
	return d.Name.Target + "<" + strings.Join(d.TypeParams, ", ") + ">"
}

// Mapping returns the wire mapping recorded for a target identifier.
func (d *Declaration) Mapping(target string) (WireMapping, bool) {
	for _, m := range d.Mappings {
		if m.Target == target {
			return m, true
		}
	}
	return WireMapping{}, false
}

// DeclMember is an emitted field, variant or positional wrapper value.
type DeclMember struct {
	WireName   string             `json:"wireName"`
	Ident      ResolvedIdentifier `json:"ident"`
	TargetType string             `json:"targetType,omitempty"` // empty for pure tags
	Payload    bool               `json:"payload"`
	Mapping    *WireMapping       `json:"mapping,omitempty"`
	// Default is the JSON text of a record field's declared default. A
	// field with a default may be absent on the wire.
	Default string `json:"default,omitempty"`

	Type adl.TypeExpr `json:"-"`
}

// Factory is a positional constructor. Params follow member order.
type Factory struct {
	Name   string  `json:"name"`
	Params []Param `json:"params"`
}

// Param is one factory parameter, assigned to the member of the same index.
type Param struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Result holds the declarations compiled from one module.
type Result struct {
	Module string        `json:"module"`
	Decls  []Declaration `json:"decls"` // declaration order, failed types omitted
}
