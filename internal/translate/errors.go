// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"fmt"
	"strings"
)

// UnresolvableIdentifier reports a schema name that cannot be written as a
// target identifier, even escaped.
type UnresolvableIdentifier struct {
	Type   string // parent schema type, empty for module level names
	Name   string
	Reason string
}

func (e *UnresolvableIdentifier) Error() string {
	var b strings.Builder
	b.WriteString("unresolvable identifier ")
	fmt.Fprintf(&b, "%q", e.Name)
	if e.Type != "" {
		b.WriteString(" in ")
		b.WriteString(e.Type)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

// NameCollision reports two distinct schema names in one sibling scope that
// resolve to the same target identifier.
type NameCollision struct {
	Type   string // parent schema type, or module for type names
	Scope  string // "field", "variant", "type" or "type parameter"
	First  string
	Second string
	Target string
}

func (e *NameCollision) Error() string {
	return fmt.Sprintf("name collision in %s: %s names %q and %q both resolve to %q",
		e.Type, e.Scope, e.First, e.Second, e.Target)
}

// UnsupportedShape reports a schema type whose shape has no representation.
// It indicates a front-end contract violation, never a data error.
type UnsupportedShape struct {
	Type   string
	Shape  string
	Reason string
}

func (e *UnsupportedShape) Error() string {
	msg := fmt.Sprintf("unsupported shape %q for %s", e.Shape, e.Type)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}
