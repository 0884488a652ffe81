// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import "github.com/dacolabs/adlc/internal/adl"

// TypeResolver supplies the target language specific parts of emission:
// naming rules and the rendering of type expressions.
// Each target implements this interface; the rest of the pipeline is shared.
type TypeResolver interface {
	// Rules returns the casing conventions and reserved words of the target.
	Rules() CasingRules

	// PrimitiveType renders an ADL primitive applied to already rendered
	// parameters. It returns false for primitives the target cannot express.
	PrimitiveType(name string, params []string) (string, bool)

	// RefType renders a reference to a declaration. target is the resolved
	// type name of the referenced declaration.
	RefType(ref adl.ScopedName, target string, params []string) string

	// FactoryName is the name of the positional constructor.
	FactoryName() string
}
