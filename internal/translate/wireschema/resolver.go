// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package wireschema provides JSON Schema generation for the wire format of
// ADL modules. The schemas only ever mention wire names.
package wireschema

import (
	"strings"

	"github.com/dacolabs/adlc/internal/adl"
	"github.com/dacolabs/adlc/internal/translate"
)

// resolver keeps names as declared. JSON has no reserved words, so nothing
// is escaped; names still go through identifier validation.
type resolver struct {
	rules translate.CasingRules
}

func newResolver() *resolver {
	return &resolver{
		rules: translate.NewCasingRules(
			translate.CasePreserve,
			translate.CasePreserve,
			translate.CasePreserve,
			nil,
			nil,
		),
	}
}

func (r *resolver) Rules() translate.CasingRules {
	return r.rules
}

func (r *resolver) PrimitiveType(name string, params []string) (string, bool) {
	if _, ok := primitives[name]; !ok {
		return "", false
	}
	if len(params) == 0 {
		return name, true
	}
	return name + "<" + strings.Join(params, ", ") + ">", true
}

func (r *resolver) RefType(ref adl.ScopedName, _ string, params []string) string {
	if len(params) == 0 {
		return ref.String()
	}
	return ref.String() + "<" + strings.Join(params, ", ") + ">"
}

func (r *resolver) FactoryName() string {
	return ""
}
