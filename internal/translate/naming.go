// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"errors"
	"fmt"
	"strings"
)

// Casing is an identifier casing convention.
type Casing int

const (
	// CasePreserve keeps the name, mapping separators to underscores.
	CasePreserve Casing = iota
	// CaseUpperCamel joins words with their first letter upper cased.
	CaseUpperCamel
	// CaseLowerSnake lower cases words, splitting camel humps, joined by "_".
	CaseLowerSnake
)

// CasingRules is the naming configuration of a target language. It is
// immutable once built and safe to share between goroutines.
type CasingRules struct {
	types    Casing
	fields   Casing
	variants Casing
	reserved map[string]struct{}
	escape   func(string) string
}

// NewCasingRules builds rules from per-role casings, the target's reserved
// words and its escape function. A nil escape appends an underscore.
func NewCasingRules(types, fields, variants Casing, reserved []string, escape func(string) string) CasingRules {
	words := make(map[string]struct{}, len(reserved))
	for _, w := range reserved {
		words[w] = struct{}{}
	}
	if escape == nil {
		escape = func(s string) string { return s + "_" }
	}
	return CasingRules{
		types:    types,
		fields:   fields,
		variants: variants,
		reserved: words,
		escape:   escape,
	}
}

// Casing returns the convention applied to identifiers of the given role.
func (r CasingRules) Casing(role Role) Casing {
	switch role {
	case RoleField:
		return r.fields
	case RoleVariant:
		return r.variants
	default:
		return r.types
	}
}

// IsReserved reports whether s is a reserved word of the target.
func (r CasingRules) IsReserved(s string) bool {
	_, ok := r.reserved[s]
	return ok
}

// Resolve maps a schema name to its target identifier for the given role.
// It is a pure function of its arguments.
func Resolve(name string, role Role, rules CasingRules) (ResolvedIdentifier, error) {
	candidate, err := applyCasing(name, rules.Casing(role))
	if err != nil {
		return ResolvedIdentifier{}, &UnresolvableIdentifier{Name: name, Reason: err.Error()}
	}

	id := ResolvedIdentifier{Candidate: candidate, Target: candidate}
	if rules.IsReserved(candidate) {
		id.Target = rules.escape(candidate)
		id.Escaped = true
	}
	id.WireOverride = id.Target != name
	return id, nil
}

func applyCasing(name string, casing Casing) (string, error) {
	if name == "" {
		return "", errors.New("empty name")
	}
	for _, r := range name {
		if !isLetter(r) && !isDigit(r) && !isSeparator(r) {
			return "", fmt.Errorf("invalid character %q", r)
		}
	}
	parts := strings.FieldsFunc(name, isSeparator)
	if len(parts) == 0 {
		return "", errors.New("no identifier characters")
	}

	var result string
	switch casing {
	case CaseUpperCamel:
		result = toUpperCamel(parts)
	case CaseLowerSnake:
		result = toLowerSnake(parts)
	default:
		result = strings.Map(func(r rune) rune {
			if isSeparator(r) {
				return '_'
			}
			return r
		}, name)
	}

	if casing != CasePreserve && name[0] == '_' {
		result = "_" + result
	}
	if isDigit(rune(result[0])) {
		result = "_" + result
	}
	return result, nil
}

// ToSnakeCase converts a name to lower snake case, splitting camel humps.
// It returns the empty string for names that cannot be converted.
func ToSnakeCase(s string) string {
	out, err := applyCasing(s, CaseLowerSnake)
	if err != nil {
		return ""
	}
	return out
}

// ToPascalCase converts a name to upper camel case.
// It returns the empty string for names that cannot be converted.
func ToPascalCase(s string) string {
	out, err := applyCasing(s, CaseUpperCamel)
	if err != nil {
		return ""
	}
	return out
}

func toUpperCamel(parts []string) string {
	var sb strings.Builder
	for _, part := range parts {
		sb.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return sb.String()
}

func toLowerSnake(parts []string) string {
	var words []string
	for _, part := range parts {
		for _, w := range splitHumps(part) {
			words = append(words, strings.ToLower(w))
		}
	}
	return strings.Join(words, "_")
}

// splitHumps splits a camelCase word into its humps:
//   - "fooBar" -> ["foo", "Bar"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "v2Name" -> ["v2", "Name"]
func splitHumps(s string) []string {
	var words []string
	start := 0
	for i := 1; i < len(s); i++ {
		prev, cur := rune(s[i-1]), rune(s[i])
		split := false
		switch {
		case isLower(prev) || isDigit(prev):
			split = isUpper(cur)
		case isUpper(prev):
			split = isUpper(cur) && i+1 < len(s) && isLower(rune(s[i+1]))
		}
		if split {
			words = append(words, s[start:i])
			start = i
		}
	}
	return append(words, s[start:])
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == ' '
}

func isLetter(r rune) bool { return isLower(r) || isUpper(r) }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
