// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package rust provides Rust type generation with serde wire attributes.
package rust

import (
	"strings"

	"github.com/dacolabs/adlc/internal/adl"
	"github.com/dacolabs/adlc/internal/translate"
)

// keywords holds the strict and reserved keywords of Rust 2021, plus the
// 2024 reservation of "gen".
var keywords = []string{
	"as", "async", "await", "break", "const", "continue", "crate", "dyn",
	"else", "enum", "extern", "false", "fn", "for", "if", "impl", "in",
	"let", "loop", "match", "mod", "move", "mut", "pub", "ref", "return",
	"self", "Self", "static", "struct", "super", "trait", "true", "type",
	"unsafe", "use", "where", "while",
	"abstract", "become", "box", "do", "final", "gen", "macro", "override",
	"priv", "try", "typeof", "unsized", "virtual", "yield",
}

var keywordSet = func() map[string]bool {
	set := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		set[k] = true
	}
	return set
}()

// escape turns a reserved word into a raw identifier. Path keywords cannot
// be raw identifiers and get a trailing underscore instead.
func escape(s string) string {
	switch s {
	case "self", "Self", "super", "crate", "_":
		return s + "_"
	default:
		return "r#" + s
	}
}

type resolver struct {
	module    string
	crateRoot string
	rules     translate.CasingRules
}

func newResolver(module string, opts translate.Options) *resolver {
	reserved := append(append([]string{}, keywords...), opts.ReservedWords...)
	root := opts.CrateRoot
	if root == "" {
		root = "crate"
	}
	return &resolver{
		module:    module,
		crateRoot: root,
		rules: translate.NewCasingRules(
			translate.CaseUpperCamel,
			translate.CaseLowerSnake,
			translate.CaseUpperCamel,
			reserved,
			escape,
		),
	}
}

func (r *resolver) Rules() translate.CasingRules {
	return r.rules
}

func (r *resolver) PrimitiveType(name string, params []string) (string, bool) {
	switch name {
	case adl.Void:
		return "()", true
	case adl.Bool:
		return "bool", true
	case adl.Int8, adl.Int16, adl.Int32, adl.Int64:
		return "i" + strings.TrimPrefix(name, "Int"), true
	case adl.Word8, adl.Word16, adl.Word32, adl.Word64:
		return "u" + strings.TrimPrefix(name, "Word"), true
	case adl.Float:
		return "f32", true
	case adl.Double:
		return "f64", true
	case adl.String:
		return "String", true
	case adl.Bytes:
		return "Vec<u8>", true
	case adl.JSON:
		return "serde_json::Value", true
	}

	if len(params) != 1 {
		return "", false
	}
	switch name {
	case adl.Vector:
		return "Vec<" + params[0] + ">", true
	case adl.StringMap:
		return "std::collections::HashMap<String, " + params[0] + ">", true
	case adl.Nullable:
		return "Option<" + params[0] + ">", true
	}
	return "", false
}

// RefType renders local references by name and others through the crate
// path of their module.
func (r *resolver) RefType(ref adl.ScopedName, target string, params []string) string {
	name := target
	if ref.Module != "" && ref.Module != r.module {
		path := []string{r.crateRoot}
		for _, seg := range strings.Split(ref.Module, ".") {
			if keywordSet[seg] {
				seg = escape(seg)
			}
			path = append(path, seg)
		}
		name = strings.Join(append(path, target), "::")
	}
	if len(params) == 0 {
		return name
	}
	return name + "<" + strings.Join(params, ", ") + ">"
}

func (r *resolver) FactoryName() string {
	return "new"
}
