// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package rust

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/dacolabs/adlc/internal/adl"
	"github.com/dacolabs/adlc/internal/translate"
)

//go:embed rust.rs.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New("").Funcs(template.FuncMap{
	"params": func(f *translate.Factory) string {
		parts := make([]string, len(f.Params))
		for i, p := range f.Params {
			parts[i] = p.Name + ": " + p.Type
		}
		return strings.Join(parts, ", ")
	},
	"defaultFn": defaultFn,
	"rawString": rawString,
}).ParseFS(tmplFS, "rust.rs.tmpl"))

// defaultFn names the function supplying a field's serde default.
func defaultFn(m translate.DeclMember) string {
	return "def_" + strings.TrimPrefix(m.Ident.Target, "r#")
}

// rawString quotes s as a Rust raw string literal with enough hashes to
// contain it.
func rawString(s string) string {
	n := 1
	for strings.Contains(s, "\""+strings.Repeat("#", n)) {
		n++
	}
	hashes := strings.Repeat("#", n)
	return "r" + hashes + "\"" + s + "\"" + hashes
}

// baseDerives are required for the wire mappings to take effect.
var baseDerives = []string{"Serialize", "Deserialize"}

// Translator translates ADL modules to Rust structs and enums.
type Translator struct{}

// Name returns the format name of the translator.
func (t *Translator) Name() string {
	return "rust"
}

// FileExtension returns the file extension for Rust files.
func (t *Translator) FileExtension() string {
	return ".rs"
}

// Describe compiles a module with Rust naming rules.
func (t *Translator) Describe(ctx context.Context, mod *adl.Module, opts translate.Options) (*translate.Result, error) {
	return translate.Compile(ctx, mod, newResolver(mod.Name, opts), opts)
}

type fileData struct {
	Module string
	Decls  []declData
}

type declData struct {
	Kind     string
	Name     string
	Header   string
	Generics string
	Derives  string
	Members  []translate.DeclMember
	Factory  *translate.Factory
}

// Translate converts an ADL module to a Rust source file. Types that fail
// to compile are left out and reported in the returned error; no output is
// produced unless every type compiles.
func (t *Translator) Translate(ctx context.Context, mod *adl.Module, opts translate.Options) ([]byte, error) {
	result, err := t.Describe(ctx, mod, opts)
	if err != nil {
		return nil, err
	}

	derives := strings.Join(append(append([]string{}, baseDerives...), opts.Derives...), ",")
	data := fileData{Module: result.Module}
	for i := range result.Decls {
		d := &result.Decls[i]
		dd := declData{
			Kind:    d.Representation.String(),
			Name:    d.Name.Target,
			Header:  d.Header(),
			Derives: derives,
			Members: d.Members,
			Factory: d.Factory,
		}
		if len(d.TypeParams) > 0 {
			dd.Generics = "<" + strings.Join(d.TypeParams, ", ") + ">"
		}
		data.Decls = append(data.Decls, dd)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "file", data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.Bytes(), nil
}
