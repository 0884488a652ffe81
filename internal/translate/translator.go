// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package translate provides the binding emission backend: it turns ADL
// schema types into target language declarations whose wire names survive
// serialization.
package translate

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/dacolabs/adlc/internal/adl"
)

// Translator defines the interface all output formats must implement.
type Translator interface {
	// Name returns the translator's identifier (e.g., "rust", "jsonschema")
	Name() string

	// Translate converts an ADL module to the target format.
	// On failure the error combines every failing schema type.
	Translate(ctx context.Context, mod *adl.Module, opts Options) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".rs")
	FileExtension() string
}

// Describer is implemented by translators that expose the declarations they
// render, wire mappings included.
type Describer interface {
	Describe(ctx context.Context, mod *adl.Module, opts Options) (*Result, error)
}

// Register maps format names to translators.
type Register map[string]Translator

// Get retrieves a translator by name.
func (r Register) Get(name string) (Translator, error) {
	t, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown translator: %s", name)
	}
	return t, nil
}

// Available returns all registered translator names, sorted.
func (r Register) Available() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OutputPath returns the slash separated file path for a module's output:
// "sys.types" with ".rs" becomes "sys/types.rs".
func OutputPath(module, ext string) string {
	return path.Join(strings.Split(module, ".")...) + ext
}
