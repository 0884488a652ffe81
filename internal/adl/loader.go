// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package adl

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Loader loads AST modules from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile loads and parses a module file.
// The format is determined from the file extension.
func (l *Loader) LoadFile(filePath string) (*Module, error) {
	parser, err := ParserFor(filePath)
	if err != nil {
		return nil, err
	}

	f, err := l.fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	mod, err := parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return mod, nil
}

// LoadDir loads every .json, .yaml and .yml module below dir, in lexical
// path order. Two files declaring the same module name is an error.
func (l *Loader) LoadDir(dir string) ([]*Module, error) {
	var modules []*Module
	seen := make(map[string]string)

	err := fs.WalkDir(l.fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isModuleFile(p) {
			return nil
		}
		mod, err := l.LoadFile(p)
		if err != nil {
			return err
		}
		if prev, ok := seen[mod.Name]; ok {
			return fmt.Errorf("module %q declared in both %s and %s", mod.Name, prev, p)
		}
		seen[mod.Name] = p
		modules = append(modules, mod)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return modules, nil
}

func isModuleFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
