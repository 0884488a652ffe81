// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dacolabs/adlc/internal/adl"
	"github.com/dacolabs/adlc/internal/config"
)

var (
	// ErrNotInitialized indicates no adlc.yaml was found in the current directory.
	ErrNotInitialized = errors.New("not in an adlc project (adlc.yaml not found)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrModuleNotFound indicates the schema directory holds no AST module.
	ErrModuleNotFound = errors.New("no ADL module found")

	// ErrInvalidModule indicates a module file exists but couldn't be parsed.
	ErrInvalidModule = errors.New("invalid ADL module")
)

// ConfigFileName is the name of the adlc configuration file.
const ConfigFileName = "adlc.yaml"

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the project configuration and its parsed ADL modules.
type Context struct {
	// Config is the validated configuration with defaults applied.
	Config *config.Config

	// Root is the directory holding adlc.yaml.
	Root string

	// Modules are the parsed modules, sorted by file path.
	Modules []*adl.Module
}

// Module returns the loaded module with the given name, or nil.
func (c *Context) Module(name string) *adl.Module {
	for _, m := range c.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Load loads the project context from the current working directory and
// returns a new context.Context with the adlc Context stored in it.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadDir(ctx, cwd)
}

// LoadDir loads the project context rooted at dir.
func LoadDir(ctx context.Context, dir string) (context.Context, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		return nil, ErrNotInitialized
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
	}
	cfg.ApplyDefaults()

	schemaDir := cfg.Path
	if !filepath.IsAbs(schemaDir) {
		schemaDir = filepath.Join(dir, schemaDir)
	}
	if info, statErr := os.Stat(schemaDir); statErr != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrModuleNotFound, cfg.Path)
	}

	modules, err := adl.NewLoader(os.DirFS(schemaDir)).LoadDir(".")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModule, err)
	}
	if len(modules) == 0 {
		return nil, fmt.Errorf("%w: no .json or .yaml files in %s", ErrModuleNotFound, cfg.Path)
	}

	adlcCtx := &Context{
		Config:  cfg,
		Root:    dir,
		Modules: modules,
	}

	return context.WithValue(ctx, contextKey{}, adlcCtx), nil
}

// From extracts the adlc Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if adlcCtx, ok := ctx.Value(contextKey{}).(*Context); ok {
		return adlcCtx
	}
	return nil
}
