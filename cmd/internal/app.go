// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/dacolabs/adlc/internal/commands"
	"github.com/dacolabs/adlc/internal/translate"
	"github.com/dacolabs/adlc/internal/translate/rust"
	"github.com/dacolabs/adlc/internal/translate/wireschema"
	"go.uber.org/zap"
)

// Translators returns every output format of the CLI.
func Translators() translate.Register {
	translators := make(translate.Register)
	for _, t := range []translate.Translator{
		&rust.Translator{},
		&wireschema.Translator{},
	} {
		translators[t.Name()] = t
	}
	return translators
}

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, env lookup).
func Run(ctx context.Context, getenv func(string) string) error {
	if getenv("ADLC_DEBUG") != "" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck
		translate.SetLogger(logger)
	}

	rootCmd := commands.NewRootCmd(Translators())
	return rootCmd.ExecuteContext(ctx)
}
