// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"fmt"
	"os"

	"github.com/dacolabs/adlc/internal/translate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// isTerminal reports whether prompts can be shown.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fd fits in int
}

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(translators translate.Register) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "adlc",
		Short: "Generate serde bound Rust types from ADL schemas",
		Long: `adlc compiles ADL AST modules into Rust type declarations whose
serialized field and variant names match the schema, whatever the Rust
naming rules make of them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				return nil
			}
			logger, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			translate.SetLogger(logger)
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log compilation details to stderr")

	rootCmd.AddCommand(newInitCmd(translators))
	rootCmd.AddCommand(newGenerateCmd(translators))
	rootCmd.AddCommand(newDescribeCmd(translators))
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
