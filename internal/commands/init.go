// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dacolabs/adlc/internal/config"
	"github.com/dacolabs/adlc/internal/prompts"
	"github.com/dacolabs/adlc/internal/session"
	"github.com/dacolabs/adlc/internal/translate"
	"github.com/spf13/cobra"
)

type initOptions struct {
	path           string
	output         string
	format         string
	parallelism    int
	nonInteractive bool
}

func newInitCmd(translators translate.Register) *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new adlc project",
		Long: `Initialize a new adlc project with an adlc.yaml configuration file.
The schema directory is created when it does not exist yet.`,
		Example: `  # Interactive mode
  adlc init

  # Non-interactive
  adlc init --path ./schema --output ./src/adl --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, translators)
		},
	}

	cmd.Flags().StringVarP(&opts.path, "path", "p", "./schema", "Path to the ADL AST modules")
	cmd.Flags().StringVarP(&opts.output, "output", "o", config.DefaultOutput, "Output directory for generated code")
	cmd.Flags().StringVarP(&opts.format, "format", "f", config.DefaultFormat,
		fmt.Sprintf("Output format (%s)", strings.Join(translators.Available(), ", ")))
	cmd.Flags().IntVar(&opts.parallelism, "parallelism", config.DefaultParallelism, "Schema types compiled concurrently")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(opts *initOptions, translators translate.Register) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Check that the current directory isn't already initialized
	cfgPath := filepath.Join(cwd, session.ConfigFileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return errors.New("adlc.yaml already exists; project already initialized")
	}

	if !opts.nonInteractive && isTerminal() {
		parallelism := strconv.Itoa(opts.parallelism)
		if err := prompts.RunInitForm(
			&opts.path,
			&opts.output,
			&opts.format,
			&parallelism,
			translators.Available(),
		); err != nil {
			return err
		}
		opts.parallelism, _ = strconv.Atoi(parallelism)
	}

	if _, err := translators.Get(opts.format); err != nil {
		return fmt.Errorf("unsupported format %q. Available formats: %s",
			opts.format, strings.Join(translators.Available(), ", "))
	}

	cfg := config.Config{
		Version:     config.CurrentConfigVersion,
		Path:        opts.path,
		Output:      opts.output,
		Format:      opts.format,
		Parallelism: opts.parallelism,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	schemaDir := opts.path
	if !filepath.IsAbs(schemaDir) {
		schemaDir = filepath.Join(cwd, schemaDir)
	}
	if err := os.MkdirAll(schemaDir, 0o750); err != nil {
		return fmt.Errorf("failed to create schema directory: %w", err)
	}

	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Schema", Value: opts.path},
		{Label: "Output", Value: opts.output},
		{Label: "Format", Value: opts.format},
	}, "Initialization completed")

	return nil
}
