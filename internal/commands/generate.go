// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dacolabs/adlc/internal/adl"
	"github.com/dacolabs/adlc/internal/config"
	"github.com/dacolabs/adlc/internal/prompts"
	"github.com/dacolabs/adlc/internal/session"
	"github.com/dacolabs/adlc/internal/translate"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

type generateOptions struct {
	modules string
	format  string
	output  string
	all     bool
}

func newGenerateCmd(translators translate.Register) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate code for ADL modules",
		Long: fmt.Sprintf(`Generate code for the ADL modules of the project.

Every schema type is compiled independently; a failing type is reported and
the remaining ones are still checked. A module is only written when all of
its types compile.

Available formats: %s`, strings.Join(translators.Available(), ", ")),
		Example: `  # Interactive mode
  adlc generate

  # Generate specific modules
  adlc generate --module test14,sys.types

  # Generate all modules as JSON Schema
  adlc generate --all --format jsonschema --output schemas`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, translators, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.modules, "module", "m", "", "Module name(s), comma-separated")
	cmd.Flags().StringVar(&opts.format, "format", "", fmt.Sprintf("Output format (%s)", strings.Join(translators.Available(), ", ")))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (defaults to the configured output)")
	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "Generate all modules")

	return cmd
}

// optionsFor maps the project configuration to translation options.
func optionsFor(cfg *config.Config) translate.Options {
	return translate.Options{
		Parallelism:   cfg.Parallelism,
		Derives:       cfg.Rust.Derives,
		ReservedWords: cfg.Rust.ReservedWords,
		CrateRoot:     cfg.Rust.CrateRoot,
	}
}

func runGenerate(cmd *cobra.Command, translators translate.Register, opts *generateOptions) error {
	ctx, err := session.RequireFromCommand(cmd)
	if err != nil {
		return err
	}

	// Validate mutually exclusive flags
	if opts.all && opts.modules != "" {
		return fmt.Errorf("--all and --module are mutually exclusive")
	}

	var selected []string
	for _, n := range strings.Split(opts.modules, ",") {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if ctx.Module(n) == nil {
			return fmt.Errorf("module %q not found in %s", n, ctx.Config.Path)
		}
		selected = append(selected, n)
	}

	format := opts.format
	if !opts.all && len(selected) == 0 {
		if isTerminal() {
			if err := prompts.RunGenerateForm(&selected, &format, ctx.Modules, translators.Available()); err != nil {
				return err
			}
		} else {
			opts.all = true
		}
	}
	if opts.all {
		selected = selected[:0]
		for _, m := range ctx.Modules {
			selected = append(selected, m.Name)
		}
	}
	if format == "" {
		format = ctx.Config.Format
	}

	translator, err := translators.Get(format)
	if err != nil {
		return fmt.Errorf("unsupported format %q. Available formats: %s",
			format, strings.Join(translators.Available(), ", "))
	}

	output := opts.output
	if output == "" {
		output = ctx.Config.Output
	}
	if !filepath.IsAbs(output) {
		output = filepath.Join(ctx.Root, output)
	}

	fmt.Printf("Generating %d module(s) as %s...\n", len(selected), format)

	var failures []string
	var written []prompts.ResultField
	for _, name := range selected {
		mod := ctx.Module(name)
		outFile, err := generateModule(cmd, translator, mod, output, optionsFor(ctx.Config))
		if err != nil {
			for _, e := range multierr.Errors(err) {
				failures = append(failures, fmt.Sprintf("%s: %v", name, e))
			}
			continue
		}
		written = append(written, prompts.ResultField{Label: name, Value: outFile})
	}

	if len(written) > 0 {
		prompts.PrintResult(written, fmt.Sprintf("Generated %d module(s)", len(written)))
	}

	if len(failures) > 0 {
		prompts.PrintFailures("Errors:", failures)
		return fmt.Errorf("failed to generate %d module(s)", len(selected)-len(written))
	}

	return nil
}

func generateModule(cmd *cobra.Command, translator translate.Translator, mod *adl.Module, output string, opts translate.Options) (string, error) {
	data, err := translator.Translate(cmd.Context(), mod, opts)
	if err != nil {
		return "", err
	}

	outFile := filepath.Join(output, filepath.FromSlash(translate.OutputPath(mod.Name, translator.FileExtension())))
	if err := os.MkdirAll(filepath.Dir(outFile), 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outFile, data, 0o600); err != nil {
		return "", err
	}
	return outFile, nil
}
