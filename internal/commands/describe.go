// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dacolabs/adlc/internal/prompts"
	"github.com/dacolabs/adlc/internal/session"
	"github.com/dacolabs/adlc/internal/translate"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

type describeOptions struct {
	format string
	json   bool
}

func newDescribeCmd(translators translate.Register) *cobra.Command {
	opts := &describeOptions{}

	cmd := &cobra.Command{
		Use:   "describe [module]",
		Short: "Show the declarations and wire mappings of a module",
		Long: `Show how each schema type of a module is represented in the target
format: its resolved name, its members and the wire names they are
serialized as.`,
		Example: `  # Describe a module
  adlc describe test14

  # Print the declaration tree as JSON
  adlc describe test14 --json`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			return runDescribe(cmd, ctx, translators, name, opts)
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", "Target format whose naming rules apply (defaults to the configured format)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the declarations as JSON")

	return cmd
}

func runDescribe(cmd *cobra.Command, ctx *session.Context, translators translate.Register, name string, opts *describeOptions) error {
	if name == "" {
		if !isTerminal() {
			return errors.New("module name is required")
		}
		if err := prompts.RunDescribeForm(&name, ctx.Modules); err != nil {
			return err
		}
	}

	mod := ctx.Module(name)
	if mod == nil {
		return fmt.Errorf("module %q not found in %s", name, ctx.Config.Path)
	}

	format := opts.format
	if format == "" {
		format = ctx.Config.Format
	}
	translator, err := translators.Get(format)
	if err != nil {
		return err
	}
	describer, ok := translator.(translate.Describer)
	if !ok {
		return fmt.Errorf("format %q does not expose declarations", format)
	}

	result, err := describer.Describe(cmd.Context(), mod, optionsFor(ctx.Config))
	if result == nil {
		return err
	}

	if opts.json {
		if jsonErr := writeJSON(cmd.OutOrStdout(), result); jsonErr != nil {
			return jsonErr
		}
		return err
	}

	for i := range result.Decls {
		d := &result.Decls[i]
		prompts.PrintResult([]prompts.ResultField{
			{Label: d.Representation.String(), Value: fmt.Sprintf("%s (%s)", d.Header(), d.WireName)},
		}, "")
		for _, m := range d.Members {
			fmt.Printf("    %s\n", describeMember(m))
		}
	}
	return err
}

func describeMember(m translate.DeclMember) string {
	var b strings.Builder
	b.WriteString(m.Ident.Target)
	if m.Payload {
		b.WriteString(": ")
		b.WriteString(m.TargetType)
	}
	if m.Mapping != nil {
		fmt.Fprintf(&b, "  <-> %q", m.Mapping.Wire)
	}
	return b.String()
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
