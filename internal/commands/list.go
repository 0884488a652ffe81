// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dacolabs/adlc/internal/session"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the ADL modules of the project",
		Long: `List all ADL modules found in the schema directory.
Displays module names and their schema types in declaration order.`,
		Example: `  # List modules
  adlc list`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runList(ctx)
		},
	}

	return cmd
}

func runList(ctx *session.Context) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "MODULE\tTYPES")

	for _, m := range ctx.Modules {
		names := make([]string, len(m.Types))
		for i, t := range m.Types {
			names[i] = fmt.Sprintf("%s (%s)", t.Name, t.Shape)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", m.Name, strings.Join(names, ", "))
	}

	return w.Flush()
}
