// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"github.com/dacolabs/adlc/internal/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the adlc version",
		Example: `  # Show the version
  adlc version`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Println(version.Info())
			return nil
		},
	}
	return cmd
}
