// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/dacolabs/adlc/internal/adl"
)

// RunDescribeForm prompts the user to select a module to describe.
func RunDescribeForm(value *string, modules []*adl.Module) error {
	options := make([]huh.Option[string], 0, len(modules))
	for _, m := range modules {
		options = append(options, huh.NewOption(fmt.Sprintf("%s - %d types", m.Name, len(m.Types)), m.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select module to describe").
				Options(options...).
				Filtering(true).
				Value(value).
				Height(10),
		),
	).WithTheme(Theme()).Run()
}
