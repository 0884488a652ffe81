// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import "github.com/charmbracelet/huh"

// RunInitForm runs the interactive form for the init command.
// It fills the provided pointers with user input.
func RunInitForm(path, output, format, parallelism *string, formats []string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Path to ADL AST modules").
				Placeholder("./schema").
				Validate(requiredValidator("schema path")).
				Value(path),
			huh.NewInput().
				Title("Output directory").
				Placeholder("./adl").
				Validate(requiredValidator("output directory")).
				Value(output),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output format").
				Options(formatOptions(formats)...).
				Value(format),
			huh.NewInput().
				Title("Parallel type compilation").
				Placeholder("4").
				Validate(positiveIntValidator("parallelism")).
				Value(parallelism),
		),
	).WithTheme(Theme()).Run()
}
