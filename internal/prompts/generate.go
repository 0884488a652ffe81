// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/dacolabs/adlc/internal/adl"
)

// RunGenerateForm prompts for the modules and format to generate when they
// were not given as flags. Fields already set are not asked again.
func RunGenerateForm(selected *[]string, format *string, modules []*adl.Module, formats []string) error {
	var groups []*huh.Group

	if len(*selected) == 0 {
		options := make([]huh.Option[string], len(modules))
		for i, m := range modules {
			label := fmt.Sprintf("%s (%d types)", m.Name, len(m.Types))
			options[i] = huh.NewOption(label, m.Name)
		}
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Modules to generate").
				Options(options...).
				Filtering(true).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return errors.New("select at least one module")
					}
					return nil
				}).
				Value(selected),
		))
	}

	if *format == "" {
		groups = append(groups, huh.NewGroup(RunTranslateFormatSelect(format, formats)))
	}

	if len(groups) == 0 {
		return nil
	}
	return huh.NewForm(groups...).WithTheme(Theme()).Run()
}

// RunTranslateFormatSelect returns a select field for choosing the output format.
func RunTranslateFormatSelect(value *string, formats []string) *huh.Select[string] {
	return huh.NewSelect[string]().
		Title("Output format").
		Options(formatOptions(formats)...).
		Value(value)
}
