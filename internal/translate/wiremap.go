// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

// Entry pairs a wire name with its resolved identifier.
type Entry struct {
	Wire     string
	Resolved ResolvedIdentifier
}

// Record returns one WireMapping per entry that requires a wire override,
// in input order.
func Record(entries []Entry) []WireMapping {
	var mappings []WireMapping
	for _, e := range entries {
		if e.Resolved.WireOverride {
			mappings = append(mappings, WireMapping{Target: e.Resolved.Target, Wire: e.Wire})
		}
	}
	return mappings
}
