// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_OnlyDivergentNames(t *testing.T) {
	rules := newStubResolver().Rules()

	var entries []Entry
	for _, wire := range []string{"double", "for", "int", "Objects", "string"} {
		id, err := Resolve(wire, RoleField, rules)
		require.NoError(t, err)
		entries = append(entries, Entry{Wire: wire, Resolved: id})
	}

	got := Record(entries)
	assert.Equal(t, []WireMapping{
		{Target: "r#for", Wire: "for"},
		{Target: "objects", Wire: "Objects"},
	}, got)

	// A mapping exists iff the target differs from the wire name.
	for _, e := range entries {
		found := false
		for _, m := range got {
			if m.Wire == e.Wire {
				found = true
			}
		}
		assert.Equal(t, e.Resolved.Target != e.Wire, found, e.Wire)
	}
}

func TestRecord_Empty(t *testing.T) {
	assert.Empty(t, Record(nil))
}
