// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"fmt"

	"github.com/dacolabs/adlc/internal/adl"
)

// Select chooses the native representation of a schema type from its shape.
func Select(t adl.SchemaType) (Representation, error) {
	switch t.Shape {
	case adl.ShapeRecord:
		return RepRecord, nil
	case adl.ShapeUnion:
		// Zero alternatives is legal and yields an uninhabited sum type.
		return RepUnion, nil
	case adl.ShapeWrapper:
		if len(t.Members) != 1 {
			return 0, &UnsupportedShape{
				Type:   t.ScopedName().String(),
				Shape:  string(t.Shape),
				Reason: fmt.Sprintf("wrapper requires exactly one member, got %d", len(t.Members)),
			}
		}
		return RepWrapper, nil
	default:
		return 0, &UnsupportedShape{Type: t.ScopedName().String(), Shape: string(t.Shape)}
	}
}
