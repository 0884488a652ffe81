// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"errors"

	"github.com/dacolabs/adlc/internal/adl"
	"go.uber.org/multierr"
)

// Prepare runs one schema type through the backend: representation
// selection, identifier resolution, collision checking, wire mapping and
// emission. Every failure found for the type is returned, combined.
func Prepare(t adl.SchemaType, r TypeResolver) (Declaration, error) {
	rep, err := Select(t)
	if err != nil {
		return Declaration{}, err
	}

	rules := r.Rules()
	var errs error

	name, err := Resolve(t.Name, RoleType, rules)
	if err != nil {
		errs = multierr.Append(errs, withType(err, t))
	}

	role, scope := RoleField, "field"
	if rep == RepUnion {
		role, scope = RoleVariant, "variant"
	}

	resolved := make([]ResolvedIdentifier, len(t.Members))
	entries := make([]Entry, len(t.Members))
	names := make([]string, len(t.Members))
	for i, m := range t.Members {
		id, err := Resolve(m.WireName, role, rules)
		if err != nil {
			errs = multierr.Append(errs, withType(err, t))
			continue
		}
		resolved[i] = id
		entries[i] = Entry{Wire: m.WireName, Resolved: id}
		names[i] = m.WireName
	}

	params := make([]string, len(t.TypeParams))
	paramIDs := make([]ResolvedIdentifier, len(t.TypeParams))
	for i, p := range t.TypeParams {
		id, err := Resolve(p, RoleType, rules)
		if err != nil {
			errs = multierr.Append(errs, withType(err, t))
			continue
		}
		params[i] = p
		paramIDs[i] = id
	}
	if errs != nil {
		return Declaration{}, errs
	}

	errs = multierr.Append(errs, checkCollisions(t.ScopedName().String(), scope, names, resolved))
	errs = multierr.Append(errs, checkCollisions(t.ScopedName().String(), "type parameter", params, paramIDs))
	if errs != nil {
		return Declaration{}, errs
	}

	return Emit(t, rep, name, resolved, Record(entries), r)
}

// checkCollisions reports every pair of distinct names in one sibling scope
// sharing a target identifier. Suffixing is never attempted.
func checkCollisions(parent, scope string, names []string, ids []ResolvedIdentifier) error {
	var errs error
	first := make(map[string]string, len(names))
	for i, n := range names {
		target := ids[i].Target
		if prev, ok := first[target]; ok {
			errs = multierr.Append(errs, &NameCollision{
				Type:   parent,
				Scope:  scope,
				First:  prev,
				Second: n,
				Target: target,
			})
			continue
		}
		first[target] = n
	}
	return errs
}

// withType attaches the parent type to an UnresolvableIdentifier.
func withType(err error, t adl.SchemaType) error {
	var ue *UnresolvableIdentifier
	if errors.As(err, &ue) && ue.Type == "" {
		return &UnresolvableIdentifier{Type: t.ScopedName().String(), Name: ue.Name, Reason: ue.Reason}
	}
	return err
}
