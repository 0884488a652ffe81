// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"context"

	"github.com/dacolabs/adlc/internal/adl"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelism bounds concurrent type preparation when Options
// leaves it unset.
const DefaultParallelism = 4

// Options configures a translation run.
type Options struct {
	// Parallelism bounds how many schema types are prepared concurrently.
	Parallelism int

	// Derives lists extra derive macros for targets that support them.
	Derives []string

	// ReservedWords extends the target's reserved word set.
	ReservedWords []string

	// CrateRoot prefixes cross-module references in Rust output.
	CrateRoot string
}

// Compile prepares every schema type of a module. Types are independent, so
// they are prepared in parallel; results keep declaration order. A failing
// type does not stop the others: all failures are returned combined, next
// to the declarations that succeeded.
func Compile(ctx context.Context, mod *adl.Module, r TypeResolver, opts Options) (*Result, error) {
	limit := opts.Parallelism
	if limit <= 0 {
		limit = DefaultParallelism
	}

	decls := make([]Declaration, len(mod.Types))
	errs := make([]error, len(mod.Types))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, t := range mod.Types {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			decls[i], errs[i] = Prepare(t, r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log := Logger().With(zap.String("module", mod.Name))
	result := &Result{Module: mod.Name}
	var combined error
	var names []string
	var ids []ResolvedIdentifier
	for i, t := range mod.Types {
		if errs[i] != nil {
			log.Warn("type failed", zap.String("type", t.Name), zap.Error(errs[i]))
			combined = multierr.Append(combined, errs[i])
			continue
		}
		d := decls[i]
		log.Debug("type emitted",
			zap.String("type", t.Name),
			zap.Stringer("representation", d.Representation),
			zap.Int("members", len(d.Members)),
			zap.Int("mappings", len(d.Mappings)))
		result.Decls = append(result.Decls, d)
		names = append(names, t.Name)
		ids = append(ids, d.Name)
	}

	// Type names share the module scope.
	combined = multierr.Append(combined, checkCollisions(mod.Name, "type", names, ids))
	return result, combined
}
