package filterexpr

import (
	"iter"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// config holds the resolved effect of a caller's Option list.
type config struct {
	introspector *Introspector
	logger       *zap.Logger
}

// Option customizes a Filter/OrderBy/FilterSeq/OrderBySeq call. There is
// deliberately no configuration file or environment-variable surface; the
// functional-options pattern is the entire extension surface.
type Option func(*config)

// WithIntrospector overrides the shared, package-level Introspector — use
// a dedicated one to isolate cache memory for a long-lived record shape
// used nowhere else, or for deterministic tests.
func WithIntrospector(in *Introspector) Option {
	return func(c *config) { c.introspector = in }
}

// WithLogger attaches a zap.Logger for compile-time/cache diagnostics.
// Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

func resolveConfig(opts []Option) *config {
	c := &config{introspector: defaultIntrospector, logger: nopLogger()}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Filter parses filterString and applies it to source, returning the
// records that match. Empty/whitespace filterString is a no-op: source
// is returned unchanged.
func Filter[T any](source []T, filterString string, opts ...Option) ([]T, error) {
	if strings.TrimSpace(filterString) == "" {
		return source, nil
	}

	cfg := resolveConfig(opts)

	tree, err := Parse(filterString)
	if err != nil {
		return nil, err
	}

	pred, err := CompilePredicate[T](tree, cfg.introspector, cfg.logger)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(source))

	for _, v := range source {
		if pred(v) {
			out = append(out, v)
		}
	}

	return out, nil
}

// OrderBy parses orderingString and stably sorts a copy of source by the
// resulting clauses. Empty/whitespace orderingString is a no-op: source
// is returned unchanged.
func OrderBy[T any](source []T, orderingString string, opts ...Option) ([]T, error) {
	if strings.TrimSpace(orderingString) == "" {
		return source, nil
	}

	cfg := resolveConfig(opts)

	clauses, err := ParseOrdering(orderingString)
	if err != nil {
		return nil, err
	}

	if len(clauses) == 0 {
		return source, nil
	}

	less, err := CompileOrdering[T](clauses, cfg.introspector, cfg.logger)
	if err != nil {
		return nil, err
	}

	out := append([]T(nil), source...)
	slices.SortStableFunc(out, less)

	return out, nil
}

// FilterSeq is the iter.Seq[T] form of Filter, for callers streaming
// records lazily rather than holding them in a slice. Parsing and
// compilation happen eagerly, before the returned sequence is ever
// ranged over, so a malformed filterString is reported at the call site
// rather than on first iteration.
func FilterSeq[T any](source iter.Seq[T], filterString string, opts ...Option) (iter.Seq[T], error) {
	if strings.TrimSpace(filterString) == "" {
		return source, nil
	}

	cfg := resolveConfig(opts)

	tree, err := Parse(filterString)
	if err != nil {
		return nil, err
	}

	pred, err := CompilePredicate[T](tree, cfg.introspector, cfg.logger)
	if err != nil {
		return nil, err
	}

	return func(yield func(T) bool) {
		for v := range source {
			if pred(v) && !yield(v) {
				return
			}
		}
	}, nil
}

// OrderBySeq is the iter.Seq[T] form of OrderBy. A stable sort needs the
// whole sequence in hand, so each time the returned sequence is ranged
// over it collects source into a slice, sorts it, then yields in order.
func OrderBySeq[T any](source iter.Seq[T], orderingString string, opts ...Option) (iter.Seq[T], error) {
	if strings.TrimSpace(orderingString) == "" {
		return source, nil
	}

	cfg := resolveConfig(opts)

	clauses, err := ParseOrdering(orderingString)
	if err != nil {
		return nil, err
	}

	if len(clauses) == 0 {
		return source, nil
	}

	less, err := CompileOrdering[T](clauses, cfg.introspector, cfg.logger)
	if err != nil {
		return nil, err
	}

	return func(yield func(T) bool) {
		items := slices.Collect(source)
		slices.SortStableFunc(items, less)

		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	}, nil
}
