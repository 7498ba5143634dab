package filterexpr

import (
	"reflect"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
)

// cacheKey identifies one (record shape, dotted path) pair. Keying on the
// structural tuple directly — not a formatted string like "shape.path" —
// avoids both the allocation of building that string on every lookup and
// the (remote but real) risk of two distinct shape/path pairs colliding on
// the same formatted key.
type cacheKey struct {
	shape reflect.Type
	path  string
}

// Introspector resolves and caches property-path lookups and string-op
// implementations, so that Filter/OrderBy (query.go) never re-walks
// reflect.Type.FieldByName for the same (shape, path) pair twice. It is
// the module's one piece of shared mutable state, and is safe for
// concurrent use from many goroutines.
//
// xsync.MapOf is used instead of a plain map guarded by a sync.RWMutex —
// lookups on an already-resolved path, the hot path for every subsequent
// Filter/OrderBy call against a given record type, proceed lock-free.
type Introspector struct {
	paths     *xsync.MapOf[cacheKey, *PropertyPath]
	stringOps *xsync.MapOf[StringFn, func(s, substr string) bool]
}

// NewIntrospector builds an empty Introspector. Most callers don't need
// one directly: Filter and OrderBy default to a shared package-level
// instance unless WithIntrospector overrides it.
func NewIntrospector() *Introspector {
	return &Introspector{
		paths:     xsync.NewMapOf[cacheKey, *PropertyPath](),
		stringOps: xsync.NewMapOf[StringFn, func(string, string) bool](),
	}
}

var defaultIntrospector = NewIntrospector()

// ResolvePath resolves dotted against shape, populating the cache on a
// miss. Concurrent misses for the same key race harmlessly: both compute
// the same PropertyPath, and LoadOrStore keeps whichever was stored first.
// log is only ever written to when this call is the one that actually
// populates a new cache entry, so a hot loop resolving the same path
// thousands of times produces exactly one log line, not one per call.
func (in *Introspector) ResolvePath(shape reflect.Type, dotted string, log *zap.Logger) (*PropertyPath, error) {
	key := cacheKey{shape: shape, path: dotted}

	if p, ok := in.paths.Load(key); ok {
		return p, nil
	}

	path, err := resolvePath(shape, dotted)
	if err != nil {
		return nil, err
	}

	actual, loaded := in.paths.LoadOrStore(key, path)
	if !loaded {
		log.Debug("filterexpr: resolved property path", zap.Stringer("shape", shape), zap.String("path", dotted))
	}

	return actual, nil
}

// StringOp returns the string-matching implementation for a string-only
// ComparisonOp (contains/startswith/endswith). The function value itself
// never changes, so caching it only saves the one-time switch; it exists
// mainly so compile.go has a single place to go from StringFn to
// implementation, matching how it already goes from FieldType to coercer.
func (in *Introspector) StringOp(fn StringFn) func(s, substr string) bool {
	if f, ok := in.stringOps.Load(fn); ok {
		return f
	}

	var impl func(string, string) bool

	switch fn {
	case OpContains:
		impl = strings.Contains
	case OpStartsWith:
		impl = strings.HasPrefix
	case OpEndsWith:
		impl = strings.HasSuffix
	default:
		impl = func(string, string) bool { return false }
	}

	actual, _ := in.stringOps.LoadOrStore(fn, impl)

	return actual
}
