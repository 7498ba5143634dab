package filterexpr

import (
	"reflect"
	"strings"

	"go.uber.org/zap"
)

// ParseOrdering parses an OrderBy expression into a sequence of clauses.
// Input is split on top-level commas; each clause is trimmed, then split
// on its first run of interior whitespace into a property path and an
// optional direction word. Empty clauses — produced by leading, trailing,
// or doubled commas — are silently skipped, the same tolerance extended
// to stray whitespace around a clause.
func ParseOrdering(input string) ([]OrderingClause, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}

	var clauses []OrderingClause

	for _, raw := range strings.Split(input, ",") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		property, direction, hasDirection := cutClause(trimmed)

		descending := false

		if hasDirection {
			switch {
			case strings.EqualFold(direction, "asc"), strings.EqualFold(direction, "ascending"):
				descending = false
			case strings.EqualFold(direction, "desc"), strings.EqualFold(direction, "descending"):
				descending = true
			default:
				return nil, &InvalidDirectionError{Word: direction}
			}
		}

		clauses = append(clauses, OrderingClause{PropertyPath: property, Descending: descending})
	}

	return clauses, nil
}

// cutClause splits a trimmed clause into its property path and direction
// word at the first run of whitespace.
func cutClause(clause string) (property, direction string, hasDirection bool) {
	idx := strings.IndexFunc(clause, func(r rune) bool { return r == ' ' || r == '\t' })
	if idx < 0 {
		return clause, "", false
	}

	property = clause[:idx]
	direction = strings.TrimSpace(clause[idx:])

	return property, direction, direction != ""
}

// orderKey is one compiled ordering clause: a resolved property path and
// the kind it resolves to, plus the direction to apply once compared.
type orderKey struct {
	path       *PropertyPath
	kind       ValueKind
	descending bool
}

// CompileOrdering resolves every clause's property path against T up
// front, then returns a comparator suitable for slices.SortStableFunc:
// the first clause is the primary key, each subsequent clause breaks
// ties left by the ones before it.
func CompileOrdering[T any](clauses []OrderingClause, in *Introspector, log *zap.Logger) (func(a, b T) int, error) {
	if len(clauses) == 0 {
		return func(T, T) int { return 0 }, nil
	}

	shape := reflect.TypeFor[T]()
	keys := make([]orderKey, 0, len(clauses))

	for _, c := range clauses {
		path, err := in.ResolvePath(shape, c.PropertyPath, log)
		if err != nil {
			return nil, err
		}

		keys = append(keys, orderKey{path: path, kind: path.FinalType().Kind, descending: c.Descending})
	}

	return func(a, b T) int {
		av := reflect.ValueOf(a)
		bv := reflect.ValueOf(b)

		for _, k := range keys {
			aVal, aNull := k.path.Resolve(av)
			bVal, bNull := k.path.Resolve(bv)

			var cmp int

			switch {
			case aNull && bNull:
				cmp = 0
			case aNull:
				cmp = -1
			case bNull:
				cmp = 1
			default:
				cmp = compareExtracted(extractOrderable(aVal, k.kind), extractOrderable(bVal, k.kind), k.kind)
			}

			if k.descending {
				cmp = -cmp
			}

			if cmp != 0 {
				return cmp
			}
		}

		return 0
	}, nil
}
