package filterexpr

import (
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Predicate is a compiled filter expression: given one record, report
// whether it matches. Evaluation never logs and keeps no state between
// calls — the "a Predicate is pure" guarantee Filter and FilterSeq rely
// on to reuse a single compiled predicate across an arbitrarily large
// record stream.
type Predicate[T any] func(T) bool

// CompilePredicate compiles a parsed filter expression tree against the
// record shape T, resolving every property path up front so that the
// returned Predicate does no further error-producing work. A nil tree
// (the Parse result for empty/whitespace input) compiles to an
// always-true predicate.
func CompilePredicate[T any](tree Expr, in *Introspector, log *zap.Logger) (Predicate[T], error) {
	if tree == nil {
		return func(T) bool { return true }, nil
	}

	shape := reflect.TypeFor[T]()

	fn, err := compileNode(tree, shape, in, log)
	if err != nil {
		return nil, err
	}

	return func(v T) bool { return fn(reflect.ValueOf(v)) }, nil
}

func compileNode(tree Expr, shape reflect.Type, in *Introspector, log *zap.Logger) (func(reflect.Value) bool, error) {
	switch n := tree.(type) {
	case *Comparison:
		return compileComparison(n, shape, in, log)
	case *Function:
		synth := &Comparison{
			Pos:     n.Pos,
			Path:    n.Args[0],
			Op:      n.Fn,
			Operand: Operand{Lexeme: n.Args[1]},
		}

		return compileComparison(synth, shape, in, log)
	case *Logical:
		left, err := compileNode(n.Left, shape, in, log)
		if err != nil {
			return nil, err
		}

		right, err := compileNode(n.Right, shape, in, log)
		if err != nil {
			return nil, err
		}

		if n.Op == LogOr {
			return func(v reflect.Value) bool { return left(v) || right(v) }, nil
		}

		return func(v reflect.Value) bool { return left(v) && right(v) }, nil
	case *Not:
		inner, err := compileNode(n.Inner, shape, in, log)
		if err != nil {
			return nil, err
		}

		return func(v reflect.Value) bool { return !inner(v) }, nil
	default:
		return nil, &InvalidSyntaxError{Reason: "unknown expression node"}
	}
}

// compileComparison compiles one Comparison node. Ne is always rewritten
// as a logical negation of the equivalent Eq node rather than given its
// own comparator branch, so the two can never drift apart.
func compileComparison(n *Comparison, shape reflect.Type, in *Introspector, log *zap.Logger) (func(reflect.Value) bool, error) {
	if n.Op == OpNe {
		eq := &Comparison{Pos: n.Pos, Path: n.Path, Op: OpEq, Operand: n.Operand}

		eqFn, err := compileComparison(eq, shape, in, log)
		if err != nil {
			return nil, err
		}

		return func(v reflect.Value) bool { return !eqFn(v) }, nil
	}

	path, err := in.ResolvePath(shape, n.Path, log)
	if err != nil {
		return nil, err
	}

	lhsType := path.FinalType()

	if n.Op.IsStringOnly() && lhsType.Kind != KindString {
		return nil, &TypeMismatchError{Path: n.Path, Op: n.Op.String(), Got: lhsType}
	}

	if n.Operand.IsProperty {
		return compilePropertyComparison(path, lhsType, n.Op, shape, n.Operand.Lexeme, in, log)
	}

	return compileConstComparison(path, lhsType, n.Op, n.Operand.Lexeme, in)
}

func compileConstComparison(path *PropertyPath, lhsType FieldType, op ComparisonOp, lexeme string, in *Introspector) (func(reflect.Value) bool, error) {
	if strings.EqualFold(lexeme, "null") {
		if !lhsType.Nullable {
			return nil, &NullNotAssignableError{Lexeme: lexeme, Target: lhsType}
		}

		if op == OpEq {
			return func(v reflect.Value) bool {
				_, isNull := path.Resolve(v)
				return isNull
			}, nil
		}

		// Gt/Ge/Lt/Le/Contains/StartsWith/EndsWith against null never
		// match: there is no ordering or substring relation with the
		// absence of a value.
		return func(reflect.Value) bool { return false }, nil
	}

	constVal, err := Coerce(lexeme, lhsType)
	if err != nil {
		return nil, err
	}

	if op.IsStringOnly() {
		fn := in.StringOp(op)
		constStr, _ := constVal.(string)

		return func(v reflect.Value) bool {
			val, isNull := path.Resolve(v)
			if isNull {
				return false
			}

			return fn(val.String(), constStr)
		}, nil
	}

	return func(v reflect.Value) bool {
		val, isNull := path.Resolve(v)
		if isNull {
			return false
		}

		cmp := compareExtracted(extractOrderable(val, lhsType.Kind), constVal, lhsType.Kind)

		return applyOp(op, cmp)
	}, nil
}

func compilePropertyComparison(lhsPath *PropertyPath, lhsType FieldType, op ComparisonOp, shape reflect.Type, rhsName string, in *Introspector, log *zap.Logger) (func(reflect.Value) bool, error) {
	rhsPath, err := in.ResolvePath(shape, rhsName, log)
	if err != nil {
		return nil, err
	}

	rhsType := rhsPath.FinalType()

	if op.IsStringOnly() {
		if rhsType.Kind != KindString {
			return nil, &TypeMismatchError{Path: rhsName, Op: op.String(), Got: rhsType}
		}

		fn := in.StringOp(op)

		return func(v reflect.Value) bool {
			lv, lNull := lhsPath.Resolve(v)
			if lNull {
				return false
			}

			rv, rNull := rhsPath.Resolve(v)
			if rNull {
				return false
			}

			return fn(lv.String(), rv.String())
		}, nil
	}

	return func(v reflect.Value) bool {
		lv, lNull := lhsPath.Resolve(v)
		rv, rNull := rhsPath.Resolve(v)

		if lNull || rNull {
			if op == OpEq {
				return lNull && rNull
			}

			return false
		}

		cmp := compareExtracted(extractOrderable(lv, lhsType.Kind), extractOrderable(rv, lhsType.Kind), lhsType.Kind)

		return applyOp(op, cmp)
	}, nil
}

func applyOp(op ComparisonOp, cmp int) bool {
	switch op {
	case OpEq:
		return cmp == 0
	case OpGt:
		return cmp > 0
	case OpGe:
		return cmp >= 0
	case OpLt:
		return cmp < 0
	case OpLe:
		return cmp <= 0
	default:
		return false
	}
}

// extractOrderable pulls the comparable Go value out of a resolved
// reflect.Value, in the same representation Coerce produces for a literal
// of the same kind — int64 for every integer kind (including uint8),
// float64 for both float kinds, and the kind's own type for decimal, UUID,
// date, and string.
func extractOrderable(v reflect.Value, kind ValueKind) any {
	switch {
	case kind.IsInteger():
		if kind == KindUint8 {
			return int64(v.Uint())
		}

		return v.Int()
	case kind == KindFloat32 || kind == KindFloat64:
		return v.Float()
	case kind == KindDecimal:
		return v.Interface().(decimal.Decimal)
	case kind == KindBool:
		return v.Bool()
	case kind == KindUUID:
		return v.Interface().(uuid.UUID)
	case kind == KindDate || kind == KindDateOffset:
		return v.Interface().(time.Time)
	default:
		return v.String()
	}
}

// compareExtracted orders two values produced by extractOrderable or
// Coerce for the same kind, returning <0, 0, or >0.
func compareExtracted(a, b any, kind ValueKind) int {
	switch {
	case kind.IsInteger():
		ai, bi := a.(int64), b.(int64)

		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	case kind == KindFloat32 || kind == KindFloat64:
		af, bf := a.(float64), b.(float64)

		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	case kind == KindDecimal:
		return a.(decimal.Decimal).Cmp(b.(decimal.Decimal))
	case kind == KindBool:
		ab, bb := a.(bool), b.(bool)

		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		default:
			return 1
		}
	case kind == KindUUID:
		return strings.Compare(a.(uuid.UUID).String(), b.(uuid.UUID).String())
	case kind == KindDate || kind == KindDateOffset:
		return a.(time.Time).Compare(b.(time.Time))
	default:
		return strings.Compare(a.(string), b.(string))
	}
}
