package filterexpr

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Span is the source range of one token or node: a start position for
// diagnostics, plus an end position so multi-token nodes (comparisons,
// function calls) can still report a full range when useful.
type Span struct {
	Start lexer.Position
	End   lexer.Position
}

// TokenKind classifies one lexeme produced by the filter tokenizer. The
// parser relies entirely on Kind and never re-lexes.
type TokenKind int

// Token kinds.
const (
	TokEnd TokenKind = iota
	TokProperty
	TokOperator
	TokValue
	TokLogical
	TokLParen
	TokRParen
	TokComma
)

func (k TokenKind) String() string {
	switch k {
	case TokEnd:
		return "end"
	case TokProperty:
		return "property"
	case TokOperator:
		return "operator"
	case TokValue:
		return "value"
	case TokLogical:
		return "logical"
	case TokLParen:
		return "("
	case TokRParen:
		return ")"
	case TokComma:
		return ","
	default:
		return "unknown"
	}
}

// Token is a classified lexeme. Values retain their original spelling for
// diagnostics; operator/logical lexemes are normalized to lower case only
// when the parser consumes them onto the AST.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Pos    lexer.Position
}

// ComparisonOp is one of the nine comparison operators the grammar
// supports. The last three double as StringFn values in prefix
// function-call form.
type ComparisonOp int

// Comparison operators.
const (
	OpEq ComparisonOp = iota
	OpNe
	OpGt
	OpGe
	OpLt
	OpLe
	OpContains
	OpStartsWith
	OpEndsWith
)

// String returns the canonical lower-case spelling, the same spelling the
// comparisonOps keyword table uses; the serializer and diagnostics use it.
func (op ComparisonOp) String() string {
	switch op {
	case OpEq:
		return "eq"
	case OpNe:
		return "ne"
	case OpGt:
		return "gt"
	case OpGe:
		return "ge"
	case OpLt:
		return "lt"
	case OpLe:
		return "le"
	case OpContains:
		return "contains"
	case OpStartsWith:
		return "startswith"
	case OpEndsWith:
		return "endswith"
	default:
		return "?"
	}
}

// IsStringOnly reports whether op is one of the three operators that are
// only valid against a string-typed operand.
func (op ComparisonOp) IsStringOnly() bool {
	return op == OpContains || op == OpStartsWith || op == OpEndsWith
}

// StringFn is the subset of ComparisonOp usable in prefix function-call
// form: fn(path, literal). Values match the corresponding ComparisonOp.
type StringFn = ComparisonOp

// comparisonOps maps lower-cased keyword spellings to operators; shared by
// the tokenizer (classification) and the parser (operator lookup).
var comparisonOps = map[string]ComparisonOp{
	"eq":         OpEq,
	"ne":         OpNe,
	"gt":         OpGt,
	"ge":         OpGe,
	"lt":         OpLt,
	"le":         OpLe,
	"contains":   OpContains,
	"startswith": OpStartsWith,
	"endswith":   OpEndsWith,
}

// stringFns is the restriction of comparisonOps to the three functions
// usable in prefix call form, keyed the same way.
var stringFns = map[string]StringFn{
	"contains":   OpContains,
	"startswith": OpStartsWith,
	"endswith":   OpEndsWith,
}

// LogicalOp distinguishes "and" from "or" in a Logical node.
type LogicalOp int

// Logical operators.
const (
	LogAnd LogicalOp = iota
	LogOr
)

func (op LogicalOp) String() string {
	if op == LogOr {
		return "or"
	}

	return "and"
}

// Operand is the right-hand side of a Comparison: either a literal value
// lexeme or a reference to another property path. The parser sets
// IsProperty from the token kind; the compiler then resolves a property
// or coerces a literal accordingly.
type Operand struct {
	IsProperty bool
	Lexeme     string
}

// Expr is the tagged-sum interface implemented by the four expression
// tree variants this grammar defines. Every walk (compiler, serializer)
// is an exhaustive type switch over these four concrete types — no fifth
// variant is ever added without updating every switch.
type Expr interface {
	Span() Span
	exprNode()
}

// Comparison is `path op value` in infix form, e.g. `Age eq 30` or
// `FirstName startswith 'J'`.
type Comparison struct {
	Pos     Span
	Path    string
	Op      ComparisonOp
	Operand Operand
}

func (c *Comparison) Span() Span { return c.Pos }
func (c *Comparison) exprNode()  {}

// Function is the prefix call form `fn(path, literal)` for the three
// string predicates. Semantically identical to the corresponding
// Comparison node in infix form.
type Function struct {
	Pos  Span
	Fn   StringFn
	Args []string // always length 2: property path, literal lexeme.
}

func (f *Function) Span() Span { return f.Pos }
func (f *Function) exprNode()  {}

// Logical is a short-circuiting `and`/`or` node. Associativity is left;
// And binds tighter than Or.
type Logical struct {
	Pos         Span
	Op          LogicalOp
	Left, Right Expr
}

func (l *Logical) Span() Span { return l.Pos }
func (l *Logical) exprNode()  {}

// Not negates its inner expression; binds tighter than And and Or.
type Not struct {
	Pos   Span
	Inner Expr
}

func (n *Not) Span() Span { return n.Pos }
func (n *Not) exprNode()  {}

// OrderingClause is one `path [asc|desc]` element of an OrderBy
// expression. Immutable once built; PropertyPath preserves the caller's
// case even though resolution against a shape is case-insensitive.
type OrderingClause struct {
	PropertyPath string
	Descending   bool
}
