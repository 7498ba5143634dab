package filterexpr

import "strings"

// Serialize renders an expression tree back to filter syntax. The result
// always re-parses to a structurally identical tree — every Logical and
// Not node is wrapped in parentheses on the way out, removing any
// dependence on the reader inferring precedence the way the parser does
// on the way in. A strings.Builder-backed writer with one write method
// per AST node kind; no line-width splitting or indentation, since a
// filter expression is always a single line.
func Serialize(tree Expr) string {
	if tree == nil {
		return ""
	}

	var b strings.Builder

	s := &serializer{b: &b}
	s.writeNode(tree)

	return b.String()
}

// SerializeOrdering renders ordering clauses back to OrderBy syntax.
// "asc" is never emitted explicitly: it is the default direction, so a
// clause with no direction word re-parses to the same ascending
// OrderingClause.
func SerializeOrdering(clauses []OrderingClause) string {
	parts := make([]string, len(clauses))

	for i, c := range clauses {
		if c.Descending {
			parts[i] = c.PropertyPath + " desc"
		} else {
			parts[i] = c.PropertyPath
		}
	}

	return strings.Join(parts, ", ")
}

type serializer struct {
	b *strings.Builder
}

func (s *serializer) write(str string) {
	s.b.WriteString(str)
}

func (s *serializer) writeNode(e Expr) {
	switch n := e.(type) {
	case *Comparison:
		s.writeComparison(n)
	case *Function:
		s.writeFunction(n)
	case *Logical:
		s.write("(")
		s.writeNode(n.Left)
		s.write(" " + n.Op.String() + " ")
		s.writeNode(n.Right)
		s.write(")")
	case *Not:
		s.write("not (")
		s.writeNode(n.Inner)
		s.write(")")
	}
}

func (s *serializer) writeComparison(c *Comparison) {
	s.write(c.Path)
	s.write(" ")
	s.write(c.Op.String())
	s.write(" ")
	s.write(s.writeOperand(c.Operand))
}

func (s *serializer) writeFunction(f *Function) {
	s.write(f.Fn.String())
	s.write("(")
	s.write(f.Args[0])
	s.write(", ")
	s.write(s.writeLexeme(f.Args[1]))
	s.write(")")
}

// writeOperand renders a comparison's right-hand side: a property path is
// written bare, a literal is written through writeLexeme.
func (s *serializer) writeOperand(op Operand) string {
	if op.IsProperty {
		return op.Lexeme
	}

	return s.writeLexeme(op.Lexeme)
}

// writeLexeme renders one value lexeme the way the tokenizer would need
// to see it to classify it back as the same literal: bare for the three
// keyword values and anything that parses as a decimal number, quoted and
// escaped otherwise.
func (s *serializer) writeLexeme(lexeme string) string {
	lower := strings.ToLower(lexeme)
	if valueWords[lower] || isDecimalNumber(lexeme) {
		return lexeme
	}

	return quoteLexeme(lexeme)
}

func quoteLexeme(s string) string {
	var b strings.Builder

	b.WriteByte('\'')

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || c == '\'' {
			b.WriteByte('\\')
		}

		b.WriteByte(c)
	}

	b.WriteByte('\'')

	return b.String()
}
