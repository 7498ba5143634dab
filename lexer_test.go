package filterexpr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-filterexpr/filterexpr"
)

func TestTokenize_Basic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		kinds []filterexpr.TokenKind
	}{
		{
			name:  "simple comparison",
			input: "Age gt 30",
			kinds: []filterexpr.TokenKind{filterexpr.TokProperty, filterexpr.TokOperator, filterexpr.TokValue, filterexpr.TokEnd},
		},
		{
			name:  "quoted string value",
			input: `FirstName eq 'John'`,
			kinds: []filterexpr.TokenKind{filterexpr.TokProperty, filterexpr.TokOperator, filterexpr.TokValue, filterexpr.TokEnd},
		},
		{
			name:  "function call",
			input: "contains(Name, 'oh')",
			kinds: []filterexpr.TokenKind{
				filterexpr.TokOperator, filterexpr.TokLParen, filterexpr.TokProperty,
				filterexpr.TokComma, filterexpr.TokValue, filterexpr.TokRParen, filterexpr.TokEnd,
			},
		},
		{
			name:  "logical combination",
			input: "Age gt 30 and not Active eq false",
			kinds: []filterexpr.TokenKind{
				filterexpr.TokProperty, filterexpr.TokOperator, filterexpr.TokValue, filterexpr.TokLogical,
				filterexpr.TokLogical, filterexpr.TokProperty, filterexpr.TokOperator, filterexpr.TokValue, filterexpr.TokEnd,
			},
		},
		{
			name:  "empty input yields only TokEnd",
			input: "",
			kinds: []filterexpr.TokenKind{filterexpr.TokEnd},
		},
		{
			name:  "null keyword is a value",
			input: "MiddleName eq null",
			kinds: []filterexpr.TokenKind{filterexpr.TokProperty, filterexpr.TokOperator, filterexpr.TokValue, filterexpr.TokEnd},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			toks, err := filterexpr.Tokenize(tt.input)
			require.NoError(t, err)
			require.Len(t, toks, len(tt.kinds))

			for i, k := range tt.kinds {
				assert.Equalf(t, k, toks[i].Kind, "token %d", i)
			}
		})
	}
}

func TestTokenize_QuotedStringEscapes(t *testing.T) {
	t.Parallel()

	toks, err := filterexpr.Tokenize(`Name eq 'O\'Brien'`)
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, "O'Brien", toks[2].Lexeme)
}

func TestTokenize_CaseInsensitiveKeywords(t *testing.T) {
	t.Parallel()

	toks, err := filterexpr.Tokenize("Age GT 30 AND Age LT 50")
	require.NoError(t, err)

	assert.Equal(t, filterexpr.TokLogical, toks[3].Kind)
	assert.Equal(t, "AND", toks[3].Lexeme)
}

func TestTokenize_NumericValues(t *testing.T) {
	t.Parallel()

	for _, lit := range []string{"30", "-12", "3.14", "0"} {
		toks, err := filterexpr.Tokenize("Age eq " + lit)
		require.NoError(t, err)
		require.Len(t, toks, 4)
		assert.Equalf(t, filterexpr.TokValue, toks[2].Kind, "literal %q", lit)
	}
}
