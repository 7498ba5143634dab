package filterexpr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/go-filterexpr/filterexpr"
)

func TestParseOrdering_Basic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []filterexpr.OrderingClause
	}{
		{
			name:  "single property default ascending",
			input: "LastName",
			want:  []filterexpr.OrderingClause{{PropertyPath: "LastName"}},
		},
		{
			name:  "explicit asc",
			input: "LastName asc",
			want:  []filterexpr.OrderingClause{{PropertyPath: "LastName"}},
		},
		{
			name:  "explicit desc",
			input: "Age desc",
			want:  []filterexpr.OrderingClause{{PropertyPath: "Age", Descending: true}},
		},
		{
			name:  "full word ascending/descending",
			input: "LastName ascending, Age descending",
			want: []filterexpr.OrderingClause{
				{PropertyPath: "LastName"},
				{PropertyPath: "Age", Descending: true},
			},
		},
		{
			name:  "case-insensitive direction",
			input: "Age DESC",
			want:  []filterexpr.OrderingClause{{PropertyPath: "Age", Descending: true}},
		},
		{
			name:  "tolerates stray whitespace and empty clauses",
			input: "  LastName desc ,, Age  ",
			want: []filterexpr.OrderingClause{
				{PropertyPath: "LastName", Descending: true},
				{PropertyPath: "Age"},
			},
		},
		{
			name:  "empty input",
			input: "   ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := filterexpr.ParseOrdering(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrdering_InvalidDirection(t *testing.T) {
	t.Parallel()

	_, err := filterexpr.ParseOrdering("Age updown")
	require.Error(t, err)

	var dirErr *filterexpr.InvalidDirectionError
	assert.ErrorAs(t, err, &dirErr)
}

type record struct {
	Name string
	Age  int32
}

func TestCompileOrdering_PrimaryAndSecondaryKeys(t *testing.T) {
	t.Parallel()

	records := []record{
		{Name: "Bob", Age: 40},
		{Name: "Alice", Age: 40},
		{Name: "Alice", Age: 25},
	}

	clauses, err := filterexpr.ParseOrdering("Age desc, Name asc")
	require.NoError(t, err)

	less, err := filterexpr.CompileOrdering[record](clauses, filterexpr.NewIntrospector(), zap.NewNop())
	require.NoError(t, err)

	sorted := append([]record(nil), records...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if less(sorted[j], sorted[i]) < 0 {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}

	want := []record{
		{Name: "Alice", Age: 40},
		{Name: "Bob", Age: 40},
		{Name: "Alice", Age: 25},
	}
	assert.Equal(t, want, sorted)
}

func TestCompileOrdering_EmptyClausesIsNoOp(t *testing.T) {
	t.Parallel()

	less, err := filterexpr.CompileOrdering[record](nil, filterexpr.NewIntrospector(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, less(record{Name: "A"}, record{Name: "B"}))
}

func TestSerializeOrdering_RoundTrip(t *testing.T) {
	t.Parallel()

	clauses := []filterexpr.OrderingClause{
		{PropertyPath: "Age", Descending: true},
		{PropertyPath: "Name"},
	}

	rendered := filterexpr.SerializeOrdering(clauses)

	reparsed, err := filterexpr.ParseOrdering(rendered)
	require.NoError(t, err)
	assert.Equal(t, clauses, reparsed)
}
