package filterexpr_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-filterexpr/filterexpr"
)

func TestCoerce_Scalars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		lexeme string
		target filterexpr.FieldType
		want   any
	}{
		{"bool true", "true", filterexpr.FieldType{Kind: filterexpr.KindBool}, true},
		{"bool false case-insensitive", "FALSE", filterexpr.FieldType{Kind: filterexpr.KindBool}, false},
		{"int8", "12", filterexpr.FieldType{Kind: filterexpr.KindInt8}, int64(12)},
		{"int32 negative", "-500", filterexpr.FieldType{Kind: filterexpr.KindInt32}, int64(-500)},
		{"uint8", "200", filterexpr.FieldType{Kind: filterexpr.KindUint8}, int64(200)},
		{"float64", "3.14", filterexpr.FieldType{Kind: filterexpr.KindFloat64}, 3.14},
		{"string passthrough", "hello", filterexpr.FieldType{Kind: filterexpr.KindString}, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := filterexpr.Coerce(tt.lexeme, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce_Decimal(t *testing.T) {
	t.Parallel()

	got, err := filterexpr.Coerce("19.99", filterexpr.FieldType{Kind: filterexpr.KindDecimal})
	require.NoError(t, err)

	want := decimal.RequireFromString("19.99")
	assert.True(t, want.Equal(got.(decimal.Decimal)))
}

func TestCoerce_UUID(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	got, err := filterexpr.Coerce(id.String(), filterexpr.FieldType{Kind: filterexpr.KindUUID})
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestCoerce_Date(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		lexeme string
	}{
		{"rfc3339", "2024-03-15T10:30:00Z"},
		{"local datetime", "2024-03-15T10:30:00"},
		{"bare date", "2024-03-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := filterexpr.Coerce(tt.lexeme, filterexpr.FieldType{Kind: filterexpr.KindDateOffset})
			require.NoError(t, err)
			assert.IsType(t, time.Time{}, got)
		})
	}
}

func TestCoerce_NullHandling(t *testing.T) {
	t.Parallel()

	got, err := filterexpr.Coerce("null", filterexpr.FieldType{Kind: filterexpr.KindString, Nullable: true})
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = filterexpr.Coerce("null", filterexpr.FieldType{Kind: filterexpr.KindString})
	require.Error(t, err)

	var nullErr *filterexpr.NullNotAssignableError
	assert.ErrorAs(t, err, &nullErr)
}

func TestCoerce_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		lexeme string
		target filterexpr.FieldType
	}{
		{"not a bool", "maybe", filterexpr.FieldType{Kind: filterexpr.KindBool}},
		{"not an int", "abc", filterexpr.FieldType{Kind: filterexpr.KindInt32}},
		{"int8 overflow", "500", filterexpr.FieldType{Kind: filterexpr.KindInt8}},
		{"not a uuid", "not-a-uuid", filterexpr.FieldType{Kind: filterexpr.KindUUID}},
		{"not a date", "not-a-date", filterexpr.FieldType{Kind: filterexpr.KindDateOffset}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := filterexpr.Coerce(tt.lexeme, tt.target)
			require.Error(t, err)

			var coerceErr *filterexpr.CoerceFailedError
			assert.ErrorAs(t, err, &coerceErr)
		})
	}
}
