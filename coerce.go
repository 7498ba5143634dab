package filterexpr

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// dateLayouts are tried in order when coercing a literal against KindDate
// or KindDateOffset: RFC3339 covers the offset-bearing form, the other two
// cover the bare-date and local-datetime forms a filter author is likely
// to type by hand.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Coerce converts a literal lexeme to the Go value it denotes under
// target. The returned value's dynamic type is normalized to whatever
// extractOrderable (compile.go) would produce from a resolved field of
// the same kind, so the two meet in the middle: a coerced constant and a
// resolved field value of the same FieldType are always directly
// comparable with compareExtracted.
func Coerce(lexeme string, target FieldType) (any, error) {
	// The case-insensitive literal "null" against a nullable target
	// yields the null value; against a non-nullable target it is a
	// compile-time error.
	if strings.EqualFold(lexeme, "null") {
		if target.Nullable {
			return nil, nil
		}

		return nil, &NullNotAssignableError{Lexeme: lexeme, Target: target}
	}

	switch target.Kind {
	case KindBool:
		switch {
		case strings.EqualFold(lexeme, "true"):
			return true, nil
		case strings.EqualFold(lexeme, "false"):
			return false, nil
		default:
			return nil, &CoerceFailedError{Lexeme: lexeme, Target: target}
		}

	case KindInt8:
		v, err := strconv.ParseInt(lexeme, 10, 8)
		if err != nil {
			return nil, &CoerceFailedError{Lexeme: lexeme, Target: target, Cause: err}
		}

		return v, nil

	case KindInt16:
		v, err := strconv.ParseInt(lexeme, 10, 16)
		if err != nil {
			return nil, &CoerceFailedError{Lexeme: lexeme, Target: target, Cause: err}
		}

		return v, nil

	case KindInt32:
		v, err := strconv.ParseInt(lexeme, 10, 32)
		if err != nil {
			return nil, &CoerceFailedError{Lexeme: lexeme, Target: target, Cause: err}
		}

		return v, nil

	case KindInt64:
		v, err := strconv.ParseInt(lexeme, 10, 64)
		if err != nil {
			return nil, &CoerceFailedError{Lexeme: lexeme, Target: target, Cause: err}
		}

		return v, nil

	case KindUint8:
		v, err := strconv.ParseUint(lexeme, 10, 8)
		if err != nil {
			return nil, &CoerceFailedError{Lexeme: lexeme, Target: target, Cause: err}
		}

		return int64(v), nil

	case KindFloat32:
		v, err := strconv.ParseFloat(lexeme, 32)
		if err != nil {
			return nil, &CoerceFailedError{Lexeme: lexeme, Target: target, Cause: err}
		}

		return v, nil

	case KindFloat64:
		v, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return nil, &CoerceFailedError{Lexeme: lexeme, Target: target, Cause: err}
		}

		return v, nil

	case KindDecimal:
		v, err := decimal.NewFromString(lexeme)
		if err != nil {
			return nil, &CoerceFailedError{Lexeme: lexeme, Target: target, Cause: err}
		}

		return v, nil

	case KindUUID:
		v, err := uuid.Parse(lexeme)
		if err != nil {
			return nil, &CoerceFailedError{Lexeme: lexeme, Target: target, Cause: err}
		}

		return v, nil

	case KindDate, KindDateOffset:
		v, err := parseDate(lexeme)
		if err != nil {
			return nil, &CoerceFailedError{Lexeme: lexeme, Target: target, Cause: err}
		}

		return v, nil

	case KindString:
		return lexeme, nil

	default:
		return nil, &CoerceFailedError{Lexeme: lexeme, Target: target}
	}
}

// parseDate tries each of dateLayouts in turn, returning the first
// successful parse.
func parseDate(lexeme string) (time.Time, error) {
	var lastErr error

	for _, layout := range dateLayouts {
		v, err := time.Parse(layout, lexeme)
		if err == nil {
			return v, nil
		}

		lastErr = err
	}

	return time.Time{}, lastErr
}
