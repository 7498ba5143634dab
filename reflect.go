package filterexpr

import (
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FieldDescriptor is one segment of a resolved PropertyPath: the
// reflect.StructField.Index needed to step from a parent struct value to
// this field, plus its declared name for diagnostics.
type FieldDescriptor struct {
	Name  string
	Index []int
}

// PropertyPath is a dotted property path resolved once against a
// concrete record shape into a sequence of struct field steps.
// Resolution is the expensive part (reflect.Type.FieldByName walks, plus
// case-insensitive matching); Resolve against an actual record value is
// cheap field indexing and is safe to call from many goroutines.
type PropertyPath struct {
	Shape       reflect.Type
	Dotted      string
	Descriptors []FieldDescriptor
	Final       FieldType
}

// FinalType returns the scalar type the path resolves to.
func (p *PropertyPath) FinalType() FieldType {
	return p.Final
}

// Resolve steps root (a value of p.Shape, or a pointer to it) through each
// descriptor in turn. It returns isNull=true wherever a nullable pointer
// is found nil along the way — either an intermediate embedded pointer or
// the leaf field itself. A nil intermediate pointer short-circuits the
// rest of the walk; the leaf's own nullable-ness is what coercion and
// comparison see.
func (p *PropertyPath) Resolve(root reflect.Value) (reflect.Value, bool) {
	cur := root

	for _, d := range p.Descriptors {
		if cur.Kind() == reflect.Pointer {
			if cur.IsNil() {
				return reflect.Value{}, true
			}

			cur = cur.Elem()
		}

		cur = cur.FieldByIndex(d.Index)
	}

	if cur.Kind() == reflect.Pointer {
		if cur.IsNil() {
			return reflect.Value{}, true
		}

		return cur.Elem(), false
	}

	return cur, false
}

var (
	decimalType = reflect.TypeOf(decimal.Decimal{})
	uuidType    = reflect.TypeOf(uuid.UUID{})
	timeType    = reflect.TypeOf(time.Time{})
)

// resolvePath walks a dotted path against shape, resolving each segment
// case-insensitively against the current struct's exported fields. The
// walk happens once per (shape, path) pair; results are cached by the
// Introspector in cache.go so later lookups never repeat it.
func resolvePath(shape reflect.Type, dotted string) (*PropertyPath, error) {
	segments := strings.Split(dotted, ".")

	cur := shape
	descriptors := make([]FieldDescriptor, 0, len(segments))

	var final FieldType

	for i, seg := range segments {
		structType := cur
		if structType.Kind() == reflect.Pointer {
			structType = structType.Elem()
		}

		if structType.Kind() != reflect.Struct {
			return nil, &PropertyNotFoundError{Segment: seg, Path: dotted, Shape: structType.String()}
		}

		field, ok := findFieldCaseInsensitive(structType, seg)
		if !ok {
			return nil, &PropertyNotFoundError{Segment: seg, Path: dotted, Shape: structType.Name()}
		}

		descriptors = append(descriptors, FieldDescriptor{Name: field.Name, Index: field.Index})

		last := i == len(segments)-1
		if last {
			kind, nullable, ok := classifyFieldType(field.Type)
			if !ok {
				return nil, &ErrUnsupportedFieldType{GoType: field.Type.String()}
			}

			final = FieldType{Kind: kind, Nullable: nullable}
		} else {
			cur = field.Type
		}
	}

	return &PropertyPath{Shape: shape, Dotted: dotted, Descriptors: descriptors, Final: final}, nil
}

// findFieldCaseInsensitive finds an exported struct field whose name
// matches name ignoring case. An exact-case match wins over any other
// case-insensitive match, so a shape with both "ID" and "Id" behaves
// predictably.
func findFieldCaseInsensitive(t reflect.Type, name string) (reflect.StructField, bool) {
	if f, ok := t.FieldByName(name); ok && f.IsExported() {
		return f, true
	}

	var found reflect.StructField

	ok := false

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		if strings.EqualFold(f.Name, name) {
			found = f
			ok = true

			break
		}
	}

	return found, ok
}

// classifyFieldType maps a Go field type to a ValueKind. A single level of
// pointer indirection marks the field nullable; the pointer's element
// type is classified as usual. time.Time is always classified
// KindDateOffset, since Go's time.Time always retains a location/offset —
// there is no distinct Go type for an offset-less date, so a field that
// should behave as a bare KindDate is a modeling decision left to the
// record's author, not something reflect can discover.
func classifyFieldType(t reflect.Type) (kind ValueKind, nullable bool, ok bool) {
	if t.Kind() == reflect.Pointer {
		nullable = true
		t = t.Elem()
	}

	switch {
	case t == decimalType:
		return KindDecimal, nullable, true
	case t == uuidType:
		return KindUUID, nullable, true
	case t == timeType:
		return KindDateOffset, nullable, true
	}

	switch t.Kind() {
	case reflect.Bool:
		return KindBool, nullable, true
	case reflect.Int8:
		return KindInt8, nullable, true
	case reflect.Int16:
		return KindInt16, nullable, true
	case reflect.Int32:
		return KindInt32, nullable, true
	case reflect.Int, reflect.Int64:
		return KindInt64, nullable, true
	case reflect.Uint8:
		return KindUint8, nullable, true
	case reflect.Float32:
		return KindFloat32, nullable, true
	case reflect.Float64:
		return KindFloat64, nullable, true
	case reflect.String:
		return KindString, nullable, true
	default:
		return KindInvalid, false, false
	}
}
