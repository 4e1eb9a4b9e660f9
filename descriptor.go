package hashid

import (
	"fmt"
	"reflect"
)

// FieldDescriptor describes one marked field: where it lives in the record,
// its Go type, and how the dispatcher routes it.
type FieldDescriptor struct {
	Name        string       // Go field name
	Path        string       // dotted path from the record root, e.g. "Owner.ID"
	Type        reflect.Type // declared Go type of the field
	Width       Width
	Cardinality Cardinality
}

// Wire types produced by the dispatcher for each cardinality.
var (
	stringType         = reflect.TypeFor[string]()
	stringPtrType      = reflect.TypeFor[*string]()
	stringSliceType    = reflect.TypeFor[[]string]()
	stringSlicePtrType = reflect.TypeFor[*[]string]()
)

// WireType returns the type a marked field takes on the wire.
func (d FieldDescriptor) WireType() reflect.Type {
	switch d.Cardinality {
	case Optional:
		return stringPtrType
	case Vector:
		return stringSliceType
	case OptionalVector:
		return stringSlicePtrType
	default:
		return stringType
	}
}

// elem returns the unsigned scalar type inside the field type.
func (d FieldDescriptor) elem() reflect.Type {
	switch d.Cardinality {
	case Optional, Vector:
		return d.Type.Elem()
	case OptionalVector:
		return d.Type.Elem().Elem()
	default:
		return d.Type
	}
}

func (d FieldDescriptor) String() string {
	return fmt.Sprintf("%s %s %s", d.Path, d.Cardinality, d.Width)
}

// Describe resolves the descriptor for a struct field, regardless of its tag.
// Types other than N, *N, []N and *[]N over an unsigned N yield a *TypeError.
func Describe(sf reflect.StructField) (FieldDescriptor, error) {
	return describe(sf.Name, sf.Name, sf.Type)
}

// describe classifies t, which belongs to the field at path.
func describe(name, path string, t reflect.Type) (FieldDescriptor, error) {
	d := FieldDescriptor{Name: name, Path: path, Type: t}

	scalar := t
	switch {
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Slice:
		d.Cardinality = OptionalVector
		scalar = t.Elem().Elem()
	case t.Kind() == reflect.Pointer:
		d.Cardinality = Optional
		scalar = t.Elem()
	case t.Kind() == reflect.Slice:
		d.Cardinality = Vector
		scalar = t.Elem()
	default:
		d.Cardinality = Scalar
	}

	w, ok := widthOf(scalar)
	if !ok {
		return FieldDescriptor{}, &TypeError{Field: path, Type: t, Reason: unsupportedReason(scalar)}
	}
	d.Width = w
	return d, nil
}

// unsupportedReason names the problem with a scalar type for error messages.
func unsupportedReason(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "signed integers are not supported"
	case reflect.Float32, reflect.Float64:
		return "floating point is not supported"
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map:
		return "only N, *N, []N and *[]N are supported"
	}
	return "want an unsigned integer"
}
