package hashid

import (
	"fmt"
	"reflect"

	"lukechampine.com/uint128"
)

// EncodeField returns the wire form of value for the field described by d:
// a string, *string, []string or *[]string depending on its cardinality.
// value must have type d.Type.
func (c *NumericCodec) EncodeField(d FieldDescriptor, value any) (any, error) {
	src := reflect.ValueOf(value)
	if !src.IsValid() {
		src = reflect.Zero(d.Type)
	}
	if src.Type() != d.Type {
		return nil, newTransformError(ErrEncode, "encode", d.Path,
			fmt.Errorf("got %s, want %s", src.Type(), d.Type))
	}
	dst := reflect.New(d.WireType()).Elem()
	if err := c.encodeField(d, src, dst); err != nil {
		return nil, err
	}
	return dst.Interface(), nil
}

// DecodeField converts a wire value back into a value of type d.Type.
// wire must have the type WireType reports, or be nil for optional and
// vector fields.
func (c *NumericCodec) DecodeField(d FieldDescriptor, wire any) (any, error) {
	src := reflect.ValueOf(wire)
	if !src.IsValid() {
		src = reflect.Zero(d.WireType())
	}
	if src.Type() != d.WireType() {
		return nil, newTransformError(ErrDecode, "decode", d.Path,
			fmt.Errorf("got %s, want %s", src.Type(), d.WireType()))
	}
	dst := reflect.New(d.Type).Elem()
	if err := c.decodeField(d, src, dst); err != nil {
		return nil, err
	}
	return dst.Interface(), nil
}

// encodeField writes the wire form of src (type d.Type) into dst
// (type d.WireType()).
func (c *NumericCodec) encodeField(d FieldDescriptor, src, dst reflect.Value) error {
	switch d.Cardinality {
	case Scalar:
		s, err := c.encodeValue(src)
		if err != nil {
			return newTransformError(ErrEncode, "encode", d.Path, err)
		}
		dst.SetString(s)

	case Optional:
		if src.IsNil() {
			dst.SetZero()
			return nil
		}
		s, err := c.encodeValue(src.Elem())
		if err != nil {
			return newTransformError(ErrEncode, "encode", d.Path, err)
		}
		dst.Set(reflect.ValueOf(&s))

	case Vector:
		out, err := c.encodeSlice(d, src)
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(out))

	case OptionalVector:
		if src.IsNil() {
			dst.SetZero()
			return nil
		}
		out, err := c.encodeSlice(d, src.Elem())
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(&out))
	}
	return nil
}

// encodeSlice encodes every element in order. A nil slice encodes to an
// empty, non-nil one so codecs emit [] rather than null.
func (c *NumericCodec) encodeSlice(d FieldDescriptor, src reflect.Value) ([]string, error) {
	out := make([]string, src.Len())
	for i := range out {
		s, err := c.encodeValue(src.Index(i))
		if err != nil {
			return nil, newTransformError(ErrEncode, "encode", fmt.Sprintf("%s[%d]", d.Path, i), err)
		}
		out[i] = s
	}
	return out, nil
}

// decodeField writes the decoded form of src (type d.WireType()) into dst
// (type d.Type). dst is only written once every element has decoded.
func (c *NumericCodec) decodeField(d FieldDescriptor, src, dst reflect.Value) error {
	elem := d.elem()

	switch d.Cardinality {
	case Scalar:
		v, err := c.decodeValue(src.String(), d.Width, elem)
		if err != nil {
			return newTransformError(ErrDecode, "decode", d.Path, err)
		}
		dst.Set(v)

	case Optional:
		if src.IsNil() {
			dst.SetZero()
			return nil
		}
		v, err := c.decodeValue(src.Elem().String(), d.Width, elem)
		if err != nil {
			return newTransformError(ErrDecode, "decode", d.Path, err)
		}
		p := reflect.New(elem)
		p.Elem().Set(v)
		dst.Set(p)

	case Vector:
		out, err := c.decodeSlice(d, src, d.Type)
		if err != nil {
			return err
		}
		dst.Set(out)

	case OptionalVector:
		if src.IsNil() {
			dst.SetZero()
			return nil
		}
		out, err := c.decodeSlice(d, src.Elem(), d.Type.Elem())
		if err != nil {
			return err
		}
		p := reflect.New(d.Type.Elem())
		p.Elem().Set(out)
		dst.Set(p)
	}
	return nil
}

// decodeSlice decodes every element of src into a new slice of sliceType.
// A nil wire slice stays nil; an empty one stays empty.
func (c *NumericCodec) decodeSlice(d FieldDescriptor, src reflect.Value, sliceType reflect.Type) (reflect.Value, error) {
	if src.IsNil() {
		return reflect.Zero(sliceType), nil
	}
	out := reflect.MakeSlice(sliceType, src.Len(), src.Len())
	for i := 0; i < src.Len(); i++ {
		v, err := c.decodeValue(src.Index(i).String(), d.Width, sliceType.Elem())
		if err != nil {
			return reflect.Value{}, newTransformError(ErrDecode, "decode", fmt.Sprintf("%s[%d]", d.Path, i), err)
		}
		out.Index(i).Set(v)
	}
	return out, nil
}

// encodeValue widens an unsigned scalar and encodes it.
func (c *NumericCodec) encodeValue(v reflect.Value) (string, error) {
	return c.Encode(widen(v))
}

// decodeValue decodes s, checks it fits w and narrows it to t.
func (c *NumericCodec) decodeValue(s string, w Width, t reflect.Type) (reflect.Value, error) {
	u, err := c.decodeWidth(s, w)
	if err != nil {
		return reflect.Value{}, err
	}
	return narrow(u, t), nil
}

// widen converts any unsigned scalar value to 128 bits.
func widen(v reflect.Value) uint128.Uint128 {
	if v.Kind() == reflect.Struct {
		return v.Convert(uint128Type).Interface().(uint128.Uint128)
	}
	return uint128.From64(v.Uint())
}

// narrow converts u to the unsigned scalar type t. Callers range check first.
func narrow(u uint128.Uint128, t reflect.Type) reflect.Value {
	if t.Kind() == reflect.Struct {
		return reflect.ValueOf(u).Convert(t)
	}
	v := reflect.New(t).Elem()
	v.SetUint(u.Lo)
	return v
}
