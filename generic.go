package hashid

import (
	"fmt"
	"reflect"
)

// Unsigned is the set of scalar types the typed helpers accept.
// 128-bit values go through NumericCodec.Encode and Decode directly.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr
}

// The typed helpers below use the process-wide configuration. They are
// meant for hand-written MarshalJSON/UnmarshalJSON methods and similar
// hooks where a Processor does not fit.

// EncodeScalar returns the hash string for n.
func EncodeScalar[N Unsigned](n N) (string, error) {
	return Active().Encode64(uint64(n))
}

// DecodeScalar decodes s into N, failing with a *RangeError when the value
// does not fit.
func DecodeScalar[N Unsigned](s string) (N, error) {
	return decodeScalar[N](Active(), s)
}

// EncodeOptional encodes n, mapping nil to nil.
func EncodeOptional[N Unsigned](n *N) (*string, error) {
	if n == nil {
		return nil, nil
	}
	s, err := EncodeScalar(*n)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DecodeOptional decodes s, mapping nil to nil.
func DecodeOptional[N Unsigned](s *string) (*N, error) {
	if s == nil {
		return nil, nil
	}
	n, err := DecodeScalar[N](*s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// EncodeVector encodes each element in order. The result is never nil.
func EncodeVector[N Unsigned](ns []N) ([]string, error) {
	nc := Active()
	out := make([]string, len(ns))
	for i, n := range ns {
		s, err := nc.Encode64(uint64(n))
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

// DecodeVector decodes each element in order. If any element fails, no
// slice is returned.
func DecodeVector[N Unsigned](ss []string) ([]N, error) {
	if ss == nil {
		return nil, nil
	}
	nc := Active()
	out := make([]N, len(ss))
	for i, s := range ss {
		n, err := decodeScalar[N](nc, s)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}

func decodeScalar[N Unsigned](nc *NumericCodec, s string) (N, error) {
	w, _ := widthOf(reflect.TypeFor[N]())
	v, err := nc.decodeWidth(s, w)
	if err != nil {
		return 0, err
	}
	return N(v.Lo), nil
}
