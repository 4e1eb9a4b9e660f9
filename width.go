package hashid

import (
	"math"
	"math/bits"
	"reflect"
	"strconv"

	"lukechampine.com/uint128"
)

// Width is the bit width of an unsigned field.
type Width uint8

const (
	Width8       Width = 8
	Width16      Width = 16
	Width32      Width = 32
	Width64      Width = 64
	Width128     Width = 128
	WidthPointer Width = 0 // uint and uintptr; size follows the platform
)

// validWidths contains all widths a field may declare.
var validWidths = map[Width]bool{
	Width8:       true,
	Width16:      true,
	Width32:      true,
	Width64:      true,
	Width128:     true,
	WidthPointer: true,
}

// IsValidWidth returns true if w is a supported field width.
func IsValidWidth(w Width) bool {
	return validWidths[w]
}

// Bits returns the number of bits the width holds on this platform.
func (w Width) Bits() int {
	if w == WidthPointer {
		return bits.UintSize
	}
	return int(w)
}

// Max returns the largest value representable at this width.
func (w Width) Max() uint128.Uint128 {
	switch w {
	case Width8:
		return uint128.From64(math.MaxUint8)
	case Width16:
		return uint128.From64(math.MaxUint16)
	case Width32:
		return uint128.From64(math.MaxUint32)
	case Width64:
		return uint128.From64(math.MaxUint64)
	case Width128:
		return uint128.Max
	default:
		return uint128.From64(uint64(^uint(0)))
	}
}

func (w Width) String() string {
	if w == WidthPointer {
		return "uint"
	}
	return "uint" + strconv.Itoa(int(w))
}

// ParseWidth parses a width name such as "8", "64", "u32", "uint16" or "ptr".
func ParseWidth(s string) (Width, bool) {
	switch s {
	case "8", "u8", "uint8":
		return Width8, true
	case "16", "u16", "uint16":
		return Width16, true
	case "32", "u32", "uint32":
		return Width32, true
	case "64", "u64", "uint64":
		return Width64, true
	case "128", "u128", "uint128":
		return Width128, true
	case "ptr", "usize", "uint", "uintptr":
		return WidthPointer, true
	}
	return 0, false
}

// Cardinality describes how many values a field holds.
type Cardinality uint8

const (
	// Scalar is a plain unsigned value: N.
	Scalar Cardinality = iota
	// Optional is a value that may be absent: *N.
	Optional
	// Vector is an ordered sequence of values: []N.
	Vector
	// OptionalVector is a sequence that may be absent: *[]N.
	OptionalVector
)

func (c Cardinality) String() string {
	switch c {
	case Scalar:
		return "scalar"
	case Optional:
		return "optional"
	case Vector:
		return "vector"
	case OptionalVector:
		return "optional vector"
	}
	return "cardinality(" + strconv.Itoa(int(c)) + ")"
}

var uint128Type = reflect.TypeFor[uint128.Uint128]()

// widthOf resolves the width of an unsigned scalar type.
func widthOf(t reflect.Type) (Width, bool) {
	if t == uint128Type || (t.Kind() == reflect.Struct && t.ConvertibleTo(uint128Type)) {
		return Width128, true
	}
	switch t.Kind() {
	case reflect.Uint8:
		return Width8, true
	case reflect.Uint16:
		return Width16, true
	case reflect.Uint32:
		return Width32, true
	case reflect.Uint64:
		return Width64, true
	case reflect.Uint, reflect.Uintptr:
		return WidthPointer, true
	}
	return 0, false
}
