package hashid

import (
	"errors"
	"fmt"
	"math"

	"github.com/speps/go-hashids/v2"
	"lukechampine.com/uint128"
)

// Values above math.MaxInt64 do not fit a single hashids number and are
// split into three limbs of limbBits bits each, most significant first.
const (
	limbBits  = 62
	limbCount = 3
	limbMask  = uint64(1)<<limbBits - 1
)

var errLimbs = errors.New("unexpected number of values")

// NumericCodec converts unsigned values to hash strings and back under one
// HashConfig. It is immutable and safe for concurrent use.
type NumericCodec struct {
	cfg HashConfig
	h   *hashids.HashID
}

// NewNumericCodec returns a codec bound to cfg.
// The configuration is validated the same way Build validates it.
func NewNumericCodec(cfg HashConfig) (*NumericCodec, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	data := hashids.NewData()
	data.Salt = cfg.Salt
	data.MinLength = int(cfg.MinLength)
	data.Alphabet = cfg.Alphabet

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, newConfigError(ErrInvalidConfig, "alphabet", err)
	}
	return &NumericCodec{cfg: cfg, h: h}, nil
}

// Config returns the configuration this codec is bound to.
func (c *NumericCodec) Config() HashConfig {
	return c.cfg
}

// Encode returns the hash string for v.
// The result is deterministic for a given configuration and at least
// MinLength characters long.
func (c *NumericCodec) Encode(v uint128.Uint128) (string, error) {
	var numbers []int64
	if v.Hi == 0 && v.Lo <= math.MaxInt64 {
		numbers = []int64{int64(v.Lo)}
	} else {
		numbers = make([]int64, limbCount)
		for i := limbCount - 1; i >= 0; i-- {
			numbers[i] = int64(v.Lo & limbMask)
			v = v.Rsh(limbBits)
		}
	}

	s, err := c.h.EncodeInt64(numbers)
	if err != nil {
		return "", fmt.Errorf("hashids encode: %w", err)
	}
	return s, nil
}

// Encode64 is Encode for values that fit in 64 bits.
func (c *NumericCodec) Encode64(v uint64) (string, error) {
	return c.Encode(uint128.From64(v))
}

// Decode recovers the value encoded in s.
// It returns a *DecodeError when s was not produced by Encode under this
// configuration.
func (c *NumericCodec) Decode(s string) (v uint128.Uint128, err error) {
	if s == "" {
		return uint128.Zero, &DecodeError{Input: s}
	}

	defer func() {
		if r := recover(); r != nil {
			v, err = uint128.Zero, &DecodeError{Input: s, Cause: fmt.Errorf("%v", r)}
		}
	}()

	numbers, err := c.h.DecodeInt64WithError(s)
	if err != nil {
		return uint128.Zero, &DecodeError{Input: s, Cause: err}
	}

	switch len(numbers) {
	case 1:
		if numbers[0] < 0 {
			return uint128.Zero, &DecodeError{Input: s}
		}
		return uint128.From64(uint64(numbers[0])), nil
	case limbCount:
		return c.joinLimbs(s, numbers)
	default:
		return uint128.Zero, &DecodeError{Input: s, Cause: errLimbs}
	}
}

// joinLimbs reassembles a limb-encoded value, rejecting any form Encode
// would not have produced.
func (c *NumericCodec) joinLimbs(s string, numbers []int64) (uint128.Uint128, error) {
	v := uint128.Zero
	for i, n := range numbers {
		if n < 0 || uint64(n) > limbMask {
			return uint128.Zero, &DecodeError{Input: s}
		}
		// the top limb only carries the remaining 128 - 2*62 bits
		if i == 0 && uint64(n)>>(128-(limbCount-1)*limbBits) != 0 {
			return uint128.Zero, &DecodeError{Input: s}
		}
		v = v.Lsh(limbBits).Or64(uint64(n))
	}
	if v.Hi == 0 && v.Lo <= math.MaxInt64 {
		return uint128.Zero, &DecodeError{Input: s}
	}
	return v, nil
}

// Decode64 is Decode for 64-bit destinations.
func (c *NumericCodec) Decode64(s string) (uint64, error) {
	v, err := c.Decode(s)
	if err != nil {
		return 0, err
	}
	if v.Hi != 0 {
		return 0, &RangeError{Value: v, Width: Width64}
	}
	return v.Lo, nil
}

// decodeWidth decodes s and checks the result fits w.
func (c *NumericCodec) decodeWidth(s string, w Width) (uint128.Uint128, error) {
	v, err := c.Decode(s)
	if err != nil {
		return uint128.Zero, err
	}
	if v.Cmp(w.Max()) > 0 {
		return uint128.Zero, &RangeError{Value: v, Width: w}
	}
	return v, nil
}
