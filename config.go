package hashid

import (
	"context"
	"sync"
	"sync/atomic"
	"unicode"
)

const (
	// DefaultAlphabet is the 62-character alphanumeric alphabet.
	DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"

	// DefaultMinLength is the default minimum hash string length.
	DefaultMinLength uint = 8

	// MinAlphabetLength is the fewest distinct characters an alphabet may have.
	MinAlphabetLength = 16

	// MaxMinLength bounds MinLength.
	MaxMinLength uint = 255
)

// HashConfig is the set of parameters that make encoding deterministic and
// reversible. Two codecs agree on every hash string only if their configs
// are equal.
type HashConfig struct {
	Salt      string
	MinLength uint
	Alphabet  string
}

// validate checks the invariants every published config satisfies.
func (c HashConfig) validate() error {
	if c.MinLength > MaxMinLength {
		return newConfigError(ErrMinLength, "min_length", nil)
	}

	seen := make(map[rune]struct{}, len(c.Alphabet))
	for _, r := range c.Alphabet {
		if unicode.IsSpace(r) {
			return newConfigError(ErrAlphabetSpace, "alphabet", nil)
		}
		if _, dup := seen[r]; dup {
			return newConfigError(ErrDuplicateCharacter, "alphabet", nil)
		}
		seen[r] = struct{}{}
	}
	if len(seen) < MinAlphabetLength {
		return newConfigError(ErrAlphabetTooShort, "alphabet", nil)
	}
	return nil
}

// Options builds a HashConfig and publishes it as the process-wide
// configuration.
//
//	err := hashid.NewOptions().
//	    WithSalt(os.Getenv("HASHID_SALT")).
//	    WithMinLength(10).
//	    Build()
type Options struct {
	cfg HashConfig
}

// NewOptions returns options holding the defaults: a fresh random salt,
// DefaultMinLength and DefaultAlphabet.
func NewOptions() *Options {
	return &Options{cfg: HashConfig{
		Salt:      GenerateSalt(),
		MinLength: DefaultMinLength,
		Alphabet:  DefaultAlphabet,
	}}
}

// WithSalt sets the salt.
func (o *Options) WithSalt(salt string) *Options {
	o.cfg.Salt = salt
	return o
}

// WithMinLength sets the minimum hash string length.
func (o *Options) WithMinLength(n uint) *Options {
	o.cfg.MinLength = n
	return o
}

// WithAlphabet sets the alphabet.
func (o *Options) WithAlphabet(alphabet string) *Options {
	o.cfg.Alphabet = alphabet
	return o
}

// Config validates the options and returns the resulting HashConfig
// without publishing it.
func (o *Options) Config() (HashConfig, error) {
	if err := o.cfg.validate(); err != nil {
		return HashConfig{}, err
	}
	return o.cfg, nil
}

// Build validates the options and atomically replaces the process-wide
// configuration. On error the active configuration is left untouched.
//
// Calls made while Build runs complete with whichever configuration they
// observed when they started. Hash strings issued under a previous
// configuration are not tracked and will generally fail to decode.
func (o *Options) Build() error {
	buildMu.Lock()
	defer buildMu.Unlock()

	nc, err := NewNumericCodec(o.cfg)
	if err != nil {
		return err
	}
	active.Store(nc)

	emitConfigBuilt(context.Background(), nc.cfg)
	return nil
}

var (
	active      atomic.Pointer[NumericCodec]
	buildMu     sync.Mutex
	defaultOnce sync.Once
)

// Active returns the codec for the process-wide configuration.
// If Build was never called, a default configuration with a random salt is
// created on first use.
func Active() *NumericCodec {
	if nc := active.Load(); nc != nil {
		return nc
	}
	defaultOnce.Do(func() {
		o := NewOptions()
		nc, err := NewNumericCodec(o.cfg)
		if err != nil {
			// defaults always validate
			panic(err)
		}
		active.CompareAndSwap(nil, nc)
	})
	return active.Load()
}

// Current returns the process-wide configuration.
func Current() HashConfig {
	return Active().cfg
}
