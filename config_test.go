package hashid

import (
	"errors"
	"sync"
	"testing"
)

const testSalt = "test-salt-for-hashid-unit-tests"

// resetConfig drops the published configuration so the next Active call
// builds a fresh default.
func resetConfig() {
	buildMu.Lock()
	defer buildMu.Unlock()
	active.Store(nil)
	defaultOnce = sync.Once{}
}

// useConfig publishes a deterministic configuration for the duration of t.
func useConfig(t *testing.T, opts *Options) {
	t.Helper()
	if err := opts.Build(); err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	t.Cleanup(resetConfig)
}

func TestNewOptions_Defaults(t *testing.T) {
	cfg, err := NewOptions().Config()
	if err != nil {
		t.Fatalf("Config() error: %v", err)
	}
	if cfg.MinLength != DefaultMinLength {
		t.Errorf("MinLength = %d, want %d", cfg.MinLength, DefaultMinLength)
	}
	if cfg.Alphabet != DefaultAlphabet {
		t.Errorf("Alphabet = %q, want default", cfg.Alphabet)
	}
	if len(cfg.Salt) != SaltLength {
		t.Errorf("len(Salt) = %d, want %d", len(cfg.Salt), SaltLength)
	}
}

func TestNewOptions_RandomSalt(t *testing.T) {
	a, _ := NewOptions().Config()
	b, _ := NewOptions().Config()
	if a.Salt == b.Salt {
		t.Error("default salts should differ between option sets")
	}
}

func TestOptions_Config_Validation(t *testing.T) {
	tests := []struct {
		name    string
		opts    *Options
		wantErr error
	}{
		{"duplicate character", NewOptions().WithAlphabet("aabcdefghijklmnopq"), ErrDuplicateCharacter},
		{"too short", NewOptions().WithAlphabet("abcdef"), ErrAlphabetTooShort},
		{"whitespace", NewOptions().WithAlphabet("abcdefghijklmnop q"), ErrAlphabetSpace},
		{"tab", NewOptions().WithAlphabet("abcdefghijklmnop\tq"), ErrAlphabetSpace},
		{"min length", NewOptions().WithMinLength(MaxMinLength + 1), ErrMinLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.Config()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Config() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("error should match ErrInvalidConfig")
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("error is %T, want *ConfigError", err)
			}
			if ce.Option == "" {
				t.Error("ConfigError.Option should name the rejected option")
			}
		})
	}
}

func TestOptions_Config_Accepts(t *testing.T) {
	tests := []struct {
		name string
		opts *Options
	}{
		{"empty salt", NewOptions().WithSalt("")},
		{"zero min length", NewOptions().WithMinLength(0)},
		{"max min length", NewOptions().WithMinLength(MaxMinLength)},
		{"sixteen characters", NewOptions().WithAlphabet("abdegjklmnopqrvw")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.opts.Config(); err != nil {
				t.Errorf("Config() error: %v", err)
			}
		})
	}
}

func TestBuild_Publishes(t *testing.T) {
	useConfig(t, NewOptions().WithSalt(testSalt).WithMinLength(12))

	cfg := Current()
	if cfg.Salt != testSalt {
		t.Errorf("Salt = %q, want %q", cfg.Salt, testSalt)
	}
	if cfg.MinLength != 12 {
		t.Errorf("MinLength = %d, want 12", cfg.MinLength)
	}
	if Active().Config() != cfg {
		t.Error("Active().Config() should match Current()")
	}
}

func TestBuild_InvalidKeepsPrevious(t *testing.T) {
	useConfig(t, NewOptions().WithSalt(testSalt))
	before := Active()

	err := NewOptions().WithAlphabet("short").Build()
	if !errors.Is(err, ErrAlphabetTooShort) {
		t.Fatalf("Build() error = %v, want ErrAlphabetTooShort", err)
	}
	if Active() != before {
		t.Error("failed Build should not replace the active configuration")
	}
}

func TestBuild_LastWriteWins(t *testing.T) {
	useConfig(t, NewOptions().WithSalt("first"))
	if err := NewOptions().WithSalt("second").Build(); err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got := Current().Salt; got != "second" {
		t.Errorf("Salt = %q, want %q", got, "second")
	}
}

func TestActive_LazyDefault(t *testing.T) {
	resetConfig()
	t.Cleanup(resetConfig)

	nc := Active()
	if nc == nil {
		t.Fatal("Active() returned nil")
	}
	if Active() != nc {
		t.Error("Active() should return the same default on every call")
	}
	cfg := Current()
	if cfg.MinLength != DefaultMinLength || cfg.Alphabet != DefaultAlphabet {
		t.Errorf("default config = %+v", cfg)
	}
}

func TestBuild_ConcurrentReaders(t *testing.T) {
	useConfig(t, NewOptions().WithSalt("alpha").WithMinLength(8))

	valid := map[string]bool{"alpha": true, "beta": true}

	var wg sync.WaitGroup
	errs := make(chan string, 100)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				nc := Active()
				s, err := nc.Encode64(uint64(j))
				if err != nil {
					errs <- err.Error()
					return
				}
				got, err := nc.Decode64(s)
				if err != nil || got != uint64(j) {
					errs <- "round trip failed under a snapshot"
					return
				}
				if !valid[nc.Config().Salt] {
					errs <- "observed a salt that was never published"
					return
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		salt := "alpha"
		if i%2 == 0 {
			salt = "beta"
		}
		if err := NewOptions().WithSalt(salt).Build(); err != nil {
			t.Fatalf("Build() error: %v", err)
		}
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}
