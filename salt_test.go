package hashid

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGenerateSalt(t *testing.T) {
	salt := GenerateSalt()

	if len(salt) != SaltLength {
		t.Fatalf("len(GenerateSalt()) = %d, want %d", len(salt), SaltLength)
	}
	for _, r := range salt {
		if !strings.ContainsRune(saltAlphabet, r) {
			t.Errorf("salt contains %q, want alphanumeric only", r)
		}
	}
}

func TestGenerateSalt_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := GenerateSalt()
		if seen[s] {
			t.Fatalf("GenerateSalt() repeated %q", s)
		}
		seen[s] = true
	}
}

func TestDeriveSalt(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")

	a, err := DeriveSalt(secret, "users")
	if err != nil {
		t.Fatalf("DeriveSalt() error: %v", err)
	}
	b, _ := DeriveSalt(secret, "users")
	c, _ := DeriveSalt(secret, "orders")

	if a != b {
		t.Error("DeriveSalt should be deterministic")
	}
	if a == c {
		t.Error("distinct namespaces should yield distinct salts")
	}
	if len(a) != SaltLength {
		t.Errorf("len(salt) = %d, want %d", len(a), SaltLength)
	}
	if _, err := NewOptions().WithSalt(a).Config(); err != nil {
		t.Errorf("derived salt should be a valid salt: %v", err)
	}
}

func TestDeriveSalt_WeakSecret(t *testing.T) {
	_, err := DeriveSalt([]byte("short"), "users")
	if !errors.Is(err, ErrWeakSecret) {
		t.Errorf("DeriveSalt() error = %v, want ErrWeakSecret", err)
	}
}

func TestReadSalt_ShortReader(t *testing.T) {
	if _, err := readSalt(bytes.NewReader([]byte{1, 2, 3})); err == nil {
		t.Error("readSalt should fail when the reader runs dry")
	}
}

func TestReadSalt_RejectsBiasedBytes(t *testing.T) {
	// every byte at or above the cutoff is skipped
	buf := bytes.Repeat([]byte{0xff}, SaltLength*2)
	buf = append(buf, bytes.Repeat([]byte{0}, SaltLength*2)...)

	salt, err := readSalt(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("readSalt() error: %v", err)
	}
	if want := strings.Repeat("a", SaltLength); salt != want {
		t.Errorf("readSalt() = %q, want %q", salt, want)
	}
}
