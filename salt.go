package hashid

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// SaltLength is the length of generated and derived salts.
	SaltLength = 32

	// MinSecretLength is the shortest secret DeriveSalt accepts.
	MinSecretLength = 16

	saltAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// largest multiple of len(saltAlphabet) that fits in a byte; bytes at or
	// above it are rejected to keep the distribution uniform
	saltCutoff = 256 - 256%len(saltAlphabet)
)

// GenerateSalt returns a random alphanumeric salt read from crypto/rand.
func GenerateSalt() string {
	salt, err := readSalt(rand.Reader)
	if err != nil {
		// crypto/rand does not fail on supported platforms
		panic(fmt.Sprintf("hashid: read random salt: %v", err))
	}
	return salt
}

// DeriveSalt deterministically derives a salt from a master secret and a
// namespace using HKDF-SHA256. Distinct namespaces yield unrelated salts,
// so one secret can serve several independent id spaces.
func DeriveSalt(secret []byte, namespace string) (string, error) {
	if len(secret) < MinSecretLength {
		return "", fmt.Errorf("%w: need at least %d bytes, got %d", ErrWeakSecret, MinSecretLength, len(secret))
	}
	r := hkdf.New(sha256.New, secret, nil, []byte("hashid salt:"+namespace))
	return readSalt(r)
}

// readSalt maps bytes from r onto saltAlphabet by rejection sampling.
func readSalt(r io.Reader) (string, error) {
	out := make([]byte, 0, SaltLength)
	buf := make([]byte, SaltLength*2)
	for len(out) < SaltLength {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= saltCutoff {
				continue
			}
			out = append(out, saltAlphabet[int(b)%len(saltAlphabet)])
			if len(out) == SaltLength {
				break
			}
		}
	}
	return string(out), nil
}
