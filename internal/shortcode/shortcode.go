// Package shortcode produces and validates short codes for links.
//
// Generation is pure and stateless; global uniqueness is a commit-time
// contract arbitrated by the store's unique index. Callers retry with a fresh
// candidate when the store reports a collision.
package shortcode

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	// GeneratedLength is the length of auto-generated codes.
	GeneratedLength = 8

	// MinLength and MaxLength bound caller-supplied custom codes.
	MinLength = 6
	MaxLength = 8

	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Validation errors.
var (
	ErrInvalidLength = errors.New("short code must be 6-8 characters")
	ErrInvalidChars  = errors.New("short code must be alphanumeric")
	ErrReserved      = errors.New("short code is reserved")
)

// reservedCodes are codes that collide with system routes and can never be
// issued or chosen.
var reservedCodes = map[string]bool{
	"links":   true,
	"healthz": true,
	"readyz":  true,
	"metrics": true,
	"api":     true,
	"admin":   true,
	"static":  true,
	"assets":  true,
}

// Generate returns a random candidate code of GeneratedLength characters
// drawn from the alphanumeric alphabet using crypto/rand.
func Generate() string {
	b := make([]byte, GeneratedLength)
	for i := range b {
		idx, err := cryptoRandInt(len(alphabet))
		if err != nil {
			// crypto/rand failure is effectively unreachable
			idx = 0
		}
		b[i] = alphabet[idx]
	}
	return string(b)
}

// Validate checks a caller-supplied custom code: 6-8 alphanumeric characters,
// not a reserved system route.
func Validate(code string) error {
	if len(code) < MinLength || len(code) > MaxLength {
		return ErrInvalidLength
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			continue
		}
		return ErrInvalidChars
	}
	if reservedCodes[code] {
		return ErrReserved
	}
	return nil
}

// cryptoRandInt returns a cryptographically secure random integer in [0, max).
func cryptoRandInt(max int) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}
