// Package password provides one-way credential encoding backed by bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Encoder hashes plaintext passwords with bcrypt. Each Encode call draws a
// fresh salt, so encoding the same plaintext twice yields different hashes.
type Encoder struct {
	cost int
}

// NewEncoder returns an Encoder with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to the library default.
func NewEncoder(cost int) *Encoder {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Encoder{cost: cost}
}

// Encode returns the bcrypt hash of plaintext. The plaintext is never
// retained or logged. Failure here is fatal to the calling operation and is
// not retried.
func (e *Encoder) Encode(plaintext string) (string, error) {
	if plaintext == "" {
		return "", fmt.Errorf("encode: empty password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), e.cost)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. bcrypt recovers the salt
// from the hash and compares in constant time.
func (e *Encoder) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
