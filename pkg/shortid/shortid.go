// Package shortid generates fixed-length alphanumeric tokens for short
// file URLs, link codes and API tokens. The generator itself performs no
// uniqueness check; callers go through Unique, which retries against the
// persistent store a bounded number of times.
package shortid

import (
	"math/rand/v2"

	"sharebin/pkg/errors"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	// URLLength is the length of generated short URLs and link codes.
	URLLength = 8
	// TokenLength is the length of generated API tokens.
	TokenLength = 20
)

// MaxAttempts bounds the collision-retry loop in Unique.
const MaxAttempts = 5

// Generate returns a random alphanumeric string of length n.
// The RNG is deliberately non-cryptographic; these values are
// identifiers, not secrets.
func Generate(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}

// Unique generates candidates of length n until exists reports one as
// free, giving up after MaxAttempts. Exhausting the attempts surfaces as
// a CONFLICT error rather than silently inserting a colliding value.
func Unique(n int, exists func(string) (bool, error)) (string, error) {
	for i := 0; i < MaxAttempts; i++ {
		candidate := Generate(n)
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", errors.Conflict("Could not generate a unique identifier")
}
