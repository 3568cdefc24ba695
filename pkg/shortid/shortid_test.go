package shortid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "sharebin/pkg/errors"
)

func TestGenerateLengthAndAlphabet(t *testing.T) {
	for _, n := range []int{URLLength, TokenLength} {
		s := Generate(n)
		assert.Len(t, s, n)
		for _, r := range s {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q", r)
		}
	}
}

func TestGenerateNotConstant(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[Generate(TokenLength)] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestUniqueReturnsFirstFree(t *testing.T) {
	calls := 0
	code, err := Unique(URLLength, func(string) (bool, error) {
		calls++
		return calls < 3, nil // first two candidates collide
	})
	assert.NoError(t, err)
	assert.Len(t, code, URLLength)
	assert.Equal(t, 3, calls)
}

func TestUniqueExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := Unique(URLLength, func(string) (bool, error) {
		calls++
		return true, nil
	})
	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, "CONFLICT"))
	assert.Equal(t, MaxAttempts, calls)
}
