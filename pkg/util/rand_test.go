package util

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandString(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for n := 0; n < 64; n++ {
		s := RandString(rnd, n)
		assert.Len(t, s, n)
		for _, c := range s {
			assert.True(t, strings.ContainsRune(letterBytes, c))
		}
	}
}

func TestRandKeys(t *testing.T) {
	a := RandKeys(99, 500, 6)
	b := RandKeys(99, 500, 6)
	assert.Equal(t, a, b)
	seen := make(map[string]bool, len(a))
	for _, k := range a {
		assert.False(t, seen[k], "duplicate key %q", k)
		seen[k] = true
	}
	assert.NotEqual(t, a, RandKeys(100, 500, 6))
}
