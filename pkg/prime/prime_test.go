package prime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPrime(t *testing.T) {
	primes := []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73, 79}
	set := make(map[int]bool, len(primes))
	for _, p := range primes {
		set[p] = true
	}
	for n := -3; n <= 80; n++ {
		assert.Equal(t, set[n], IsPrime(n), "n=%d", n)
	}
	assert.True(t, IsPrime(7919))
	assert.False(t, IsPrime(7917))
}

func TestNext(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-10, 2},
		{0, 2},
		{1, 2},
		{2, 2},
		{4, 5},
		{18, 19},
		{37, 37},
		{74, 79},
		{79, 79},
		{80, 83},
		{158, 163},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Next(tt.in), "Next(%d)", tt.in)
	}
}

func TestNext_AlwaysPrimeAndNotSmaller(t *testing.T) {
	for n := 1; n < 2000; n++ {
		p := Next(n)
		assert.True(t, IsPrime(p))
		assert.GreaterOrEqual(t, p, n)
		for q := n; q < p; q++ {
			assert.False(t, IsPrime(q), "skipped prime %d before %d", q, p)
		}
	}
}
