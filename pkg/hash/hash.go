package hash

import (
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

var (
	ErrUnknownHash = errors.New("hash: unknown hash function")
	ErrInvalidIPv4 = errors.New("hash: invalid ipv4 address")
)

const (
	NameSum        = "sum"
	NamePolynomial = "polynomial"
	NameXXHash     = "xxhash"
)

// Func maps a key onto a bucket index in the range [0, capacity). Every
// Func must be a pure function of its two arguments.
type Func func(key string, capacity int) int

// bound keeps a modulus usable for tables that have not been sized yet
func bound(capacity int) int {
	if capacity < 1 {
		return 1
	}
	return capacity
}

// SumCodepoints adds up the unicode code point of every character in the key.
// It distributes poorly, which is exactly what makes it useful for building
// colliding keys on purpose.
func SumCodepoints(key string, capacity int) int {
	var sum int
	for _, r := range key {
		sum += int(r)
	}
	return sum % bound(capacity)
}

// Polynomial is a djb2 style rolling hash. The accumulator is wrapped to a
// signed 32-bit integer and made non-negative after every character.
func Polynomial(key string, capacity int) int {
	var h int64
	for _, r := range key {
		x := int32(uint32(h))
		h = int64(int32(uint32(int64(x<<5) + h + int64(r))))
		if h < 0 {
			h = -h
		}
	}
	return int(h % int64(bound(capacity)))
}

// XXHash reduces the 64-bit xxhash digest of the key
func XXHash(key string, capacity int) int {
	return int(xxhash.Sum64String(key) % uint64(bound(capacity)))
}

// ByName returns the hash function registered under name. An empty
// name selects Polynomial.
func ByName(name string) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NamePolynomial:
		return Polynomial, nil
	case NameSum:
		return SumCodepoints, nil
	case NameXXHash:
		return XXHash, nil
	}
	return nil, errors.Wrapf(ErrUnknownHash, "%q", name)
}
