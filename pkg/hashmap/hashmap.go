package hashmap

import (
	"math"

	"github.com/scottcagno/hashtable/pkg/prime"
)

const (
	DefaultCapacity = 37
	DefaultMaxLoad  = 0.75
	DefaultMinLoad  = 0.25
)

// Entry is a key value pair stored in a table
type Entry[V any] struct {
	Key   string
	Value V
}

// Bucket is one index of a table along with the entries it currently
// holds. It is only used for diagnostic output.
type Bucket[V any] struct {
	Index   int
	Entries []Entry[V]
}

// Ratio returns count/capacity at full precision
func Ratio(count, capacity int) float64 {
	if capacity < 1 {
		return 0
	}
	return float64(count) / float64(capacity)
}

// Round2 rounds a load factor to two decimal places for reporting
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Grow returns the resize target for a table that reached its max load
func Grow(capacity int) int {
	return capacity * 2
}

// Shrink returns the resize target for a table that fell to its min load
func Shrink(capacity int) int {
	if capacity < 2 {
		return 1
	}
	return capacity / 2
}

// ShrinkTarget halves capacity until count would sit above minLoad in a
// table of the resulting prime size. A table that has just dropped to its
// min load needs one halving; a sparse table built with a large initial
// capacity may need several.
func ShrinkTarget(count, capacity int, minLoad float64) int {
	target := Shrink(capacity)
	for count > 0 && target > 1 && Ratio(count, prime.Next(target)) <= minLoad {
		target = Shrink(target)
	}
	return target
}
