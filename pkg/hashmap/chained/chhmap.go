package chained

import (
	"github.com/scottcagno/hashtable/pkg/hash"
	"github.com/scottcagno/hashtable/pkg/hashmap"
	"github.com/scottcagno/hashtable/pkg/prime"
	"go.uber.org/zap"
)

// bucket represents a single slot in the HashTable. Entries keep the
// order they were appended in.
type bucket[V any] []hashmap.Entry[V]

// index returns the position of key in the bucket, or -1
func (b bucket[V]) index(key string) int {
	for i := range b {
		if b[i].Key == key {
			return i
		}
	}
	return -1
}

// insert appends a new entry, or overwrites the value of an existing
// one in place and returns the previous value along with true
func (b *bucket[V]) insert(key string, val V) (V, bool) {
	if i := b.index(key); i > -1 {
		prev := (*b)[i].Value
		(*b)[i].Value = val
		return prev, true
	}
	*b = append(*b, hashmap.Entry[V]{Key: key, Value: val})
	return *new(V), false
}

func (b bucket[V]) search(key string) (V, bool) {
	if i := b.index(key); i > -1 {
		return b[i].Value, true
	}
	return *new(V), false
}

func (b bucket[V]) scan(it func(key string, val V) bool) bool {
	for i := range b {
		if !it(b[i].Key, b[i].Value) {
			return false
		}
	}
	return true
}

// delete removes key, shifting the entries behind it down by one
func (b *bucket[V]) delete(key string) (V, bool) {
	i := b.index(key)
	if i < 0 {
		return *new(V), false
	}
	ret := (*b)[i].Value
	last := len(*b) - 1
	copy((*b)[i:], (*b)[i+1:])
	(*b)[last] = hashmap.Entry[V]{}
	*b = (*b)[:last]
	return ret, true
}

// HashTable is a separate chaining hash table. Every bucket owns a
// slice of entries and collisions are appended to it.
type HashTable[V any] struct {
	hash       hash.Func
	conf       *hashmap.Config
	log        *zap.Logger
	count      int
	resizes    int
	collisions int
	buckets    []bucket[V]
}

// NewHashTable returns a new HashTable with the default settings and the
// specified number of buckets, or the default capacity if size is not positive
func NewHashTable[V any](size int) *HashTable[V] {
	// the default names always resolve
	conf, _ := hashmap.CheckConfig(&hashmap.Config{InitialCapacity: size})
	ht, _ := NewHashTableWithConfig[V](conf)
	return ht
}

// NewHashTableWithConfig returns a new HashTable using the supplied config
func NewHashTableWithConfig[V any](conf *hashmap.Config) (*HashTable[V], error) {
	conf, err := hashmap.CheckConfig(conf)
	if err != nil {
		return nil, err
	}
	fn, err := conf.HashFunc()
	if err != nil {
		return nil, err
	}
	return newHashTable[V](conf.InitialCapacity, conf, fn), nil
}

// newHashTable is the internal variant and expects a checked config
func newHashTable[V any](capacity int, conf *hashmap.Config, fn hash.Func) *HashTable[V] {
	return &HashTable[V]{
		hash:    fn,
		conf:    conf,
		log:     conf.Logger,
		buckets: make([]bucket[V], capacity),
	}
}

// resize rebuilds the table with a prime number of buckets no smaller than
// target. Entries are re-inserted in bucket order and the new table is
// swapped in with a single assignment.
func (t *HashTable[V]) resize(target int) {
	capacity := prime.Next(target)
	if capacity == len(t.buckets) {
		return
	}
	t.log.Debug("resizing table",
		zap.Int("old_capacity", len(t.buckets)),
		zap.Int("new_capacity", capacity),
		zap.Int("entries", t.count),
		zap.Float64("load", t.Load()),
	)
	newHT := newHashTable[V](capacity, t.conf, t.hash)
	newHT.resizes = t.resizes + 1
	newHT.collisions = t.collisions
	for i := range t.buckets {
		for _, e := range t.buckets[i] {
			newHT.insert(e.Key, e.Value)
		}
	}
	*t = *newHT
}

// insert places the entry without checking the load factor
func (t *HashTable[V]) insert(key string, val V) (V, bool) {
	b := &t.buckets[t.hash(key, len(t.buckets))]
	prev, ok := b.insert(key, val)
	if !ok {
		t.count++
		if len(*b) > 1 {
			t.collisions++
		}
	}
	return prev, ok
}

// Set inserts or overwrites a key. It returns the previous value and true
// if the key was already present.
func (t *HashTable[V]) Set(key string, val V) (V, bool) {
	prev, ok := t.insert(key, val)
	if !ok && t.ratio() >= t.conf.MaxLoad {
		t.resize(hashmap.Grow(len(t.buckets)))
	}
	return prev, ok
}

// Get returns the value for key, or false if none could be found
func (t *HashTable[V]) Get(key string) (V, bool) {
	return t.buckets[t.hash(key, len(t.buckets))].search(key)
}

// Remove deletes key and reports whether it was present
func (t *HashTable[V]) Remove(key string) bool {
	if _, ok := t.buckets[t.hash(key, len(t.buckets))].delete(key); !ok {
		return false
	}
	t.count--
	if t.ratio() <= t.conf.MinLoad {
		t.resize(hashmap.ShrinkTarget(t.count, len(t.buckets), t.conf.MinLoad))
	}
	return true
}

// Range calls it for every entry in bucket order until it returns false.
// Set and Remove must not be called while ranging.
func (t *HashTable[V]) Range(it func(key string, val V) bool) {
	for i := range t.buckets {
		if !t.buckets[i].scan(it) {
			return
		}
	}
}

// Display returns a copy of every non-empty bucket in index order
func (t *HashTable[V]) Display() []hashmap.Bucket[V] {
	var out []hashmap.Bucket[V]
	for i := range t.buckets {
		if len(t.buckets[i]) == 0 {
			continue
		}
		entries := make([]hashmap.Entry[V], len(t.buckets[i]))
		copy(entries, t.buckets[i])
		out = append(out, hashmap.Bucket[V]{Index: i, Entries: entries})
	}
	return out
}

func (t *HashTable[V]) ratio() float64 {
	return hashmap.Ratio(t.count, len(t.buckets))
}

// Load returns count/capacity rounded to two decimal places
func (t *HashTable[V]) Load() float64 {
	return hashmap.Round2(t.ratio())
}

// Len returns the number of entries currently in the HashTable
func (t *HashTable[V]) Len() int {
	return t.count
}

// Cap returns the current number of buckets
func (t *HashTable[V]) Cap() int {
	return len(t.buckets)
}

func (t *HashTable[V]) Stats() hashmap.Stats {
	return hashmap.Stats{
		Entries:    t.count,
		Capacity:   len(t.buckets),
		Load:       t.Load(),
		Resizes:    t.resizes,
		Collisions: t.collisions,
	}
}
