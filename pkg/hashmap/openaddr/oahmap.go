package openaddr

import (
	"github.com/pkg/errors"
	"github.com/scottcagno/hashtable/pkg/hash"
	"github.com/scottcagno/hashtable/pkg/hashmap"
	"github.com/scottcagno/hashtable/pkg/prime"
	"go.uber.org/zap"
)

type state uint8

const (
	empty state = iota
	tombstone
	present
)

// slot represents a single position in the HashTable
type slot[V any] struct {
	state state
	hashmap.Entry[V]
}

// probeResult is where a walk along the probe sequence of a key ended
type probeResult struct {
	index     int  // slot holding the key, or -1
	free      int  // first tombstone or empty slot passed, or -1
	steps     int  // number of slots visited
	exhausted bool // stopped because the sequence ran out
}

// HashTable is an open addressing hash table
type HashTable[V any] struct {
	hash       hash.Func
	probe      Probe
	conf       *hashmap.Config
	log        *zap.Logger
	count      int
	tombstones int
	resizes    int
	collisions int
	slots      []slot[V]
}

// NewHashTable returns a new quadratic probing HashTable with the default
// settings and the specified number of slots, or the default capacity if
// size is not positive
func NewHashTable[V any](size int) *HashTable[V] {
	// the default names always resolve
	ht, _ := NewHashTableWithConfig[V](&hashmap.Config{InitialCapacity: size})
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
	probe, err := ParseProbe(conf.Probe)
	if err != nil {
		return nil, err
	}
	return newHashTable[V](conf.InitialCapacity, conf, fn, probe), nil
}

// newHashTable is the internal variant and expects a checked config
func newHashTable[V any](capacity int, conf *hashmap.Config, fn hash.Func, probe Probe) *HashTable[V] {
	return &HashTable[V]{
		hash:  fn,
		probe: probe,
		conf:  conf,
		log:   conf.Logger,
		slots: make([]slot[V], capacity),
	}
}

// Probe returns the probe sequence used by the table
func (t *HashTable[V]) Probe() Probe {
	return t.probe
}

// find walks the probe sequence of key. It stops at the slot holding the
// key, at an empty slot, or after visiting as many slots as the table has.
func (t *HashTable[V]) find(key string) probeResult {
	capacity := len(t.slots)
	r := probeResult{index: -1, free: -1}
	i := t.hash(key, capacity)
	for k := 1; k <= capacity; k++ {
		r.steps = k
		s := &t.slots[i]
		switch s.state {
		case empty:
			if r.free < 0 {
				r.free = i
			}
			return r
		case tombstone:
			if r.free < 0 {
				r.free = i
			}
		case present:
			if s.Key == key {
				r.index = i
				return r
			}
		}
		i = t.probe.next(i, k, capacity)
	}
	r.exhausted = true
	return r
}

// insert places the entry without checking the load factor. It fails
// with ErrTableFull if the probe sequence has no open slot.
func (t *HashTable[V]) insert(key string, val V) (V, bool, error) {
	r := t.find(key)
	if r.index > -1 {
		prev := t.slots[r.index].Value
		t.slots[r.index].Value = val
		return prev, true, nil
	}
	if r.free < 0 {
		return *new(V), false, errors.Wrapf(hashmap.ErrTableFull,
			"key %q, %s probe, capacity %d", key, t.probe, len(t.slots))
	}
	if t.slots[r.free].state == tombstone {
		t.tombstones--
	}
	t.slots[r.free] = slot[V]{state: present, Entry: hashmap.Entry[V]{Key: key, Value: val}}
	t.count++
	t.collisions += r.steps - 1
	return *new(V), false, nil
}

// rebuild returns a copy of the table with the given capacity and
// without tombstones
func (t *HashTable[V]) rebuild(capacity int) (*HashTable[V], error) {
	newHT := newHashTable[V](capacity, t.conf, t.hash, t.probe)
	newHT.resizes = t.resizes + 1
	newHT.collisions = t.collisions
	for i := range t.slots {
		if t.slots[i].state != present {
			continue
		}
		if _, _, err := newHT.insert(t.slots[i].Key, t.slots[i].Value); err != nil {
			return nil, err
		}
	}
	return newHT, nil
}

// resize rebuilds the table with a prime number of slots no smaller than
// target. A target equal to the current capacity only drops tombstones.
func (t *HashTable[V]) resize(target int) {
	capacity := prime.Next(target)
	t.log.Debug("resizing table",
		zap.Int("old_capacity", len(t.slots)),
		zap.Int("new_capacity", capacity),
		zap.Int("entries", t.count),
		zap.Int("tombstones", t.tombstones),
		zap.Float64("load", t.Load()),
	)
	newHT, err := t.rebuild(capacity)
	// many keys sharing one home slot can outrun a quadratic walk
	for err != nil {
		t.log.Error("rebuild ran out of open slots, growing",
			zap.Int("capacity", capacity), zap.Int("entries", t.count), zap.Error(err))
		capacity = prime.Next(hashmap.Grow(capacity))
		newHT, err = t.rebuild(capacity)
	}
	*t = *newHT
}

// checkLoad grows the table once count reaches the max load, and drops
// tombstones once they push the occupied slots to it
func (t *HashTable[V]) checkLoad() {
	switch {
	case t.ratio() >= t.conf.MaxLoad:
		t.resize(hashmap.Grow(len(t.slots)))
	case hashmap.Ratio(t.count+t.tombstones, len(t.slots)) >= t.conf.MaxLoad:
		t.resize(len(t.slots))
	}
}

// set is the shared body of Set and SetLinearProbe. When grow is false an
// exhausted probe is returned to the caller instead of growing the table.
func (t *HashTable[V]) set(key string, val V, grow bool) (V, bool, error) {
	prev, ok, err := t.insert(key, val)
	for err != nil {
		// the load policy should keep probes from running out
		t.log.Error("probe exhausted",
			zap.String("key", key),
			zap.Stringer("probe", t.probe),
			zap.Int("capacity", len(t.slots)),
			zap.Int("entries", t.count),
			zap.Int("tombstones", t.tombstones),
			zap.Error(err),
		)
		if !grow {
			return prev, false, err
		}
		t.resize(hashmap.Grow(len(t.slots)))
		prev, ok, err = t.insert(key, val)
	}
	if !ok {
		t.checkLoad()
	}
	return prev, ok, nil
}

// Set inserts or overwrites a key using the table's probe sequence. It
// returns the previous value and true if the key was already present.
func (t *HashTable[V]) Set(key string, val V) (V, bool) {
	prev, ok, _ := t.set(key, val, true)
	return prev, ok
}

// Get returns the value for key, or false if none could be found
func (t *HashTable[V]) Get(key string) (V, bool) {
	if r := t.find(key); r.index > -1 {
		return t.slots[r.index].Value, true
	}
	return *new(V), false
}

// SetLinearProbe inserts or overwrites a key in a linear probing table. A
// full cycle without an open slot fails with ErrTableFull.
func (t *HashTable[V]) SetLinearProbe(key string, val V) error {
	if t.probe != Linear {
		return errors.Wrapf(hashmap.ErrProbeMismatch, "table uses %s probing", t.probe)
	}
	_, _, err := t.set(key, val, false)
	return err
}

// GetLinearProbe returns the value for key in a linear probing table, or
// ErrNotFound
func (t *HashTable[V]) GetLinearProbe(key string) (V, error) {
	if t.probe != Linear {
		return *new(V), errors.Wrapf(hashmap.ErrProbeMismatch, "table uses %s probing", t.probe)
	}
	r := t.find(key)
	if r.index > -1 {
		return t.slots[r.index].Value, nil
	}
	if r.exhausted {
		return *new(V), errors.Wrapf(hashmap.ErrNotFound, "key %q, full cycle", key)
	}
	return *new(V), errors.Wrapf(hashmap.ErrNotFound, "key %q", key)
}

// Remove deletes key, leaving a tombstone in its slot, and reports
// whether it was present
func (t *HashTable[V]) Remove(key string) bool {
	r := t.find(key)
	if r.index < 0 {
		return false
	}
	t.slots[r.index] = slot[V]{state: tombstone}
	t.count--
	t.tombstones++
	if t.ratio() <= t.conf.MinLoad {
		t.resize(hashmap.ShrinkTarget(t.count, len(t.slots), t.conf.MinLoad))
	}
	return true
}

// Range calls it for every entry in slot order until it returns false.
// Set and Remove must not be called while ranging.
func (t *HashTable[V]) Range(it func(key string, val V) bool) {
	for i := range t.slots {
		if t.slots[i].state != present {
			continue
		}
		if !it(t.slots[i].Key, t.slots[i].Value) {
			return
		}
	}
}

// Display returns every occupied slot in index order
func (t *HashTable[V]) Display() []hashmap.Bucket[V] {
	var out []hashmap.Bucket[V]
	for i := range t.slots {
		if t.slots[i].state != present {
			continue
		}
		out = append(out, hashmap.Bucket[V]{
			Index:   i,
			Entries: []hashmap.Entry[V]{t.slots[i].Entry},
		})
	}
	return out
}

func (t *HashTable[V]) ratio() float64 {
	return hashmap.Ratio(t.count, len(t.slots))
}

// Load returns count/capacity rounded to two decimal places
func (t *HashTable[V]) Load() float64 {
	return hashmap.Round2(t.ratio())
}

// Len returns the number of entries currently in the HashTable
func (t *HashTable[V]) Len() int {
	return t.count
}

// Cap returns the current number of slots
func (t *HashTable[V]) Cap() int {
	return len(t.slots)
}

func (t *HashTable[V]) Stats() hashmap.Stats {
	return hashmap.Stats{
		Entries:    t.count,
		Capacity:   len(t.slots),
		Load:       t.Load(),
		Tombstones: t.tombstones,
		Resizes:    t.resizes,
		Collisions: t.collisions,
	}
}
