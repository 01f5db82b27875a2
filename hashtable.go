package hashtable

import "github.com/scottcagno/hashtable/pkg/hashmap"

// Dictionary is the contract shared by every hash table in this module
type Dictionary[V any] interface {
	Set(key string, val V) (V, bool)
	Get(key string) (V, bool)
	Remove(key string) bool
	Load() float64
	Len() int
	Cap() int
	Range(it func(key string, val V) bool)
	Display() []hashmap.Bucket[V]
	Stats() hashmap.Stats
}

