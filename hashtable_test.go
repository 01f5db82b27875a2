package hashtable_test

import (
	"testing"

	"github.com/scottcagno/hashtable"
	"github.com/scottcagno/hashtable/pkg/hashmap"
	"github.com/scottcagno/hashtable/pkg/hashmap/chained"
	"github.com/scottcagno/hashtable/pkg/hashmap/openaddr"
	"github.com/scottcagno/hashtable/pkg/prime"
	"github.com/scottcagno/hashtable/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type maker func(t *testing.T, conf *hashmap.Config) hashtable.Dictionary[string]

var makers = map[string]maker{
	"chained": func(t *testing.T, conf *hashmap.Config) hashtable.Dictionary[string] {
		ht, err := chained.NewHashTableWithConfig[string](conf)
		require.NoError(t, err)
		return ht
	},
	"quadratic": func(t *testing.T, conf *hashmap.Config) hashtable.Dictionary[string] {
		c := *conf
		c.Probe = hashmap.ProbeQuadratic
		ht, err := openaddr.NewHashTableWithConfig[string](&c)
		require.NoError(t, err)
		return ht
	},
	"linear": func(t *testing.T, conf *hashmap.Config) hashtable.Dictionary[string] {
		c := *conf
		c.Probe = hashmap.ProbeLinear
		ht, err := openaddr.NewHashTableWithConfig[string](&c)
		require.NoError(t, err)
		return ht
	},
}

func TestDictionary_Capitals(t *testing.T) {
	for name, mk := range makers {
		t.Run(name, func(t *testing.T) {
			d := mk(t, &hashmap.Config{InitialCapacity: 37})
			d.Set("France", "Paris")
			d.Set("Spain", "Madrid")
			d.Set("France", "Lyon")
			assert.Equal(t, 2, d.Len())
			val, ok := d.Get("France")
			assert.True(t, ok)
			assert.Equal(t, "Lyon", val)

			assert.False(t, d.Remove("Italy"))
			assert.Equal(t, 2, d.Len())
			assert.True(t, d.Remove("France"))
			assert.Equal(t, 1, d.Len())
			_, ok = d.Get("France")
			assert.False(t, ok)
		})
	}
}

func TestDictionary_Collisions(t *testing.T) {
	for name, mk := range makers {
		t.Run(name, func(t *testing.T) {
			d := mk(t, &hashmap.Config{InitialCapacity: 37, Hash: "sum"})
			d.Set("Spain", "Madrid")
			d.Set("ǻ", "a with ring and acute")
			require.Equal(t, 1, d.Stats().Collisions)

			val, ok := d.Get("Spain")
			assert.True(t, ok)
			assert.Equal(t, "Madrid", val)
			val, ok = d.Get("ǻ")
			assert.True(t, ok)
			assert.Equal(t, "a with ring and acute", val)

			assert.True(t, d.Remove("Spain"))
			val, ok = d.Get("ǻ")
			assert.True(t, ok)
			assert.Equal(t, "a with ring and acute", val)
		})
	}
}

func TestDictionary_Invariants(t *testing.T) {
	keys := util.RandKeys(9, 1000, 7)
	for name, mk := range makers {
		t.Run(name, func(t *testing.T) {
			d := mk(t, &hashmap.Config{InitialCapacity: 37})
			for i, k := range keys {
				d.Set(k, k)
				require.Equal(t, i+1, d.Len())
				require.Less(t, hashmap.Ratio(d.Len(), d.Cap()), hashmap.DefaultMaxLoad)
			}
			assert.True(t, prime.IsPrime(d.Cap()))
			for _, k := range keys {
				val, ok := d.Get(k)
				require.True(t, ok)
				require.Equal(t, k, val)
			}
			for i, k := range keys {
				require.True(t, d.Remove(k))
				require.False(t, d.Remove(k))
				if d.Len() > 0 {
					require.Greater(t, hashmap.Ratio(d.Len(), d.Cap()), hashmap.DefaultMinLoad, "after %d removals", i+1)
				}
			}
			assert.Equal(t, 0, d.Len())
			assert.Empty(t, d.Display())
			d.Set("France", "Paris")
			val, ok := d.Get("France")
			assert.True(t, ok)
			assert.Equal(t, "Paris", val)
		})
	}
}
