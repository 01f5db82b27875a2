package metrics

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/scottcagno/hashtable/pkg/hashmap"
)

// StatsSource is anything that can report table stats
type StatsSource interface {
	Stats() hashmap.Stats
}

// Collector exports the stats of a set of named tables. Stats are read
// when the collector is scraped; the caller must not mutate a table
// concurrently with a scrape.
type Collector struct {
	mu      sync.RWMutex
	sources map[string]StatsSource

	entries    *prometheus.Desc
	capacity   *prometheus.Desc
	load       *prometheus.Desc
	tombstones *prometheus.Desc
	resizes    *prometheus.Desc
	collisions *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

func NewCollector(namespace string) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, []string{"table"}, nil)
	}
	return &Collector{
		sources:    make(map[string]StatsSource),
		entries:    desc("entries", "Number of entries stored in the table."),
		capacity:   desc("capacity", "Number of buckets or slots in the table."),
		load:       desc("load_ratio", "Entries divided by capacity."),
		tombstones: desc("tombstones", "Number of tombstone slots in an open addressing table."),
		resizes:    desc("resizes_total", "Number of times the table has been rebuilt."),
		collisions: desc("collisions_total", "Number of inserts that did not land in an empty bucket or slot."),
	}
}

// Add registers src under name, replacing any source already using it
func (c *Collector) Add(name string, src StatsSource) {
	c.mu.Lock()
	c.sources[name] = src
	c.mu.Unlock()
}

// Remove stops exporting the table registered under name
func (c *Collector) Remove(name string) {
	c.mu.Lock()
	delete(c.sources, name)
	c.mu.Unlock()
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.capacity
	ch <- c.load
	ch <- c.tombstones
	ch <- c.resizes
	ch <- c.collisions
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.sources))
	for name := range c.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := c.sources[name].Stats()
		ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(s.Entries), name)
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity), name)
		ch <- prometheus.MustNewConstMetric(c.load, prometheus.GaugeValue, hashmap.Ratio(s.Entries, s.Capacity), name)
		ch <- prometheus.MustNewConstMetric(c.tombstones, prometheus.GaugeValue, float64(s.Tombstones), name)
		ch <- prometheus.MustNewConstMetric(c.resizes, prometheus.CounterValue, float64(s.Resizes), name)
		ch <- prometheus.MustNewConstMetric(c.collisions, prometheus.CounterValue, float64(s.Collisions), name)
	}
}
