package hashlife

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports the state of a universe to prometheus. A Universe is not
// safe for concurrent use, so the collector serves the values recorded by the
// last Observe call instead of reading the universe during a scrape.
type Collector struct {
	mu         sync.Mutex
	stats      Stats
	generation uint64
	population uint64
	level      int

	nodes       *prometheus.Desc
	hits        *prometheus.Desc
	misses      *prometheus.Desc
	collections *prometheus.Desc
	gen         *prometheus.Desc
	pop         *prometheus.Desc
	lvl         *prometheus.Desc
}

// NewCollector returns a collector with metric names prefixed by namespace.
func NewCollector(namespace string) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, nil)
	}
	return &Collector{
		nodes:       desc("nodes", "Nodes held by the node store."),
		hits:        desc("memo_hits_total", "Memoised results reused."),
		misses:      desc("memo_misses_total", "Memoised results computed."),
		collections: desc("collections_total", "Node store garbage collections."),
		gen:         desc("generation", "Current generation."),
		pop:         desc("population", "Live cells."),
		lvl:         desc("root_level", "Level of the root node."),
	}
}

// Observe records the current state of u.
func (c *Collector) Observe(u *Universe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = u.Stats()
	c.generation = u.Generation()
	c.population = u.Population()
	c.level = u.Level()
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.nodes
	ch <- c.hits
	ch <- c.misses
	ch <- c.collections
	ch <- c.gen
	ch <- c.pop
	ch <- c.lvl
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch <- prometheus.MustNewConstMetric(c.nodes, prometheus.GaugeValue, float64(c.stats.Nodes))
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(c.stats.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(c.stats.Misses))
	ch <- prometheus.MustNewConstMetric(c.collections, prometheus.CounterValue, float64(c.stats.Collections))
	ch <- prometheus.MustNewConstMetric(c.gen, prometheus.GaugeValue, float64(c.generation))
	ch <- prometheus.MustNewConstMetric(c.pop, prometheus.GaugeValue, float64(c.population))
	ch <- prometheus.MustNewConstMetric(c.lvl, prometheus.GaugeValue, float64(c.level))
}
