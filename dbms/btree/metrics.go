package btree

import "github.com/prometheus/client_golang/prometheus"

// Collector exposes a BTree's cumulative pager read/write/alloc counters
// as Prometheus counters. It is pure observability: nothing it does can
// affect Put/Get/Delete semantics, and registering it is optional.
type Collector struct {
	bt *BTree

	reads  *prometheus.Desc
	writes *prometheus.Desc
	allocs *prometheus.Desc
}

// NewCollector wraps bt for Prometheus registration, e.g.
// prometheus.MustRegister(btree.NewCollector(bt, "mystore")).
func NewCollector(bt *BTree, label string) *Collector {
	constLabels := prometheus.Labels{"store": label}
	return &Collector{
		bt:     bt,
		reads:  prometheus.NewDesc("btree_pager_reads_total", "Cumulative node block reads since open.", nil, constLabels),
		writes: prometheus.NewDesc("btree_pager_writes_total", "Cumulative node block writes since open.", nil, constLabels),
		allocs: prometheus.NewDesc("btree_pager_allocs_total", "Cumulative node block allocations since open.", nil, constLabels),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.reads
	ch <- c.writes
	ch <- c.allocs
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.reads, prometheus.CounterValue, float64(c.bt.ReadCount()))
	ch <- prometheus.MustNewConstMetric(c.writes, prometheus.CounterValue, float64(c.bt.WriteCount()))
	ch <- prometheus.MustNewConstMetric(c.allocs, prometheus.CounterValue, float64(c.bt.AllocCount()))
}
