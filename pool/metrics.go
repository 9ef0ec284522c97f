package pool

import "github.com/prometheus/client_golang/prometheus"

// Collector exports a pool's statistics as prometheus metrics. Register it
// with a prometheus registry to scrape tier sizes and lifetime totals.
type Collector[T any] struct {
	pool *Pool[T]

	activeObjects  *prometheus.Desc
	maxStrong      *prometheus.Desc
	strongPooled   *prometheus.Desc
	weakPooled     *prometheus.Desc
	gcSinceRescale *prometheus.Desc
	activeReclaims *prometheus.Desc
	reclaimsTotal  *prometheus.Desc
	acquiresTotal  *prometheus.Desc
	releasesTotal  *prometheus.Desc
	allocsTotal    *prometheus.Desc
	rescalesTotal  *prometheus.Desc
}

// NewCollector creates a prometheus collector over p. The namespace prefixes
// every metric name.
func NewCollector[T any](p *Pool[T], namespace string) *Collector[T] {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "pool", name), help, nil, nil)
	}

	return &Collector[T]{
		pool:           p,
		activeObjects:  desc("active_objects", "Objects currently checked out of the pool."),
		maxStrong:      desc("max_strong_capacity", "Current target capacity of the strong tier."),
		strongPooled:   desc("strong_pooled_refs", "Objects held by the strong tier."),
		weakPooled:     desc("weak_pooled_refs", "Handles held by the weak tier."),
		gcSinceRescale: desc("gc_since_rescale", "Weak-tier reclamations observed since the last rescale."),
		activeReclaims: desc("active_reclaims_total", "Checked-out objects reclaimed without a matching release."),
		reclaimsTotal:  desc("reclaims_total", "Tracked objects reclaimed by the garbage collector."),
		acquiresTotal:  desc("acquires_total", "Acquire operations served."),
		releasesTotal:  desc("releases_total", "Release operations served."),
		allocsTotal:    desc("factory_allocs_total", "Objects constructed by the factory."),
		rescalesTotal:  desc("rescales_total", "Rescale passes executed."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector[T]) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.activeObjects
	ch <- c.maxStrong
	ch <- c.strongPooled
	ch <- c.weakPooled
	ch <- c.gcSinceRescale
	ch <- c.activeReclaims
	ch <- c.reclaimsTotal
	ch <- c.acquiresTotal
	ch <- c.releasesTotal
	ch <- c.allocsTotal
	ch <- c.rescalesTotal
}

// Collect implements prometheus.Collector.
func (c *Collector[T]) Collect(ch chan<- prometheus.Metric) {
	s := c.pool.Stats()

	gauge := func(d *prometheus.Desc, v int) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v))
	}
	counter := func(d *prometheus.Desc, v int) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}

	gauge(c.activeObjects, s.ActiveObjects)
	gauge(c.maxStrong, s.MaxStrongCapacity)
	gauge(c.strongPooled, s.StrongPooled)
	gauge(c.weakPooled, s.WeakPooled)
	gauge(c.gcSinceRescale, s.GCSinceRescale)
	counter(c.activeReclaims, s.ActiveReclaims)
	counter(c.reclaimsTotal, s.TotalReclaims)
	counter(c.acquiresTotal, s.TotalAcquires)
	counter(c.releasesTotal, s.TotalReleases)
	counter(c.allocsTotal, s.FactoryAllocs)
	counter(c.rescalesTotal, s.TotalRescales)
}
