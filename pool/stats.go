package pool

import "fmt"

// PoolStatsSnapshot represents the pool's statistics at a given moment.
// Two separate reads carry no consistency guarantee relative to each other.
type PoolStatsSnapshot struct {
	// Tier state
	ActiveObjects     int
	MaxStrongCapacity int
	StrongPooled      int
	WeakPooled        int

	// Reclamation bookkeeping
	GCSinceRescale int
	ActiveReclaims int
	TotalReclaims  int

	// Lifetime totals
	TotalAcquires int
	TotalReleases int
	FactoryAllocs int
	TotalRescales int
	PeakActive    int
}

// Stats returns a snapshot of the current pool statistics.
func (p *Pool[T]) Stats() PoolStatsSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return PoolStatsSnapshot{
		ActiveObjects:     len(p.active),
		MaxStrongCapacity: p.maxStrong,
		StrongPooled:      len(p.strong),
		WeakPooled:        len(p.weakTier),
		GCSinceRescale:    p.gcSinceRescale,
		ActiveReclaims:    p.activeReclaims,
		TotalReclaims:     p.totalReclaims,
		TotalAcquires:     p.totalAcquires,
		TotalReleases:     p.totalReleases,
		FactoryAllocs:     p.factoryAllocs,
		TotalRescales:     p.totalRescales,
		PeakActive:        p.peakActive,
	}
}

// NumActiveObjects returns the number of objects currently checked out.
func (p *Pool[T]) NumActiveObjects() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.active)
}

// CurMaxStrongPoolSize returns the strong tier's current target capacity.
func (p *Pool[T]) CurMaxStrongPoolSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxStrong
}

// NumStrongPooledRefs returns the number of strongly pooled objects.
func (p *Pool[T]) NumStrongPooledRefs() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.strong)
}

// NumWeakPooledRefs returns the number of weak-tier handles, including
// handles whose targets were already reclaimed but not yet evicted.
func (p *Pool[T]) NumWeakPooledRefs() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.weakTier)
}

// NumGC returns the reclamations observed in the weak tier since the last
// rescale.
func (p *Pool[T]) NumGC() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gcSinceRescale
}

// NumActiveGC returns the reclamations observed for objects that were still
// checked out. A non-zero value means a caller dropped an object without
// releasing it.
func (p *Pool[T]) NumActiveGC() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activeReclaims
}

// PrintPoolStats outputs current pool statistics to stdout.
func (p *Pool[T]) PrintPoolStats() {
	s := p.Stats()

	fmt.Println("========== Pool Stats ==========")
	fmt.Printf("Active Objects       : %d\n", s.ActiveObjects)
	fmt.Printf("Max Strong Capacity  : %d\n", s.MaxStrongCapacity)
	fmt.Printf("Strong Pooled        : %d\n", s.StrongPooled)
	fmt.Printf("Weak Pooled          : %d\n", s.WeakPooled)
	fmt.Println()
	fmt.Println("---------- Reclamation ----------")
	fmt.Printf("GC Since Rescale     : %d\n", s.GCSinceRescale)
	fmt.Printf("Active Reclaims      : %d\n", s.ActiveReclaims)
	fmt.Printf("Total Reclaims       : %d\n", s.TotalReclaims)
	fmt.Println()
	fmt.Println("---------- Lifetime ----------")
	fmt.Printf("Total Acquires       : %d\n", s.TotalAcquires)
	fmt.Printf("Total Releases       : %d\n", s.TotalReleases)
	fmt.Printf("Factory Allocs       : %d\n", s.FactoryAllocs)
	fmt.Printf("Total Rescales       : %d\n", s.TotalRescales)
	fmt.Printf("Peak Active          : %d\n", s.PeakActive)
	fmt.Println("=================================")
}
