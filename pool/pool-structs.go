// Package pool implements an adaptive object pool with two retention tiers.
// Released objects are kept in a strongly held stack up to an adaptive
// capacity; the overflow is only weakly observed, so the garbage collector
// may reclaim it under pressure. A debounced background rescaler migrates
// objects between the tiers to track recent concurrent usage.
//
// Objects must be distinct heap allocations; zero-sized types are not
// supported.
package pool

import (
	"sync"
	"weak"

	"go.uber.org/zap"
)

// ScalingFunc computes a new capacity for the strong tier from pool
// statistics. It must be pure: no side effects, deterministic, non-negative
// result. It is invoked once at construction with all-zero arguments to seed
// the initial capacity, and once per rescale cycle with live statistics.
type ScalingFunc func(numActive, curMaxStrong, numStrongPooled, numWeakPooled, numGC int) int

// Pool recycles objects of type T through a strongly held tier and a weakly
// observed tier. All methods are safe for concurrent use; a single mutex
// serializes acquire, release, the rescale pass and the reclamation callback.
type Pool[T any] struct {
	factory func() *T
	reset   func(*T)
	scaler  ScalingFunc
	log     *zap.Logger

	mu       sync.Mutex
	strong   []*T
	weakTier map[weak.Pointer[T]]struct{}
	active   map[weak.Pointer[T]]struct{}
	tracked  map[weak.Pointer[T]]struct{}

	// maxStrong is mutated only by the rescale pass. len(strong) can exceed
	// it transiently after the capacity shrinks below current occupancy.
	maxStrong      int
	gcSinceRescale int
	activeReclaims int
	rescalePending bool

	totalAcquires int
	totalReleases int
	factoryAllocs int
	totalReclaims int
	totalRescales int
	peakActive    int

	armCh     chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Option configures a Pool at construction time.
type Option[T any] func(*Pool[T])

// WithScaler replaces the default scaling policy.
func WithScaler[T any](fn ScalingFunc) Option[T] {
	return func(p *Pool[T]) {
		p.scaler = fn
	}
}

// WithLogger sets the logger used for rescale and reclamation events.
// The default is a no-op logger.
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(p *Pool[T]) {
		p.log = logger
	}
}
