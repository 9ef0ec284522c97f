package pool

import (
	"fmt"
	"weak"

	"go.uber.org/zap"
)

// New creates a pool. The factory constructs a new object when neither tier
// holds a reusable one; reset restores caller-defined defaults before an
// object re-enters a tier and may be nil. The initial strong-tier capacity
// is seeded from the scaling policy.
func New[T any](factory func() *T, reset func(*T), opts ...Option[T]) (*Pool[T], error) {
	if factory == nil {
		return nil, fmt.Errorf("pool: factory must not be nil")
	}

	p := &Pool[T]{
		factory:  factory,
		reset:    reset,
		scaler:   DefaultScaler,
		log:      zap.NewNop(),
		weakTier: make(map[weak.Pointer[T]]struct{}),
		active:   make(map[weak.Pointer[T]]struct{}),
		tracked:  make(map[weak.Pointer[T]]struct{}),
		armCh:    make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.maxStrong = p.scaler(0, 0, 0, 0, 0)
	if p.maxStrong < 0 {
		p.maxStrong = 0
	}

	go p.rescaleLoop()

	return p, nil
}

// Acquire returns an object ready for use. The most recently released object
// in the strong tier is preferred; when the strong tier is empty, a still
// live weak-tier object is revived. The factory is never invoked while a
// reusable object exists in either tier. Factory panics propagate to the
// caller unmodified.
func (p *Pool[T]) Acquire() *T {
	p.mu.Lock()
	defer p.mu.Unlock()

	obj := p.popStrong()
	if obj != nil {
		// Top the strong tier back up from the weak tier while we are here.
		p.promoteOne()
	} else {
		obj = p.takeWeak()
	}

	if obj == nil {
		obj = p.factory()
		if obj == nil {
			return nil
		}
		p.factoryAllocs++
	}

	h := weak.Make(obj)
	p.track(obj, h)
	p.active[h] = struct{}{}

	p.totalAcquires++
	if n := len(p.active); n > p.peakActive {
		p.peakActive = n
	}
	return obj
}

// Release hands obj back to the pool. The object is reset, then strongly
// pooled if the strong tier has room, otherwise only weakly observed. From
// that point its survival depends on references held outside the pool.
// Release also arms the background rescaler, at most once per pending cycle.
//
// Releasing an object that was never acquired from this pool is tolerated
// and not validated; so is a double release, which leaves the object visible
// through two tier slots. Both are caller-contract violations. Releasing nil
// is a no-op.
func (p *Pool[T]) Release(obj *T) {
	if obj == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	h := weak.Make(obj)
	delete(p.active, h)
	p.track(obj, h)

	if p.reset != nil {
		p.reset(obj)
	}

	if len(p.strong) < p.maxStrong {
		p.strong = append(p.strong, obj)
	} else {
		p.weakTier[h] = struct{}{}
	}

	p.totalReleases++
	p.armRescale()
}

// Close stops the background rescaler. Pooled objects are left to the
// garbage collector. Releases after Close still tier objects but no longer
// trigger rescaling; an armed but not yet executed rescale may be dropped.
// Close is idempotent.
func (p *Pool[T]) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}

// IsActive reports whether obj is currently checked out from this pool.
func (p *Pool[T]) IsActive(obj *T) bool {
	if obj == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.active[weak.Make(obj)]
	return ok
}

// IsStrongPooled reports whether obj is held by the strong tier.
func (p *Pool[T]) IsStrongPooled(obj *T) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, o := range p.strong {
		if o == obj {
			return true
		}
	}
	return false
}

// IsWeakPooled reports whether obj is observed by the weak tier.
func (p *Pool[T]) IsWeakPooled(obj *T) bool {
	if obj == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.weakTier[weak.Make(obj)]
	return ok
}
