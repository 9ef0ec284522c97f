package pool

import (
	"runtime"
	"weak"

	"go.uber.org/zap"
)

// track registers obj for reclamation tracking. At most one cleanup is ever
// registered per object; the handle's identity makes re-registration a
// no-op. Callers must hold p.mu.
func (p *Pool[T]) track(obj *T, h weak.Pointer[T]) {
	if obj == nil {
		return
	}
	if _, ok := p.tracked[h]; ok {
		return
	}
	p.tracked[h] = struct{}{}
	runtime.AddCleanup(obj, p.onReclaim, h)
}

// onReclaim runs on the runtime's cleanup goroutine after the handle's
// target became unreachable through every strong path. It fires at most once
// per handle and never inside another pool operation.
func (p *Pool[T]) onReclaim(h weak.Pointer[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.tracked, h)
	p.totalReclaims++

	if _, ok := p.weakTier[h]; ok {
		delete(p.weakTier, h)
		p.gcSinceRescale = satInc(p.gcSinceRescale)
		p.log.Debug("weakly pooled object reclaimed",
			zap.Int("gc_since_rescale", p.gcSinceRescale))
		return
	}

	if _, ok := p.active[h]; ok {
		// The caller dropped a checked-out object without releasing it.
		// Diagnostic only, the pool takes no corrective action.
		delete(p.active, h)
		p.activeReclaims = satInc(p.activeReclaims)
		p.log.Debug("active object reclaimed without release",
			zap.Int("active_reclaims", p.activeReclaims))
		return
	}

	// The handle already left both sets through a tier transition.
}
