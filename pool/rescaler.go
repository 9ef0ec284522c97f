package pool

import (
	"weak"

	"go.uber.org/zap"
)

// armRescale schedules a rescale pass unless one is already pending or the
// pool is closed. Callers must hold p.mu.
func (p *Pool[T]) armRescale() {
	if p.rescalePending {
		return
	}
	select {
	case <-p.done:
		return
	default:
	}

	p.rescalePending = true
	select {
	case p.armCh <- struct{}{}:
	default:
	}
}

// rescaleLoop executes rescale passes as they are armed until Close.
func (p *Pool[T]) rescaleLoop() {
	for {
		select {
		case <-p.done:
			return
		case <-p.armCh:
			p.rescale()
		}
	}
}

// rescale asks the scaling policy for a new strong-tier capacity and
// migrates objects between the tiers to converge on it. The pass reflects
// pool state at the moment it runs, not the moment it was armed.
func (p *Pool[T]) rescale() {
	p.mu.Lock()
	defer p.mu.Unlock()

	newMax := p.scaler(len(p.active), p.maxStrong, len(p.strong), len(p.weakTier), p.gcSinceRescale)
	if newMax < 0 {
		newMax = 0
	}

	switch {
	case newMax < len(p.strong):
		p.demoteExcess(newMax)
	case newMax > len(p.strong):
		p.promoteUpTo(newMax)
	}

	p.log.Debug("rescale executed",
		zap.Int("old_max_strong", p.maxStrong),
		zap.Int("new_max_strong", newMax),
		zap.Int("strong_pooled", len(p.strong)),
		zap.Int("weak_pooled", len(p.weakTier)),
	)

	p.maxStrong = newMax
	p.gcSinceRescale = 0
	p.totalRescales++
	p.rescalePending = false
}

// demoteExcess pops strong-tier objects into the weak tier until the strong
// tier fits within newMax. Demoted objects survive only through references
// their callers still hold elsewhere.
func (p *Pool[T]) demoteExcess(newMax int) {
	for len(p.strong) > newMax {
		obj := p.popStrong()
		p.weakTier[weak.Make(obj)] = struct{}{}
	}
}

// promoteUpTo revives live weak handles into the strong tier until it
// reaches newMax or the weak tier is exhausted. Dead handles are discarded
// permanently.
func (p *Pool[T]) promoteUpTo(newMax int) {
	for h := range p.weakTier {
		if len(p.strong) >= newMax {
			return
		}
		delete(p.weakTier, h)
		if obj := h.Value(); obj != nil {
			p.strong = append(p.strong, obj)
		}
	}
}
