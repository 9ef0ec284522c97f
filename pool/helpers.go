package pool

// Tier-store primitives. All of them require p.mu to be held.

// popStrong removes and returns the most recently pushed object from the
// strong tier, or nil when the tier is empty.
func (p *Pool[T]) popStrong() *T {
	n := len(p.strong)
	if n == 0 {
		return nil
	}
	obj := p.strong[n-1]
	p.strong[n-1] = nil // the backing array must not keep the object alive
	p.strong = p.strong[:n-1]
	return obj
}

// promoteOne moves the first still-live weak handle into the strong tier.
// Handles that no longer resolve are discarded permanently, they stand for
// objects the garbage collector already reclaimed.
func (p *Pool[T]) promoteOne() {
	for h := range p.weakTier {
		delete(p.weakTier, h)
		if obj := h.Value(); obj != nil {
			p.strong = append(p.strong, obj)
			return
		}
	}
}

// takeWeak removes handles from the weak tier until one still resolves and
// returns its target, or nil once the tier is exhausted. Dead handles
// visited on the way are discarded permanently.
func (p *Pool[T]) takeWeak() *T {
	for h := range p.weakTier {
		delete(p.weakTier, h)
		if obj := h.Value(); obj != nil {
			return obj
		}
	}
	return nil
}
