package pool

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testObject struct {
	value int
	dirty bool
}

// newTestPool builds a pool of testObjects and returns a pointer to the
// factory's invocation count. The factory only runs inside Acquire on the
// test goroutine, so reading the count needs no synchronization.
func newTestPool(t *testing.T, opts ...Option[testObject]) (*Pool[testObject], *int) {
	t.Helper()

	allocs := 0
	p, err := New(
		func() *testObject {
			allocs++
			return &testObject{value: 42}
		},
		func(o *testObject) {
			o.dirty = false
		},
		opts...,
	)
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p, &allocs
}

// waitIdle blocks until no rescale is pending.
func waitIdle(t *testing.T, p *Pool[testObject]) {
	t.Helper()
	require.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return !p.rescalePending
	}, 2*time.Second, time.Millisecond)
}

func TestNewRequiresFactory(t *testing.T) {
	_, err := New[testObject](nil, nil)
	require.Error(t, err)
}

func TestSeedCapacity(t *testing.T) {
	p, _ := newTestPool(t)
	assert.Equal(t, 5, p.CurMaxStrongPoolSize())
}

func TestAcquireReleaseCounts(t *testing.T) {
	p, _ := newTestPool(t)

	const k, j = 9, 4
	objs := make([]*testObject, 0, k)
	for range k {
		objs = append(objs, p.Acquire())
	}
	assert.Equal(t, k, p.NumActiveObjects())

	for i := range j {
		p.Release(objs[i])
	}
	assert.Equal(t, k-j, p.NumActiveObjects())

	runtime.KeepAlive(objs)
}

func TestFactoryNotCalledWhileReusable(t *testing.T) {
	p, allocs := newTestPool(t)

	objs := make([]*testObject, 3)
	for i := range objs {
		objs[i] = p.Acquire()
	}
	require.Equal(t, 3, *allocs)

	for _, o := range objs {
		p.Release(o)
	}
	for range 3 {
		p.Acquire()
	}
	assert.Equal(t, 3, *allocs)

	runtime.KeepAlive(objs)
}

func TestAcquireRevivesWeakWhenStrongEmpty(t *testing.T) {
	p, allocs := newTestPool(t, WithScaler[testObject](func(_, _, _, _, _ int) int {
		return 0
	}))

	obj := p.Acquire()
	require.Equal(t, 1, *allocs)
	p.Release(obj) // capacity 0, goes straight to the weak tier
	waitIdle(t, p)
	require.Equal(t, 0, p.NumStrongPooledRefs())
	require.Equal(t, 1, p.NumWeakPooledRefs())

	got := p.Acquire()
	assert.Same(t, obj, got, "acquire must revive the weakly pooled object")
	assert.Equal(t, 1, *allocs, "factory must not run while a live weak handle exists")
	assert.Equal(t, 0, p.NumWeakPooledRefs())
	assert.True(t, p.IsActive(got))
}

func TestFactoryNilResultNotCounted(t *testing.T) {
	p, err := New(func() *testObject { return nil }, nil)
	require.NoError(t, err)
	t.Cleanup(p.Close)

	obj := p.Acquire()
	assert.Nil(t, obj)

	s := p.Stats()
	assert.Equal(t, 0, s.FactoryAllocs)
	assert.Equal(t, 0, s.TotalAcquires)
	assert.Equal(t, 0, s.ActiveObjects)
}

func TestReleaseUnderCapacityGoesStrong(t *testing.T) {
	p, _ := newTestPool(t)

	obj := p.Acquire()
	before := p.Stats()
	p.Release(obj)
	after := p.Stats()

	assert.Equal(t, before.StrongPooled+1, after.StrongPooled)
	assert.Equal(t, before.WeakPooled, after.WeakPooled)
	assert.True(t, p.IsStrongPooled(obj))
}

func TestReleaseOverCapacityGoesWeak(t *testing.T) {
	p, _ := newTestPool(t)

	objs := make([]*testObject, 6)
	for i := range objs {
		objs[i] = p.Acquire()
	}
	for _, o := range objs {
		p.Release(o)
	}

	assert.Equal(t, 5, p.NumStrongPooledRefs())
	assert.Equal(t, 1, p.NumWeakPooledRefs())
	assert.True(t, p.IsWeakPooled(objs[5]))
	assert.False(t, p.IsStrongPooled(objs[5]))

	runtime.KeepAlive(objs)
}

func TestResetInvokedOnRelease(t *testing.T) {
	p, _ := newTestPool(t)

	obj := p.Acquire()
	obj.dirty = true
	p.Release(obj)
	assert.False(t, obj.dirty)
}

func TestForeignReleaseTolerated(t *testing.T) {
	p, _ := newTestPool(t)

	obj := &testObject{value: 7}
	p.Release(obj)

	assert.Equal(t, 0, p.NumActiveObjects())
	assert.True(t, p.IsStrongPooled(obj))
}

func TestReleaseNilIsNoop(t *testing.T) {
	p, _ := newTestPool(t)
	p.Release(nil)
	assert.Equal(t, 0, p.NumStrongPooledRefs())
	assert.Equal(t, 0, p.NumWeakPooledRefs())
}

func TestTierMembershipMutuallyExclusive(t *testing.T) {
	p, _ := newTestPool(t)

	objs := make([]*testObject, 6)
	for i := range objs {
		objs[i] = p.Acquire()
	}
	for _, o := range objs {
		assert.True(t, p.IsActive(o))
		assert.False(t, p.IsStrongPooled(o))
		assert.False(t, p.IsWeakPooled(o))
	}

	for _, o := range objs {
		p.Release(o)
	}
	waitIdle(t, p)

	for _, o := range objs {
		memberships := 0
		for _, in := range []bool{p.IsActive(o), p.IsStrongPooled(o), p.IsWeakPooled(o)} {
			if in {
				memberships++
			}
		}
		assert.Equal(t, 1, memberships)
	}

	runtime.KeepAlive(objs)
}

func TestEndToEndScenario(t *testing.T) {
	p, allocs := newTestPool(t)
	require.Equal(t, 5, p.CurMaxStrongPoolSize())

	objs := make([]*testObject, 6)
	for i := range objs {
		objs[i] = p.Acquire()
	}
	require.Equal(t, 6, *allocs)

	for _, o := range objs {
		p.Release(o)
	}
	require.Equal(t, 5, p.NumStrongPooledRefs())
	require.Equal(t, 1, p.NumWeakPooledRefs())

	// With zero active objects the policy keeps the default capacity, so the
	// rescale pass migrates nothing.
	waitIdle(t, p)
	require.Equal(t, 5, p.CurMaxStrongPoolSize())
	require.Equal(t, 5, p.NumStrongPooledRefs())
	require.Equal(t, 1, p.NumWeakPooledRefs())

	obj := p.Acquire()
	assert.Equal(t, 6, *allocs, "acquire must reuse, not reallocate")
	assert.Equal(t, 1, p.NumActiveObjects())
	assert.Equal(t, 5, p.NumStrongPooledRefs(), "weak handle should be promoted during acquire")
	assert.Equal(t, 0, p.NumWeakPooledRefs())
	assert.True(t, p.IsActive(obj))

	runtime.KeepAlive(objs)
}

func TestStatsSnapshotTotals(t *testing.T) {
	p, _ := newTestPool(t)

	objs := make([]*testObject, 4)
	for i := range objs {
		objs[i] = p.Acquire()
	}
	for _, o := range objs {
		p.Release(o)
	}

	s := p.Stats()
	assert.Equal(t, 4, s.TotalAcquires)
	assert.Equal(t, 4, s.TotalReleases)
	assert.Equal(t, 4, s.FactoryAllocs)
	assert.Equal(t, 4, s.PeakActive)
	assert.Equal(t, 0, s.ActiveObjects)

	runtime.KeepAlive(objs)
}
