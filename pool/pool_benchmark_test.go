package pool

import (
	"testing"
)

func BenchmarkAcquireRelease(b *testing.B) {
	p, err := New(
		func() *testObject { return &testObject{value: 42} },
		func(o *testObject) { o.dirty = false },
	)
	if err != nil {
		b.Fatal(err)
	}
	defer p.Close()

	b.ResetTimer()
	for range b.N {
		obj := p.Acquire()
		p.Release(obj)
	}
}

func BenchmarkAcquireReleaseParallel(b *testing.B) {
	p, err := New(
		func() *testObject { return &testObject{value: 42} },
		func(o *testObject) { o.dirty = false },
	)
	if err != nil {
		b.Fatal(err)
	}
	defer p.Close()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			obj := p.Acquire()
			p.Release(obj)
		}
	})
}
