package main

import (
	"net/http"
	_ "net/http/pprof" // Import pprof
	"runtime"
	"sync"
	"time"

	"github.com/AlexsanderHamir/weakpool/pool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type payload struct {
	Data []byte
	Hits int
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	p, err := pool.New(
		func() *payload { return &payload{Data: make([]byte, 4096)} },
		func(pl *payload) { pl.Hits = 0 },
		pool.WithLogger[payload](logger),
	)
	if err != nil {
		logger.Fatal("failed to create pool", zap.Error(err))
	}
	defer p.Close()

	serveDebug(p, logger)

	logger.Info("pprof ready at http://localhost:6060/debug/pprof/")
	runWorkload(p, logger)

	// Push the weak tier through a few collection cycles so the reclamation
	// counters have something to show.
	for range 3 {
		runtime.GC()
		time.Sleep(100 * time.Millisecond)
	}

	p.PrintPoolStats()
}

func serveDebug[T any](p *pool.Pool[T], logger *zap.Logger) {
	runtime.SetMutexProfileFraction(1)
	runtime.SetBlockProfileRate(1)

	reg := prometheus.NewRegistry()
	if err := reg.Register(pool.NewCollector(p, "weakpool")); err != nil {
		logger.Fatal("failed to register collector", zap.Error(err))
	}
	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	go func() {
		logger.Info("debug server running on :6060")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			logger.Warn("debug server stopped", zap.Error(err))
		}
	}()
}

func runWorkload(p *pool.Pool[payload], logger *zap.Logger) {
	numWorkers := 8
	objectsPerWorker := 5000

	logger.Info("workload starting", zap.Int("workers", numWorkers))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range objectsPerWorker {
				obj := p.Acquire()
				obj.Hits++
				p.Release(obj)
			}
		}()
	}
	wg.Wait()

	logger.Info("workload finished")
}
