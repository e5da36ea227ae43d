package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool runs independent jobs on a fixed number of workers and counts how
// many of them failed. With a single worker, jobs run inline on the caller.
type Pool struct {
	wg     sync.WaitGroup
	work   chan func()
	stop   func()
	done   atomic.Uint64
	failed atomic.Uint64
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{stop: func() {}}
	if numWorkers > 1 {
		pool.work = make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range pool.work {
					f()
				}
			})
		}

		pool.stop = sync.OnceFunc(func() { close(pool.work) })
	}

	return pool
}

// Go queues f. It blocks while all workers are busy and the queue is full.
func (p *Pool) Go(f func() error) {
	job := func() {
		if err := f(); err != nil {
			p.failed.Add(1)
			return
		}
		p.done.Add(1)
	}

	if p.work == nil {
		job()
		return
	}
	p.work <- job
}

// Wait stops accepting jobs, waits for the queued ones and returns the number
// of successful and failed jobs.
func (p *Pool) Wait() (done, failed uint64) {
	p.stop()
	p.wg.Wait()
	return p.done.Load(), p.failed.Load()
}
