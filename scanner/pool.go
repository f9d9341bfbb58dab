package scanner

import (
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// Pool owns a fixed number of workers running against a shared job queue
// and collector. Workers exit on their own once the queue drains; StopAll
// terminates them early.
type Pool struct {
	workers []*Worker
	wg      sync.WaitGroup
	alive   atomic.Int32
	faults  atomic.Int64
}

// StartPool creates and starts n workers. A nil dial falls back to
// net.DialTimeout.
func StartPool(queue *JobQueue, collector *Collector, n int, timeout time.Duration, dial DialFunc) *Pool {
	if dial == nil {
		dial = net.DialTimeout
	}
	p := &Pool{workers: make([]*Worker, 0, n)}
	for i := 0; i < n; i++ {
		w := &Worker{
			queue:     queue,
			collector: collector,
			timeout:   timeout,
			dial:      dial,
			faults:    &p.faults,
		}
		p.workers = append(p.workers, w)
		p.wg.Add(1)
		p.alive.Add(1)
		go func() {
			defer p.wg.Done()
			defer p.alive.Add(-1)
			w.run()
		}()
	}
	return p
}

// StopAll requests cooperative termination of every worker and blocks until
// each has actually exited. It is idempotent and safe to call after some or
// all workers have already terminated on their own.
func (p *Pool) StopAll() {
	for _, w := range p.workers {
		w.Stop()
	}
	p.wg.Wait()
}

// Alive reports how many workers are still running.
func (p *Pool) Alive() int {
	return int(p.alive.Load())
}

// Faults reports how many attempts ended in an unclassifiable error.
func (p *Pool) Faults() int64 {
	return p.faults.Load()
}
