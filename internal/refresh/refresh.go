// Package refresh runs keyed background jobs, at most one in flight per key.
package refresh

import (
	"context"
	"sync"
	"time"
)

type Job struct {
	Key string
}

type Refresher struct {
	ch      chan Job
	inFly   sync.Map // key -> struct{}
	timeout time.Duration
	wg      sync.WaitGroup
	Do      func(ctx context.Context, j Job)
}

func New(capacity int, workerCount int, timeout time.Duration, do func(ctx context.Context, j Job)) *Refresher {
	if capacity <= 0 {
		capacity = 256
	}
	if workerCount <= 0 {
		workerCount = 2
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	r := &Refresher{ch: make(chan Job, capacity), timeout: timeout, Do: do}
	r.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go r.worker()
	}
	return r
}

// Enqueue reports whether the job was accepted. A key already queued or
// running is skipped, and so is any job when the queue is full.
func (r *Refresher) Enqueue(j Job) bool {
	if _, exists := r.inFly.LoadOrStore(j.Key, struct{}{}); exists {
		return false
	}
	select {
	case r.ch <- j:
		return true
	default:
		r.inFly.Delete(j.Key)
		return false
	}
}

// Close stops accepting work and waits for running jobs. Enqueue must not be
// called afterwards.
func (r *Refresher) Close() {
	close(r.ch)
	r.wg.Wait()
}

func (r *Refresher) worker() {
	defer r.wg.Done()
	for j := range r.ch {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		func() {
			defer func() {
				r.inFly.Delete(j.Key)
				cancel()
			}()
			if r.Do != nil {
				r.Do(ctx, j)
			}
		}()
	}
}
