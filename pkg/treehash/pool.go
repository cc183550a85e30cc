package treehash

import (
	"runtime"
	"sync"
)

// queueFactor sizes the task queue relative to the worker count. The
// queue is deliberately bounded; see Submit.
const queueFactor = 64

// Pool is a fixed-size worker pool. A run can own its pool, or the
// caller can build one and share it across several runs.
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup
	size  int
}

// NewPool starts size workers. A size of zero or less uses the number
// of CPUs.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	p := &Pool{
		tasks: make(chan func(), size*queueFactor),
		size:  size,
	}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Submit runs task on the pool. When the queue is full the task runs
// on the calling goroutine instead, so a worker that produces tasks
// can never block waiting for queue space it is supposed to free up.
func (p *Pool) Submit(task func()) {
	select {
	case p.tasks <- task:
	default:
		task()
	}
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Close drains the queue and stops the workers. Submit must not be
// called after Close.
func (p *Pool) Close() {
	close(p.tasks)
	p.wg.Wait()
}
