// Package workers provides a small abstraction for launching the
// application's background processes in a unified way: the client's periodic
// reconciliation job and change-feed poller, and the server's rate-limit
// window sweeper.
package workers

// Worker is implemented by any background process. Run is expected to start
// the worker and return; long-lived work happens in goroutines the worker
// spawns internally.
type Worker interface {
	Run()
}

// WorkerFunc adapts a plain function to the [Worker] interface.
type WorkerFunc func()

func (f WorkerFunc) Run() { f() }

// Workers aggregates background workers so callers can launch them all with
// a single Run call, in registration order.
type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
