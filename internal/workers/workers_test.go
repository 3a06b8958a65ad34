package workers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingWorker struct {
	runCount int
}

func (c *countingWorker) Run() {
	c.runCount++
}

func TestWorkersRun(t *testing.T) {
	t.Run("runs every registered worker once", func(t *testing.T) {
		w1 := &countingWorker{}
		w2 := &countingWorker{}
		w3 := &countingWorker{}

		NewWorkers(w1, w2, w3).Run()

		for _, w := range []*countingWorker{w1, w2, w3} {
			assert.Equal(t, 1, w.runCount)
		}
	})

	t.Run("runs workers in registration order", func(t *testing.T) {
		var order []int
		record := func(id int) Worker {
			return WorkerFunc(func() { order = append(order, id) })
		}

		NewWorkers(record(1), record(2), record(3)).Run()

		assert.Equal(t, []int{1, 2, 3}, order)
	})

	t.Run("does not panic without workers", func(t *testing.T) {
		NewWorkers().Run()

		var empty Workers
		empty.Run()
	})
}
