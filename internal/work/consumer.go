package work

import "sync"

type Consumer interface {
	Consume(workchan chan *WorkUnit, errchan chan error, waitGroup *sync.WaitGroup)
}

// ClassifyFunc processes the point at the given index.
type ClassifyFunc func(index int) error

// StandardConsumer continually consumes WorkUnits submitted to a work
// channel, feeding each to its classify callback. It keeps working until
// the work channel is closed or an error is raised; in that case it
// submits the error to the error channel before quitting.
type StandardConsumer struct {
	classify ClassifyFunc
}

func NewStandardConsumer(classify ClassifyFunc) *StandardConsumer {
	return &StandardConsumer{classify: classify}
}

func (c *StandardConsumer) Consume(workchan chan *WorkUnit, errchan chan error, waitGroup *sync.WaitGroup) {
	for {
		// get work from channel
		unit, ok := <-workchan
		if !ok {
			// channel was closed by the producer, quit
			break
		}

		if err := c.classify(unit.Index); err != nil {
			errchan <- err
			break
		}
	}

	waitGroup.Done()
}
