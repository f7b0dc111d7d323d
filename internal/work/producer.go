package work

import "sync"

type Producer interface {
	Produce(work chan *WorkUnit, wg *sync.WaitGroup)
}

type StandardProducer struct {
	count int
}

func NewStandardProducer(count int) *StandardProducer {
	return &StandardProducer{count: count}
}

// Submits one WorkUnit per point index to the provided work channel.
// Closes the channel when all work is submitted.
func (p *StandardProducer) Produce(work chan *WorkUnit, wg *sync.WaitGroup) {
	for i := 0; i < p.count; i++ {
		work <- &WorkUnit{Index: i}
	}
	close(work)
	wg.Done()
}
