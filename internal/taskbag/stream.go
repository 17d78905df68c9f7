package taskbag

import "sync"

// DefaultStreamCapacity is the buffer size of a StreamBag built without an
// explicit capacity.
const DefaultStreamCapacity = 4096

// StreamBag feeds lo..hi through a bounded buffer from a producer goroutine,
// so peak memory is proportional to the capacity instead of the item count.
// Close must be called once consumers stop, otherwise a producer blocked on a
// full buffer is leaked.
type StreamBag struct {
	ch       chan int
	done     chan struct{}
	once     sync.Once
	finished chan struct{}
}

// NewStreamBag starts the producer and returns the bag.
func NewStreamBag(lo, hi, capacity int) *StreamBag {
	if capacity <= 0 {
		capacity = DefaultStreamCapacity
	}
	b := &StreamBag{
		ch:       make(chan int, capacity),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	go b.produce(lo, hi)
	return b
}

func (b *StreamBag) produce(lo, hi int) {
	defer close(b.finished)
	defer close(b.ch)
	for i := lo; i <= hi; i++ {
		select {
		case b.ch <- i:
		case <-b.done:
			return
		}
	}
}

// Take receives the next index, blocking while the producer refills.
func (b *StreamBag) Take() (int, bool) {
	i, ok := <-b.ch
	return i, ok
}

// Close stops the producer and waits for it to exit.
func (b *StreamBag) Close() {
	b.once.Do(func() { close(b.done) })
	<-b.finished
}
