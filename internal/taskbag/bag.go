// Package taskbag provides concurrent-safe pools of sample indices with
// take-or-empty semantics. A bag hands every index it holds to exactly one
// caller of Take; once Take reports false the bag stays empty.
package taskbag

import (
	"fmt"
	"sync"
)

// Bag is a multi-consumer pool of work items.
type Bag interface {
	// Take removes one index from the bag. It returns false once the bag is
	// exhausted.
	Take() (int, bool)
	// Close releases resources held by the bag. Items not yet taken are
	// discarded. Close is safe to call more than once.
	Close()
}

// Kind selects a Bag implementation.
type Kind string

const (
	// KindMutex is a mutex-guarded FIFO filled before any consumer runs.
	KindMutex Kind = "mutex"
	// KindChannel is a buffered channel filled and closed before any
	// consumer runs.
	KindChannel Kind = "channel"
	// KindStream is a bounded producer/consumer pipeline.
	KindStream Kind = "stream"
)

// Kinds lists the selectable kinds in display order.
func Kinds() []Kind { return []Kind{KindMutex, KindChannel, KindStream} }

// New builds a bag of kind k holding lo..hi inclusive. capacity is only used
// by KindStream; a non-positive capacity defaults to DefaultStreamCapacity.
func New(k Kind, lo, hi, capacity int) (Bag, error) {
	switch k {
	case KindMutex, "":
		return NewMutexBag(lo, hi), nil
	case KindChannel:
		return NewChannelBag(lo, hi), nil
	case KindStream:
		return NewStreamBag(lo, hi, capacity), nil
	default:
		return nil, fmt.Errorf("unknown task bag kind %q", k)
	}
}

// MutexBag is a FIFO backed by a slice and a head cursor.
type MutexBag struct {
	mu    sync.Mutex
	items []int
	head  int
}

// NewMutexBag returns a bag pre-filled with lo..hi inclusive.
func NewMutexBag(lo, hi int) *MutexBag {
	b := &MutexBag{}
	if hi >= lo {
		b.items = make([]int, 0, hi-lo+1)
		for i := lo; i <= hi; i++ {
			b.items = append(b.items, i)
		}
	}
	return b
}

// Take pops the front index.
func (b *MutexBag) Take() (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.head >= len(b.items) {
		return 0, false
	}
	i := b.items[b.head]
	b.head++
	return i, true
}

// Len returns the number of items still in the bag.
func (b *MutexBag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items) - b.head
}

// Close drops the backing slice.
func (b *MutexBag) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = nil
	b.head = 0
}

// ChannelBag is a buffered channel holding every index, closed after the
// last send so that receivers observe exhaustion.
type ChannelBag struct {
	ch chan int
}

// NewChannelBag returns a bag pre-filled with lo..hi inclusive.
func NewChannelBag(lo, hi int) *ChannelBag {
	size := 0
	if hi >= lo {
		size = hi - lo + 1
	}
	ch := make(chan int, size)
	for i := lo; i <= hi; i++ {
		ch <- i
	}
	close(ch)
	return &ChannelBag{ch: ch}
}

// Take receives the next index.
func (b *ChannelBag) Take() (int, bool) {
	i, ok := <-b.ch
	return i, ok
}

// Close is a no-op; the channel is closed at construction.
func (b *ChannelBag) Close() {}
