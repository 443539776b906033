package dma

import "github.com/aritramanna/axi-4-dma-subsystem/sim"

// An ElasticBuffer decouples the rate at which the read phase produces beats
// from the rate at which the write phase consumes them. It is a backing store
// with a prefetch register and an output register in front of it; the
// consumer only ever reads the output register and sees the next item with no
// added latency once it has been prefetched.
//
// Occupancy counts items in the backing store plus both registers. The buffer
// is full when occupancy reaches capacity and empty when the output register
// holds nothing. A push while full is dropped and a pop while empty is a
// no-op; the sequencer never issues either.
type ElasticBuffer struct {
	backing  sim.Buffer
	prefetch []byte
	output   []byte

	occupancy int
	capacity  int
}

// NewElasticBuffer creates a buffer that can hold capacity beats in total,
// registers included.
func NewElasticBuffer(name string, capacity int) *ElasticBuffer {
	return &ElasticBuffer{
		backing:  sim.NewBuffer(name+".Backing", capacity),
		capacity: capacity,
	}
}

// Push enqueues one beat. Beats pushed while the buffer is full are dropped.
// A push on the same tick as a pop is accepted even at full occupancy, since
// the pop has already vacated a slot.
func (b *ElasticBuffer) Push(data []byte) {
	if b.Full() {
		return
	}

	b.backing.Push(data)
	b.occupancy++
	b.refill()
}

// Pop dequeues the beat in the output register, or returns nil when the
// buffer is empty.
func (b *ElasticBuffer) Pop() []byte {
	if b.output == nil {
		return nil
	}

	data := b.output
	b.output = nil
	b.occupancy--
	b.refill()

	return data
}

// Peek returns the beat in the output register without removing it.
func (b *ElasticBuffer) Peek() []byte {
	return b.output
}

// refill advances items toward the output register until both registers are
// occupied or the backing store is drained.
func (b *ElasticBuffer) refill() {
	if b.prefetch == nil && b.backing.Size() > 0 {
		b.prefetch = b.backing.Pop().([]byte)
	}

	if b.output == nil && b.prefetch != nil {
		b.output = b.prefetch
		b.prefetch = nil
	}

	if b.prefetch == nil && b.backing.Size() > 0 {
		b.prefetch = b.backing.Pop().([]byte)
	}
}

// Occupancy returns the number of beats resident, registers included.
func (b *ElasticBuffer) Occupancy() int {
	return b.occupancy
}

// Capacity returns the total number of beats the buffer can hold.
func (b *ElasticBuffer) Capacity() int {
	return b.capacity
}

// Full returns true when no further push can be accepted this tick.
func (b *ElasticBuffer) Full() bool {
	return b.occupancy >= b.capacity
}

// Empty returns true when the output register holds nothing.
func (b *ElasticBuffer) Empty() bool {
	return b.output == nil
}

// SoftReset unconditionally discards all resident beats, registers included.
// The sequencer invokes it whenever a transfer reaches the terminal phase so
// no stale data survives into the next transfer.
func (b *ElasticBuffer) SoftReset() {
	b.backing.Clear()
	b.prefetch = nil
	b.output = nil
	b.occupancy = 0
}
