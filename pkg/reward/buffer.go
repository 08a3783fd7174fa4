package reward

import "github.com/samber/lo"

// CircularBuffer is a fixed size ring of values. It starts filled with an
// initial value so the mean ramps up over the first Size additions.
type CircularBuffer struct {
	buf   []float64
	index int
}

// NewCircularBuffer panics if size < 1
func NewCircularBuffer(size int, initial float64) *CircularBuffer {
	if size < 1 {
		panic("reward: circular buffer size must be positive")
	}
	buf := make([]float64, size)
	for i := range buf {
		buf[i] = initial
	}
	return &CircularBuffer{buf: buf}
}

// Add overwrites the oldest value
func (b *CircularBuffer) Add(v float64) {
	b.buf[b.index] = v
	b.index = (b.index + 1) % len(b.buf)
}

// Values returns a copy of the buffer in storage order
func (b *CircularBuffer) Values() []float64 {
	return append([]float64(nil), b.buf...)
}

func (b *CircularBuffer) Mean() float64 {
	return lo.Sum(b.buf) / float64(len(b.buf))
}

func (b *CircularBuffer) Size() int {
	return len(b.buf)
}
