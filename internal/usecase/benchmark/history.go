package benchmark

import dombench "github.com/lexidex/lexidex/internal/domain/benchmark"

// ring is a fixed-capacity FIFO buffer of adapter results. Appending beyond
// capacity overwrites the oldest entry in place; the buffer never grows.
type ring struct {
	buf  []dombench.AdapterResult
	head int
	size int
}

func newRing(capacity int) *ring {
	if capacity <= 0 {
		capacity = 1
	}
	return &ring{buf: make([]dombench.AdapterResult, capacity)}
}

func (r *ring) append(v dombench.AdapterResult) {
	if r.size < len(r.buf) {
		r.buf[(r.head+r.size)%len(r.buf)] = v
		r.size++
		return
	}
	r.buf[r.head] = v
	r.head = (r.head + 1) % len(r.buf)
}

// snapshot returns the retained entries oldest-first.
func (r *ring) snapshot() []dombench.AdapterResult {
	out := make([]dombench.AdapterResult, 0, r.size)
	for i := 0; i < r.size; i++ {
		out = append(out, r.buf[(r.head+i)%len(r.buf)])
	}
	return out
}
