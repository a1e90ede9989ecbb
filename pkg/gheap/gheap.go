package gheap

// generic binary heap with an injected ordering

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

var (
	ErrHeapOrder = errors.New("Heap order violated")
)

// Ordered is implemented by values that know how to rank themselves.
type Ordered[T any] interface {
	Less(T) bool
}

func Less[T Ordered[T]](v, u T) bool {
	return v.Less(u)
}

// Heap keeps data[0] as the element that less ranks first.
// The zero Heap has no comparator and must not be used.
type Heap[T any] struct {
	data []T
	less func(a, b T) bool
}

// NewHeap returns an empty heap ordered by less. less(a, b) reports
// whether a should rise above b and must be a strict weak ordering.
func NewHeap[T any](less func(a, b T) bool) *Heap[T] {
	return &Heap[T]{less: less}
}

func NewMinHeap[T constraints.Ordered]() *Heap[T] {
	return NewHeap(func(a, b T) bool { return a < b })
}

func NewMaxHeap[T constraints.Ordered]() *Heap[T] {
	return NewHeap(func(a, b T) bool { return a > b })
}

func NewOrderedHeap[T Ordered[T]]() *Heap[T] {
	return NewHeap(Less[T])
}

// NewHeapFrom builds a heap out of a copy of items in linear time.
func NewHeapFrom[T any](less func(a, b T) bool, items []T) *Heap[T] {
	h := &Heap[T]{
		data: make([]T, len(items)),
		less: less,
	}
	copy(h.data, items)
	h.init()
	return h
}

func (h *Heap[T]) init() {
	for i := len(h.data)/2 - 1; i >= 0; i-- {
		h.down(i)
	}
}

func (h *Heap[T]) down(u int) {
	n := len(h.data)
	for {
		v := u
		left, right := 2*u+1, 2*u+2
		if left < n && h.less(h.data[left], h.data[v]) {
			v = left
		}
		if right < n && h.less(h.data[right], h.data[v]) {
			v = right
		}
		if v == u {
			return
		}
		h.data[v], h.data[u] = h.data[u], h.data[v]
		u = v
	}
}

func (h *Heap[T]) up(u int) {
	for u != 0 && h.less(h.data[u], h.data[(u-1)/2]) {
		h.data[(u-1)/2], h.data[u] = h.data[u], h.data[(u-1)/2]
		u = (u - 1) / 2
	}
}

func (h *Heap[T]) Len() int      { return len(h.data) }
func (h *Heap[T]) IsEmpty() bool { return len(h.data) == 0 }

func (h *Heap[T]) Push(e T) {
	h.data = append(h.data, e)
	h.up(len(h.data) - 1)
}

// Pop removes and returns the root. ok is false if the heap is empty.
func (h *Heap[T]) Pop() (e T, ok bool) {
	n := len(h.data)
	if n == 0 {
		return e, false
	}
	e = h.data[0]
	h.data[0] = h.data[n-1]
	var zero T
	h.data[n-1] = zero
	h.data = h.data[:n-1]
	h.down(0)
	return e, true
}

func (h *Heap[T]) Peek() (e T, ok bool) {
	if len(h.data) == 0 {
		return e, false
	}
	return h.data[0], true
}

// Validate checks that no child is ranked above its parent.
func (h *Heap[T]) Validate() error {
	for child := 1; child < len(h.data); child++ {
		parent := (child - 1) / 2
		if h.less(h.data[child], h.data[parent]) {
			return fmt.Errorf(
				"Child %d precedes parent %d of %d elements: %w",
				child, parent, len(h.data), ErrHeapOrder)
		}
	}
	return nil
}
