package gring

import (
	"errors"
	"fmt"
	"iter"
)

var (
	ERR_VALUE = errors.New("Bad value")
)

// Ring keeps the last Cap() pushed samples, overwriting the oldest.
type Ring[T any] struct {
	l   int
	s   []T
	pos int
}

func NewRing[T any](capacity int) (*Ring[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("Invalid capacity: %d. Error: %w", capacity, ERR_VALUE)
	}
	return &Ring[T]{
		l:   0,
		s:   make([]T, capacity),
		pos: 0,
	}, nil
}

func (r *Ring[T]) Len() int { return r.l }
func (r *Ring[T]) Cap() int { return len(r.s) }

func (r *Ring[T]) Push(e T) {
	r.s[r.pos] = e
	r.pos++
	if r.pos >= len(r.s) {
		r.pos = 0
	}
	if r.l < len(r.s) {
		r.l++
	}
}

// All yields the samples newest first.
func (r *Ring[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range r.l {
			real_pos := r.pos - 1 - i
			if real_pos < 0 {
				real_pos += len(r.s)
			}
			if !yield(r.s[real_pos]) {
				return
			}
		}
	}
}

// AppendTo appends the samples oldest first to dst.
func (r *Ring[T]) AppendTo(dst []T) []T {
	start := r.pos - r.l
	if start < 0 {
		start += len(r.s)
	}
	for i := range r.l {
		dst = append(dst, r.s[(start+i)%len(r.s)])
	}
	return dst
}

func (r *Ring[T]) Reset() {
	clear(r.s)
	r.l, r.pos = 0, 0
}
