// Package gdlist implements a doubly linked list whose nodes live in a
// slice arena. Links are slot references instead of pointers, so a removed
// node can never be reached again: its slot is zeroed and parked on a free
// list until the next insertion reuses it.
//
// A List is not safe for concurrent use.
package gdlist

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCorrupt = errors.New("List links are inconsistent")
)

// ref addresses nodes[ref-1]. The zero ref is the absent link, which keeps
// the zero List valid.
type ref int

const none ref = 0

type node[T any] struct {
	value T
	prev  ref
	next  ref
	live  bool
}

type List[T any] struct {
	nodes []node[T]
	free  []ref
	head  ref
	tail  ref
	len   int
}

func New[T any]() *List[T] {
	return &List[T]{}
}

// at must not be held across alloc, which may move the arena.
func (l *List[T]) at(r ref) *node[T] {
	return &l.nodes[r-1]
}

func (l *List[T]) alloc(value T, prev, next ref) ref {
	n := node[T]{value: value, prev: prev, next: next, live: true}
	if k := len(l.free); k > 0 {
		r := l.free[k-1]
		l.free = l.free[:k-1]
		*l.at(r) = n
		return r
	}
	l.nodes = append(l.nodes, n)
	return ref(len(l.nodes))
}

// release takes the value out of r and returns the slot to the free list.
// r must already be unlinked.
func (l *List[T]) release(r ref) T {
	n := l.at(r)
	value := n.value
	*n = node[T]{}
	l.free = append(l.free, r)
	return value
}

func (l *List[T]) Len() int      { return l.len }
func (l *List[T]) IsEmpty() bool { return l.len == 0 }

func (l *List[T]) PushFront(value T) {
	r := l.alloc(value, none, l.head)
	if l.head == none {
		l.tail = r
	} else {
		l.at(l.head).prev = r
	}
	l.head = r
	l.len++
}

func (l *List[T]) PushBack(value T) {
	r := l.alloc(value, l.tail, none)
	if l.tail == none {
		l.head = r
	} else {
		l.at(l.tail).next = r
	}
	l.tail = r
	l.len++
}

func (l *List[T]) PopFront() (value T, ok bool) {
	r := l.head
	if r == none {
		return value, false
	}
	next := l.at(r).next
	l.head = next
	if next == none {
		l.tail = none
	} else {
		l.at(next).prev = none
	}
	l.len--
	return l.release(r), true
}

func (l *List[T]) PopBack() (value T, ok bool) {
	r := l.tail
	if r == none {
		return value, false
	}
	prev := l.at(r).prev
	l.tail = prev
	if prev == none {
		l.head = none
	} else {
		l.at(prev).next = none
	}
	l.len--
	return l.release(r), true
}

// InsertIth places value so that it ends up at position index. An index at
// or below zero pushes to the front, one at or past Len pushes to the back.
func (l *List[T]) InsertIth(index int, value T) {
	if index <= 0 {
		l.PushFront(value)
		return
	}
	if index >= l.len {
		l.PushBack(value)
		return
	}
	current := l.refAt(index)
	prev := l.at(current).prev
	r := l.alloc(value, prev, current)
	l.at(prev).next = r
	l.at(current).prev = r
	l.len++
}

// refAt walks from the nearer end. index must be in [0, len).
func (l *List[T]) refAt(index int) ref {
	if index < l.len/2 {
		r := l.head
		for range index {
			r = l.at(r).next
		}
		return r
	}
	r := l.tail
	for range l.len - 1 - index {
		r = l.at(r).prev
	}
	return r
}

// PeekIth returns the value at position index counted from the front.
func (l *List[T]) PeekIth(index int) (value T, ok bool) {
	if index < 0 || index >= l.len {
		return value, false
	}
	return l.at(l.refAt(index)).value, true
}

// PeekIthBack returns the value at position index counted from the back.
func (l *List[T]) PeekIthBack(index int) (value T, ok bool) {
	if index < 0 || index >= l.len {
		return value, false
	}
	return l.at(l.refAt(l.len - 1 - index)).value, true
}

func (l *List[T]) PeekFront() (value T, ok bool) {
	if l.head == none {
		return value, false
	}
	return l.at(l.head).value, true
}

func (l *List[T]) PeekBack() (value T, ok bool) {
	if l.tail == none {
		return value, false
	}
	return l.at(l.tail).value, true
}

// Clear drops every value and reclaims the whole arena.
func (l *List[T]) Clear() {
	clear(l.nodes)
	l.nodes = l.nodes[:0]
	l.free = l.free[:0]
	l.head, l.tail = none, none
	l.len = 0
}

// Validate walks the list in both directions and reports the first broken
// invariant.
func (l *List[T]) Validate() error {
	if (l.head == none) != (l.len == 0) || (l.tail == none) != (l.len == 0) {
		return fmt.Errorf("Head %d, tail %d with length %d: %w", l.head, l.tail, l.len, ErrCorrupt)
	}
	if l.len+len(l.free) != len(l.nodes) {
		return fmt.Errorf(
			"%d live and %d free slots in an arena of %d: %w",
			l.len, len(l.free), len(l.nodes), ErrCorrupt)
	}

	count := 0
	for previous, current := none, l.head; current != none; previous, current = current, l.at(current).next {
		if count == l.len {
			return fmt.Errorf("More than %d nodes reachable from head: %w", l.len, ErrCorrupt)
		}
		if current < 1 || int(current) > len(l.nodes) {
			return fmt.Errorf("Link %d outside the arena: %w", current, ErrCorrupt)
		}
		n := l.at(current)
		if !n.live {
			return fmt.Errorf("Released slot %d still linked at %d: %w", current, count, ErrCorrupt)
		}
		if n.prev != previous {
			return fmt.Errorf("Node %d points back to %d instead of %d: %w", count, n.prev, previous, ErrCorrupt)
		}
		if (n.next == none) != (current == l.tail) {
			return fmt.Errorf("Node %d has next %d while tail is %d: %w", current, n.next, l.tail, ErrCorrupt)
		}
		count++
	}
	if count != l.len {
		return fmt.Errorf("%d nodes reachable from head, length is %d: %w", count, l.len, ErrCorrupt)
	}

	count = 0
	for current := l.tail; current != none; current = l.at(current).prev {
		if count == l.len {
			return fmt.Errorf("More than %d nodes reachable from tail: %w", l.len, ErrCorrupt)
		}
		count++
	}
	if count != l.len {
		return fmt.Errorf("%d nodes reachable from tail, length is %d: %w", count, l.len, ErrCorrupt)
	}

	for _, r := range l.free {
		if r < 1 || int(r) > len(l.nodes) || l.at(r).live {
			return fmt.Errorf("Bad free slot %d: %w", r, ErrCorrupt)
		}
	}
	return nil
}

func (l *List[T]) Sprintf(format string) string {
	b := new(strings.Builder)
	b.WriteString("[ ")
	for current := l.head; current != none; current = l.at(current).next {
		b.WriteString(fmt.Sprintf(format, l.at(current).value))
		b.WriteString(" ")
	}
	b.WriteString("]")
	return b.String()
}

func (l *List[T]) String() string {
	return l.Sprintf("%v")
}
