package gslist

import (
	"fmt"
	"strings"
)

type node[T any] struct {
	value T
	next  *node[T]
}

// List is a forward-only stack of values. The zero List is empty and ready
// to use. Its length is not tracked.
type List[T any] struct {
	head *node[T]
}

func New[T any]() *List[T] {
	return &List[T]{}
}

func (l *List[T]) PushFront(value T) {
	l.head = &node[T]{value: value, next: l.head}
}

// PopFront removes the head and returns its value, ok is false if the
// list is empty.
func (l *List[T]) PopFront() (value T, ok bool) {
	old_head := l.head
	if old_head == nil {
		return value, false
	}
	l.head = old_head.next
	old_head.next = nil
	return old_head.value, true
}

func (l *List[T]) Peek() (value T, ok bool) {
	if l.head == nil {
		return value, false
	}
	return l.head.value, true
}

func (l *List[T]) IsEmpty() bool {
	return l.head == nil
}

func (l *List[T]) Sprintf(format string) string {
	b := new(strings.Builder)
	b.WriteString("[ ")
	for current := l.head; current != nil; current = current.next {
		b.WriteString(fmt.Sprintf(format, current.value))
		b.WriteString(" ")
	}
	b.WriteString("]")
	return b.String()
}

func (l *List[T]) String() string {
	return l.Sprintf("%v")
}
