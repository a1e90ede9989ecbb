package indexed

// Indexed pairs a value with a priority and an insertion sequence number.
// Equal priorities rank by sequence, so a heap of Indexed values pops ties
// in the order they were pushed.
type Indexed[T any] struct {
	priority int64
	seq      uint64
	value    T
}

func NewIndexed[T any](priority int64, seq uint64, value T) Indexed[T] {
	return Indexed[T]{priority, seq, value}
}

func (i Indexed[T]) Less(other Indexed[T]) bool {
	if i.priority != other.priority {
		return i.priority < other.priority
	}
	return i.seq < other.seq
}

func (i Indexed[T]) Priority() int64 { return i.priority }
func (i Indexed[T]) Seq() uint64     { return i.seq }
func (i Indexed[T]) Value() T        { return i.value }
