package gdlist

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func front[T any](l *List[T]) T { v, _ := l.PeekFront(); return v }
func back[T any](l *List[T]) T { v, _ := l.PeekBack(); return v }
func ith[T any](l *List[T], i int) T { v, _ := l.PeekIth(i); return v }

func TestPushFront(t *testing.T) {
	assert := assert.New(t)
	l := New[int]()
	l.PushFront(1)
	assert.Equal(1, front(l))
	assert.Equal(1, back(l))
	l.PushFront(2)
	assert.Equal(2, front(l))
	assert.Equal(1, back(l))
	l.PushFront(3)
	assert.Equal(3, front(l))
	assert.Equal(1, back(l))
	assert.NoError(l.Validate())
}

func TestPushBack(t *testing.T) {
	assert := assert.New(t)
	l := New[int]()
	l.PushBack(1)
	assert.Equal(1, front(l))
	assert.Equal(1, back(l))
	l.PushBack(2)
	assert.Equal(1, front(l))
	assert.Equal(2, back(l))
	l.PushBack(3)
	assert.Equal(1, front(l))
	assert.Equal(3, back(l))
	assert.Equal("[ 1 2 3 ]", l.String())
	assert.NoError(l.Validate())
}

func TestPopFront(t *testing.T) {
	assert := assert.New(t)
	l := New[int]()
	_, ok := l.PopFront()
	assert.False(ok)
	l.PushFront(1)
	l.PushFront(2)
	l.PushFront(3)
	for _, want := range []int{3, 2, 1} {
		got, ok := l.PopFront()
		assert.True(ok)
		assert.Equal(want, got)
		assert.NoError(l.Validate())
	}
	_, ok = l.PopFront()
	assert.False(ok)
}

func TestPopBack(t *testing.T) {
	assert := assert.New(t)
	l := New[int]()
	_, ok := l.PopBack()
	assert.False(ok)
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)
	for _, want := range []int{3, 2, 1} {
		got, ok := l.PopBack()
		assert.True(ok)
		assert.Equal(want, got)
		assert.NoError(l.Validate())
	}
	_, ok = l.PopBack()
	assert.False(ok)
}

func TestPeek(t *testing.T) {
	assert := assert.New(t)
	l := New[int]()
	_, ok := l.PeekFront()
	assert.False(ok)
	_, ok = l.PeekBack()
	assert.False(ok)

	l.PushFront(1)
	l.PushFront(2)
	assert.Equal(2, front(l))
	assert.Equal(1, back(l))
	l.PopFront()
	assert.Equal(1, front(l))
	assert.Equal(1, back(l))
	l.PopFront()
	_, ok = l.PeekFront()
	assert.False(ok)
	_, ok = l.PeekBack()
	assert.False(ok)
}

func TestIsEmpty(t *testing.T) {
	assert := assert.New(t)
	var l List[int]
	assert.True(l.IsEmpty())
	assert.NoError(l.Validate())
	l.PushFront(1)
	assert.False(l.IsEmpty())
	l.PopFront()
	assert.True(l.IsEmpty())
	assert.Equal(0, l.Len())
}

func TestInsertIth(t *testing.T) {
	assert := assert.New(t)
	l := New[int]()
	l.InsertIth(0, 1)
	assert.Equal(1, front(l))
	assert.Equal(1, back(l))
	l.InsertIth(0, 2)
	assert.Equal(2, front(l))
	assert.Equal(1, back(l))
	l.InsertIth(1, 3)
	assert.Equal(2, front(l))
	assert.Equal(1, back(l))
	assert.Equal(3, ith(l, 1))
	l.InsertIth(3, 4)
	assert.Equal(4, back(l))
	assert.Equal(4, ith(l, 3))
	l.InsertIth(100, 5)
	l.InsertIth(-3, 6)
	assert.Equal("[ 6 2 3 1 4 5 ]", l.String())
	assert.NoError(l.Validate())
}

func TestPeekIth(t *testing.T) {
	assert := assert.New(t)
	l := New[int]()
	_, ok := l.PeekIth(0)
	assert.False(ok)
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)
	assert.Equal(1, ith(l, 0))
	assert.Equal(2, ith(l, 1))
	assert.Equal(3, ith(l, 2))
	_, ok = l.PeekIth(3)
	assert.False(ok)
	_, ok = l.PeekIth(-1)
	assert.False(ok)

	v, ok := l.PeekIthBack(0)
	assert.True(ok)
	assert.Equal(3, v)
	_, ok = l.PeekIthBack(3)
	assert.False(ok)
}

func TestPushPopExample(t *testing.T) {
	assert := assert.New(t)
	l := New[int]()
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)
	assert.Equal(1, front(l))
	assert.Equal(3, back(l))
	assert.Equal(2, ith(l, 1))
	v, ok := l.PopBack()
	assert.True(ok)
	assert.Equal(3, v)
	assert.Equal(2, back(l))
}

func TestSlotsAreReused(t *testing.T) {
	assert := assert.New(t)
	l := New[int]()
	for i := range 8 {
		l.PushBack(i)
	}
	for range 4 {
		l.PopFront()
	}
	assert.Len(l.free, 4)
	for i := range 4 {
		l.InsertIth(2, i)
	}
	assert.Len(l.nodes, 8)
	assert.Empty(l.free)
	assert.NoError(l.Validate())
}

func TestReleaseDropsValue(t *testing.T) {
	l := New[*int]()
	one := 1
	l.PushBack(&one)
	l.PopBack()
	require.Len(t, l.nodes, 1)
	assert.Nil(t, l.nodes[0].value)
	assert.False(t, l.nodes[0].live)
}

func TestClear(t *testing.T) {
	assert := assert.New(t)
	l := New[string]()
	l.PushBack("a")
	l.PushBack("b")
	l.PopFront()
	l.Clear()
	assert.True(l.IsEmpty())
	assert.Empty(l.nodes)
	assert.Empty(l.free)
	assert.NoError(l.Validate())
	l.PushFront("c")
	assert.Equal("[ c ]", l.String())
}

func TestValidateDetectsCorruption(t *testing.T) {
	build := func() *List[int] {
		l := New[int]()
		for i := range 4 {
			l.PushBack(i)
		}
		return l
	}
	corruptions := map[string]func(l *List[int]){
		"length":    func(l *List[int]) { l.len++ },
		"back link": func(l *List[int]) { l.at(l.tail).prev = l.head },
		"cycle":     func(l *List[int]) { l.at(l.tail).next = l.head },
		"tail":      func(l *List[int]) { l.tail = l.at(l.tail).prev },
		"released":  func(l *List[int]) { l.at(l.at(l.head).next).live = false },
		"free":      func(l *List[int]) { l.free = append(l.free, l.head) },
	}
	for name, corrupt := range corruptions {
		t.Run(name, func(t *testing.T) {
			l := build()
			require.NoError(t, l.Validate())
			corrupt(l)
			assert.ErrorIs(t, l.Validate(), ErrCorrupt)
		})
	}
}

func TestOrderings(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOf(rapid.Int()).Draw(t, "values")

		fifo, lifo := New[int](), New[int]()
		for _, v := range values {
			fifo.PushBack(v)
			lifo.PushFront(v)
		}
		var fifo_out, lifo_out []int
		for !fifo.IsEmpty() {
			v, _ := fifo.PopFront()
			fifo_out = append(fifo_out, v)
		}
		for !lifo.IsEmpty() {
			v, _ := lifo.PopFront()
			lifo_out = append(lifo_out, v)
		}
		reversed := slices.Clone(values)
		slices.Reverse(reversed)
		if !slices.Equal(fifo_out, values) {
			t.Fatalf("FIFO order %v, pushed %v", fifo_out, values)
		}
		if !slices.Equal(lifo_out, reversed) {
			t.Fatalf("LIFO order %v, pushed %v", lifo_out, values)
		}
	})
}

func TestAgainstSlice(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		l := New[int]()
		var model []int
		t.Repeat(map[string]func(*rapid.T){
			"push front": func(t *rapid.T) {
				v := rapid.Int().Draw(t, "v")
				l.PushFront(v)
				model = slices.Insert(model, 0, v)
			},
			"push back": func(t *rapid.T) {
				v := rapid.Int().Draw(t, "v")
				l.PushBack(v)
				model = append(model, v)
			},
			"insert": func(t *rapid.T) {
				i := rapid.IntRange(-2, len(model)+2).Draw(t, "i")
				v := rapid.Int().Draw(t, "v")
				l.InsertIth(i, v)
				model = slices.Insert(model, min(max(i, 0), len(model)), v)
			},
			"pop front": func(t *rapid.T) {
				got, ok := l.PopFront()
				if len(model) == 0 {
					if ok {
						t.Fatalf("PopFront on empty list returned %d", got)
					}
					return
				}
				if !ok || got != model[0] {
					t.Fatalf("PopFront returned %d, %v, want %d", got, ok, model[0])
				}
				model = model[1:]
			},
			"pop back": func(t *rapid.T) {
				got, ok := l.PopBack()
				if len(model) == 0 {
					if ok {
						t.Fatalf("PopBack on empty list returned %d", got)
					}
					return
				}
				want := model[len(model)-1]
				if !ok || got != want {
					t.Fatalf("PopBack returned %d, %v, want %d", got, ok, want)
				}
				model = model[:len(model)-1]
			},
			"insert at ends": func(t *rapid.T) {
				v := rapid.Int().Draw(t, "v")
				l.InsertIth(0, v)
				l.InsertIth(l.Len(), v)
				model = append(slices.Insert(model, 0, v), v)
				if f, _ := l.PeekFront(); f != v {
					t.Fatalf("InsertIth(0) left %d at front", f)
				}
				if b, _ := l.PeekBack(); b != v {
					t.Fatalf("InsertIth(len) left %d at back", b)
				}
			},
			"": func(t *rapid.T) {
				if err := l.Validate(); err != nil {
					t.Fatal(err)
				}
				if l.Len() != len(model) {
					t.Fatalf("Len %d, model has %d", l.Len(), len(model))
				}
				for i, want := range model {
					got, ok := l.PeekIth(i)
					if !ok || got != want {
						t.Fatalf("PeekIth(%d) returned %d, %v, want %d", i, got, ok, want)
					}
					mirrored, _ := l.PeekIthBack(len(model) - 1 - i)
					if mirrored != got {
						t.Fatalf("PeekIthBack(%d) returned %d, want %d", len(model)-1-i, mirrored, got)
					}
				}
				if _, ok := l.PeekIth(len(model)); ok {
					t.Fatalf("PeekIth(len) returned a value")
				}
			},
		})
	})
}

func BenchmarkPushPopBoth(b *testing.B) {
	l := New[int]()
	for i := range 1024 {
		l.PushBack(i)
	}
	b.ResetTimer()
	for i := range b.N {
		l.PushBack(i)
		l.PopFront()
		l.PushFront(i)
		l.PopBack()
	}
}

func BenchmarkInsertMiddle(b *testing.B) {
	l := New[int]()
	for i := range 256 {
		l.PushBack(i)
	}
	b.ResetTimer()
	for i := range b.N {
		l.InsertIth(128, i)
		l.PopBack()
	}
}
