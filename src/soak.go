package main

import (
	// stdlib
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	// internal
	"github.com/Robogera/gcoll/pkg/config"
	"github.com/Robogera/gcoll/pkg/enums"
	"github.com/Robogera/gcoll/pkg/gdlist"
	"github.com/Robogera/gcoll/pkg/gheap"
	"github.com/Robogera/gcoll/pkg/gslist"
	"github.com/Robogera/gcoll/pkg/indexed"

	// external
	"golang.org/x/sync/errgroup"
)

const heap_priorities = 64

// worker drives one container instance and a plain model of it side by side.
type worker interface {
	Name() string
	// Step performs one random operation and compares the result with the model.
	Step(r *rand.Rand, max_len int) error
	Len() int
	Validate() error
}

func newWorker(kind enums.ContainerKind) worker {
	switch kind {
	case enums.ContainerHeap:
		return &heapWorker{heap: gheap.NewOrderedHeap[indexed.Indexed[uint64]]()}
	case enums.ContainerSList:
		return &slistWorker{list: gslist.New[uint64]()}
	default:
		return &dlistWorker{list: gdlist.New[uint64]()}
	}
}

func soak(
	ctx context.Context,
	parent_logger *slog.Logger,
	cfg *config.ConfigFile,
	stats_chan chan<- Statistics,
) error {
	workers := make([]worker, 0, len(cfg.Soak.Containers))
	for _, name := range cfg.Soak.Containers {
		kind := enums.ContainerKinds.Parse(name)
		if kind == nil {
			return fmt.Errorf("Unknown container %q: %w", name, ERR_INVALID_CONFIG)
		}
		workers = append(workers, newWorker(*kind))
	}

	eg, child_ctx := errgroup.WithContext(ctx)
	for i, w := range workers {
		r := rand.New(rand.NewPCG(cfg.Soak.Seed, uint64(i)))
		logger := parent_logger.With("coroutine", "soak", "container", w.Name(), "worker", i)
		eg.Go(func() error {
			return run(child_ctx, logger, &cfg.Soak, w, r, stats_chan)
		})
	}
	return eg.Wait()
}

func run(
	ctx context.Context,
	logger *slog.Logger,
	cfg *config.SoakConfig,
	w worker,
	r *rand.Rand,
	stats_chan chan<- Statistics,
) error {
	logger.Info("Worker started")
	var done uint = 0
	for done < cfg.Operations {
		select {
		case <-ctx.Done():
			logger.Info("Cancelled by context", "ops", done)
			return context.Canceled
		default:
		}

		batch := min(cfg.BatchSize, cfg.Operations-done)
		start := time.Now()
		for range batch {
			if err := w.Step(r, int(cfg.MaxLen)); err != nil {
				logger.Error("Operation failed", "op", done, "error", err)
				return fmt.Errorf("%s op %d: %w", w.Name(), done, err)
			}
			done++
			if cfg.ValidateEvery > 0 && done%cfg.ValidateEvery == 0 {
				if err := w.Validate(); err != nil {
					logger.Error("Validation failed", "op", done, "error", err)
					return fmt.Errorf("%s after %d ops: %w", w.Name(), done, err)
				}
			}
		}

		select {
		case <-ctx.Done():
			logger.Info("Cancelled by context", "ops", done)
			return context.Canceled
		case stats_chan <- Statistics{
			Container: w.Name(),
			Ops:       batch,
			Elapsed:   time.Since(start),
			Len:       w.Len(),
		}:
		}
	}

	if err := w.Validate(); err != nil {
		return fmt.Errorf("%s after %d ops: %w", w.Name(), done, err)
	}
	logger.Info("Worker finished", "ops", done, "len", w.Len())
	return nil
}

// grow reports whether the next operation should add an element. The
// chance falls linearly as the container approaches max_len.
func grow(r *rand.Rand, length, max_len int) bool {
	return r.IntN(max_len) >= length
}

func mismatch(op string, got, want any) error {
	return fmt.Errorf("%s returned %v, model has %v: %w", op, got, want, ERR_MISMATCH)
}

type heapWorker struct {
	heap *gheap.Heap[indexed.Indexed[uint64]]
	// live elements per priority
	counts [heap_priorities]int
	// last popped sequence number per priority
	popped [heap_priorities]uint64
	seq    uint64
	len    int
}

func (w *heapWorker) Name() string { return enums.ContainerHeap.Value }
func (w *heapWorker) Len() int     { return w.len }

func (w *heapWorker) Step(r *rand.Rand, max_len int) error {
	if grow(r, w.len, max_len) {
		priority := r.Int64N(heap_priorities)
		w.seq++
		w.heap.Push(indexed.NewIndexed(priority, w.seq, w.seq))
		w.counts[priority]++
		w.len++
		return nil
	}

	peeked, peek_ok := w.heap.Peek()
	e, ok := w.heap.Pop()
	if ok != (w.len > 0) || peek_ok != ok {
		return mismatch("Pop", ok, w.len > 0)
	}
	if !ok {
		return nil
	}
	if peeked != e {
		return mismatch("Peek", peeked, e)
	}
	w.len--

	lowest := slices.IndexFunc(w.counts[:], func(c int) bool { return c > 0 })
	if e.Priority() != int64(lowest) {
		return mismatch("Pop priority", e.Priority(), lowest)
	}
	if e.Seq() <= w.popped[lowest] || e.Value() != e.Seq() {
		return mismatch("Pop sequence", e.Seq(), w.popped[lowest])
	}
	w.popped[lowest] = e.Seq()
	w.counts[lowest]--
	return nil
}

func (w *heapWorker) Validate() error {
	if w.heap.Len() != w.len {
		return mismatch("Len", w.heap.Len(), w.len)
	}
	if err := w.heap.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ERR_VALIDATION, err)
	}
	return nil
}

type slistWorker struct {
	list  *gslist.List[uint64]
	model []uint64
}

func (w *slistWorker) Name() string { return enums.ContainerSList.Value }
func (w *slistWorker) Len() int     { return len(w.model) }

func (w *slistWorker) Step(r *rand.Rand, max_len int) error {
	if grow(r, len(w.model), max_len) {
		v := r.Uint64()
		w.list.PushFront(v)
		w.model = append(w.model, v)
		return nil
	}

	got, ok := w.list.PopFront()
	if len(w.model) == 0 {
		if ok {
			return mismatch("PopFront", got, "nothing")
		}
		return nil
	}
	want := w.model[len(w.model)-1]
	w.model = w.model[:len(w.model)-1]
	if !ok || got != want {
		return mismatch("PopFront", got, want)
	}
	return nil
}

func (w *slistWorker) Validate() error {
	if w.list.IsEmpty() != (len(w.model) == 0) {
		return fmt.Errorf("IsEmpty is %v with %d values: %w", w.list.IsEmpty(), len(w.model), ERR_VALIDATION)
	}
	top, ok := w.list.Peek()
	if ok && top != w.model[len(w.model)-1] {
		return fmt.Errorf("Peek returned %d: %w", top, ERR_VALIDATION)
	}
	return nil
}

type dlistWorker struct {
	list  *gdlist.List[uint64]
	model []uint64
}

func (w *dlistWorker) Name() string { return enums.ContainerDList.Value }
func (w *dlistWorker) Len() int     { return len(w.model) }

func (w *dlistWorker) Step(r *rand.Rand, max_len int) error {
	if grow(r, len(w.model), max_len) {
		v := r.Uint64()
		switch r.IntN(3) {
		case 0:
			w.list.PushFront(v)
			w.model = slices.Insert(w.model, 0, v)
		case 1:
			w.list.PushBack(v)
			w.model = append(w.model, v)
		default:
			i := r.IntN(len(w.model) + 1)
			w.list.InsertIth(i, v)
			w.model = slices.Insert(w.model, i, v)
		}
		return nil
	}

	switch r.IntN(3) {
	case 0:
		got, ok := w.list.PopFront()
		if len(w.model) == 0 {
			if ok {
				return mismatch("PopFront", got, "nothing")
			}
			return nil
		}
		want := w.model[0]
		w.model = w.model[1:]
		if !ok || got != want {
			return mismatch("PopFront", got, want)
		}
	case 1:
		got, ok := w.list.PopBack()
		if len(w.model) == 0 {
			if ok {
				return mismatch("PopBack", got, "nothing")
			}
			return nil
		}
		want := w.model[len(w.model)-1]
		w.model = w.model[:len(w.model)-1]
		if !ok || got != want {
			return mismatch("PopBack", got, want)
		}
	default:
		i := r.IntN(len(w.model) + 1)
		got, ok := w.list.PeekIth(i)
		if i == len(w.model) {
			if ok {
				return mismatch("PeekIth past the end", got, "nothing")
			}
			return nil
		}
		if !ok || got != w.model[i] {
			return mismatch(fmt.Sprintf("PeekIth(%d)", i), got, w.model[i])
		}
		mirrored, _ := w.list.PeekIthBack(len(w.model) - 1 - i)
		if mirrored != got {
			return mismatch(fmt.Sprintf("PeekIthBack(%d)", len(w.model)-1-i), mirrored, got)
		}
	}
	return nil
}

func (w *dlistWorker) Validate() error {
	if w.list.Len() != len(w.model) {
		return mismatch("Len", w.list.Len(), len(w.model))
	}
	if err := w.list.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ERR_VALIDATION, err)
	}
	return nil
}
