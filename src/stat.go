package main

import (
	"log/slog"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/Robogera/gcoll/pkg/gring"

	gstat "gonum.org/v1/gonum/stat"
)

// Statistics describes one batch of operations run by a worker.
type Statistics struct {
	Container string
	Ops       uint
	Elapsed   time.Duration
	Len       int
}

type containerStats struct {
	window         *gring.Ring[float64]
	ops            uint64
	ops_since_tick uint64
	len            int
}

// stat aggregates batches until stats is closed, logging a summary per
// container every stat_period_sec and once more at the end.
func stat(logger *slog.Logger, stats <-chan Statistics, stat_period_sec uint, window uint) error {
	logger = logger.With("coroutine", "stat")
	per_container := make(map[string]*containerStats)
	samples := make([]float64, 0, window)

	report := func(final bool) {
		for _, name := range slices.Sorted(maps.Keys(per_container)) {
			cs := per_container[name]
			samples = cs.window.AppendTo(samples[:0])
			mean, stddev := nsPerOp(samples)
			attrs := []any{
				"container", name,
				"ops", cs.ops,
				"len", cs.len,
				"ns/op mean", mean,
				"ns/op stddev", stddev,
			}
			if final {
				logger.Info("Final stats", attrs...)
				continue
			}
			attrs = append(attrs, "ops per second", cs.ops_since_tick/uint64(stat_period_sec))
			logger.Info("Stats", attrs...)
			cs.ops_since_tick = 0
		}
	}

	ticker := time.NewTicker(time.Second * time.Duration(stat_period_sec))
	defer ticker.Stop()
	for {
		select {
		case s, ok := <-stats:
			if !ok {
				report(true)
				return nil
			}
			cs, exists := per_container[s.Container]
			if !exists {
				ring, err := gring.NewRing[float64](int(window))
				if err != nil {
					return err
				}
				cs = &containerStats{window: ring}
				per_container[s.Container] = cs
			}
			if s.Ops > 0 {
				cs.window.Push(float64(s.Elapsed.Nanoseconds()) / float64(s.Ops))
			}
			cs.ops += uint64(s.Ops)
			cs.ops_since_tick += uint64(s.Ops)
			cs.len = s.Len
		case <-ticker.C:
			report(false)
		}
	}
}

func nsPerOp(samples []float64) (mean, stddev float64) {
	switch len(samples) {
	case 0:
		return 0, 0
	case 1:
		return samples[0], 0
	}
	mean, stddev = gstat.MeanStdDev(samples, nil)
	if math.IsNaN(stddev) {
		stddev = 0
	}
	return mean, stddev
}
