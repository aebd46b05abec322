package out

import (
	"context"
	"math/rand"
	"sync"

	"sdu/internal/modules/benchmark/domain"
	benchmarkout "sdu/internal/modules/benchmark/port/out"
	"sdu/internal/platform/clock"
	"sdu/internal/platform/id"
)

// LocalSimulator stands in for the backend when running offline. Results are
// synthesized and live samples jitter around a steady baseline.
type LocalSimulator struct {
	clock clock.Clock
	idGen id.Generator
	hw    domain.Hardware

	mu  sync.Mutex
	rng *rand.Rand
}

var (
	_ benchmarkout.Runner   = (*LocalSimulator)(nil)
	_ benchmarkout.LiveFeed = (*LocalSimulator)(nil)
)

func NewLocalSimulator(clock clock.Clock, idGen id.Generator, hw domain.Hardware, seed int64) *LocalSimulator {
	return &LocalSimulator{
		clock: clock,
		idGen: idGen,
		hw:    hw,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (s *LocalSimulator) Run(_ context.Context, typ domain.Type) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Simulate(s.rng, s.idGen.New(), typ, s.hw, s.clock.Now()), nil
}

func (s *LocalSimulator) Sample(context.Context) (domain.MetricPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.MetricPoint{
		CPU:  35 + s.rng.Float64()*30,
		GPU:  20 + s.rng.Float64()*40,
		Temp: 55 + s.rng.Float64()*20,
	}, nil
}
