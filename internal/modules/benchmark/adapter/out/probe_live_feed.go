package out

import (
	"context"

	"sdu/internal/modules/benchmark/domain"
	benchmarkout "sdu/internal/modules/benchmark/port/out"
	probein "sdu/internal/modules/probe/port/in"
)

// ProbeLiveFeed sources live utilization from an installed hardware probe
// instead of the backend poll endpoint.
type ProbeLiveFeed struct {
	probes    probein.Usecase
	probeName string
}

var _ benchmarkout.LiveFeed = (*ProbeLiveFeed)(nil)

func NewProbeLiveFeed(probes probein.Usecase, probeName string) *ProbeLiveFeed {
	return &ProbeLiveFeed{probes: probes, probeName: probeName}
}

func (f *ProbeLiveFeed) Sample(ctx context.Context) (domain.MetricPoint, error) {
	sample, err := f.probes.Live(ctx, f.probeName)
	if err != nil {
		return domain.MetricPoint{}, err
	}
	return domain.MetricPoint{CPU: sample.CPU, GPU: sample.GPU, Temp: sample.Temp}, nil
}
