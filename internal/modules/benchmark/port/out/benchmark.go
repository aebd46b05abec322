package out

import (
	"context"

	"sdu/internal/modules/benchmark/domain"
)

type HistoryStore interface {
	Insert(ctx context.Context, result domain.Result) error
	List(ctx context.Context, limit int) ([]domain.Result, error)
	Prune(ctx context.Context, keep int) error
}

// Runner executes one benchmark run to completion.
type Runner interface {
	Run(ctx context.Context, typ domain.Type) (domain.Result, error)
}

// RemoteIndex lists results known to the backend.
type RemoteIndex interface {
	ListRemote(ctx context.Context) ([]domain.Result, error)
}

// LiveFeed yields one instantaneous utilization sample per call.
type LiveFeed interface {
	Sample(ctx context.Context) (domain.MetricPoint, error)
}

// Comparator answers fleet-relative questions only the backend can compute.
type Comparator interface {
	Bottleneck(ctx context.Context, benchmarkID string) (domain.Breakdown, error)
	Compare(ctx context.Context, cpuModel, gpuModel string, ramGB int) (domain.Comparison, error)
}
