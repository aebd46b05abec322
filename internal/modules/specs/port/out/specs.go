package out

import (
	"context"

	"sdu/internal/modules/specs/domain"
)

type Collector interface {
	Collect(ctx context.Context) (domain.Snapshot, error)
}

type SnapshotCache interface {
	Save(ctx context.Context, snapshot domain.Snapshot) error
	Load(ctx context.Context) (domain.Snapshot, error)
	Clear(ctx context.Context) error
}
