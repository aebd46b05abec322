package in

import (
	"context"

	"sdu/internal/modules/specs/dto"
)

type Usecase interface {
	// Get returns the cached snapshot, collecting a fresh one on a cache miss.
	Get(ctx context.Context) (dto.SnapshotOutput, error)
	// Rescan always collects fresh hardware data and replaces the cache.
	Rescan(ctx context.Context) (dto.SnapshotOutput, error)
	Analyze(ctx context.Context) (dto.AnalysisOutput, error)
}
