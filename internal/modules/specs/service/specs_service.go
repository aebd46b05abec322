package service

import (
	"context"
	"errors"
	"fmt"

	"sdu/internal/modules/specs/domain"
	specsout "sdu/internal/modules/specs/port/out"
	"sdu/internal/platform/clock"
	apperrors "sdu/internal/platform/errors"
)

type SpecsService struct {
	clock     clock.Clock
	collector specsout.Collector
	cache     specsout.SnapshotCache
}

func NewSpecsService(clock clock.Clock, collector specsout.Collector, cache specsout.SnapshotCache) *SpecsService {
	return &SpecsService{clock: clock, collector: collector, cache: cache}
}

// Get serves from the cache when possible; hardware inventory is slow enough
// that every view should not trigger a collection pass.
func (s *SpecsService) Get(ctx context.Context) (domain.Snapshot, error) {
	cached, err := s.cache.Load(ctx)
	if err == nil && !cached.Empty() {
		return cached, nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return domain.Snapshot{}, err
	}
	return s.Rescan(ctx)
}

func (s *SpecsService) Rescan(ctx context.Context) (domain.Snapshot, error) {
	snapshot, err := s.collector.Collect(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("collect hardware data: %w", err)
	}
	if snapshot.CollectedAt.IsZero() {
		snapshot.CollectedAt = s.clock.Now()
	}
	if err := s.cache.Save(ctx, snapshot); err != nil {
		return domain.Snapshot{}, fmt.Errorf("cache snapshot: %w", err)
	}
	return snapshot, nil
}

func (s *SpecsService) Analyze(ctx context.Context) (domain.Analysis, error) {
	snapshot, err := s.Get(ctx)
	if err != nil {
		return domain.Analysis{}, err
	}
	return domain.Analyze(snapshot), nil
}
