package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"sdu/internal/modules/benchmark/domain"
	benchmarkout "sdu/internal/modules/benchmark/port/out"
	"sdu/internal/platform/clock"
	apperrors "sdu/internal/platform/errors"
	"sdu/internal/platform/id"
)

type BenchmarkService struct {
	clock      clock.Clock
	idGen      id.Generator
	store      benchmarkout.HistoryStore
	historyCap int

	mu        sync.Mutex
	finalized map[string]struct{}
}

func NewBenchmarkService(clock clock.Clock, idGen id.Generator, store benchmarkout.HistoryStore, historyCap int) *BenchmarkService {
	return &BenchmarkService{
		clock:      clock,
		idGen:      idGen,
		store:      store,
		historyCap: historyCap,
		finalized:  make(map[string]struct{}),
	}
}

// Finalize records a completed run. Calling it again with the same result is
// a no-op, so a retried completion message cannot duplicate history.
func (s *BenchmarkService) Finalize(ctx context.Context, result domain.Result) (domain.Result, error) {
	if result.ID == "" {
		result.ID = s.idGen.New()
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = s.clock.Now()
	}

	s.mu.Lock()
	_, done := s.finalized[result.ID]
	if !done {
		s.finalized[result.ID] = struct{}{}
	}
	s.mu.Unlock()
	if done {
		return result, nil
	}

	if err := s.store.Insert(ctx, result); err != nil {
		return domain.Result{}, fmt.Errorf("record benchmark: %w", err)
	}
	if err := s.store.Prune(ctx, s.historyCap); err != nil {
		return domain.Result{}, fmt.Errorf("prune benchmark history: %w", err)
	}
	return result, nil
}

func (s *BenchmarkService) History(ctx context.Context) ([]domain.Result, error) {
	return s.store.List(ctx, s.historyCap)
}

// Merge combines backend results with local history, newest first. On an ID
// collision the local copy wins since it is what the user actually ran here.
func (s *BenchmarkService) Merge(remote, local []domain.Result) []domain.Result {
	merged := make([]domain.Result, 0, len(remote)+len(local))
	seen := make(map[string]struct{}, len(remote)+len(local))
	for _, r := range local {
		merged = append(merged, r)
		seen[r.ID] = struct{}{}
	}
	for _, r := range remote {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		merged = append(merged, r)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged
}

// Breakdown profiles the newest result among the given set.
func (s *BenchmarkService) Breakdown(results []domain.Result) (domain.Breakdown, error) {
	if len(results) == 0 {
		return domain.Breakdown{}, apperrors.ErrNotFound
	}
	return domain.ComputeBreakdown(results[0], results), nil
}
