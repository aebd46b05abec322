package service

import (
	"context"
	"fmt"
	"strings"

	"sdu/internal/modules/review/domain"
	reviewout "sdu/internal/modules/review/port/out"
	"sdu/internal/platform/clock"
	apperrors "sdu/internal/platform/errors"
	"sdu/internal/platform/id"
)

type ReviewService struct {
	clock clock.Clock
	idGen id.Generator
	store reviewout.ReviewStore
}

func NewReviewService(clock clock.Clock, idGen id.Generator, store reviewout.ReviewStore) *ReviewService {
	return &ReviewService{clock: clock, idGen: idGen, store: store}
}

func (s *ReviewService) Add(ctx context.Context, username, comment string) (domain.Review, error) {
	if strings.TrimSpace(username) == "" {
		return domain.Review{}, apperrors.ErrUnauthorized
	}
	normalized, err := domain.NormalizeComment(comment)
	if err != nil {
		return domain.Review{}, err
	}
	review := domain.Review{
		ID:        s.idGen.New(),
		User:      username,
		Comment:   normalized,
		CreatedAt: s.clock.Now(),
		UpdatedAt: s.clock.Now(),
	}
	if err := s.store.Insert(ctx, review); err != nil {
		return domain.Review{}, fmt.Errorf("save review: %w", err)
	}
	return review, nil
}

// Edit replaces the comment only; author and creation time never change.
func (s *ReviewService) Edit(ctx context.Context, username, reviewID, comment string) (domain.Review, error) {
	normalized, err := domain.NormalizeComment(comment)
	if err != nil {
		return domain.Review{}, err
	}
	review, err := s.store.Get(ctx, reviewID)
	if err != nil {
		return domain.Review{}, err
	}
	if !review.OwnedBy(username) {
		return domain.Review{}, apperrors.ErrNotOwner
	}
	review.Comment = normalized
	review.UpdatedAt = s.clock.Now()
	if err := s.store.Update(ctx, review); err != nil {
		return domain.Review{}, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, username, reviewID string) error {
	review, err := s.store.Get(ctx, reviewID)
	if err != nil {
		return err
	}
	if !review.OwnedBy(username) {
		return apperrors.ErrNotOwner
	}
	return s.store.Delete(ctx, reviewID)
}

func (s *ReviewService) List(ctx context.Context) ([]domain.Review, error) {
	return s.store.List(ctx)
}
