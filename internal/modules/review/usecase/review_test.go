package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	reviewout "sdu/internal/modules/review/adapter/out"
	reviewdto "sdu/internal/modules/review/dto"
	reviewin "sdu/internal/modules/review/port/in"
	"sdu/internal/modules/review/service"
	"sdu/internal/modules/review/usecase"
	apperrors "sdu/internal/platform/errors"
)

type tickingClock struct {
	at   time.Time
	step time.Duration
}

func (c *tickingClock) Now() time.Time {
	now := c.at
	c.at = c.at.Add(c.step)
	return now
}

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("rev-%d", s.n)
}

func newUsecase(t *testing.T) reviewin.Usecase {
	t.Helper()
	store, err := reviewout.NewSQLiteReviewStore(filepath.Join(t.TempDir(), "sdu.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	clk := &tickingClock{at: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), step: time.Minute}
	return usecase.NewInteractor(service.NewReviewService(clk, &seqID{}, store))
}

func TestAddRejectsBlankComment(t *testing.T) {
	t.Parallel()

	uc := newUsecase(t)
	_, err := uc.Add(context.Background(), reviewdto.AddInput{Username: "ada", Comment: "   "})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
	reviews, err := uc.List(context.Background(), "ada")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(reviews) != 0 {
		t.Fatalf("len(reviews) = %d, want 0", len(reviews))
	}
}

func TestAddRequiresAuthenticatedUser(t *testing.T) {
	t.Parallel()

	uc := newUsecase(t)
	_, err := uc.Add(context.Background(), reviewdto.AddInput{Username: "", Comment: "solid rig"})
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
}

func TestListNewestFirstWithOwnershipFlag(t *testing.T) {
	t.Parallel()

	uc := newUsecase(t)
	if _, err := uc.Add(context.Background(), reviewdto.AddInput{Username: "ada", Comment: "first"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := uc.Add(context.Background(), reviewdto.AddInput{Username: "bob", Comment: "second"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	reviews, err := uc.List(context.Background(), "ada")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("len(reviews) = %d, want 2", len(reviews))
	}
	if reviews[0].Comment != "second" || reviews[1].Comment != "first" {
		t.Fatalf("order = [%q %q]", reviews[0].Comment, reviews[1].Comment)
	}
	if reviews[0].Own || !reviews[1].Own {
		t.Fatalf("ownership flags = [%v %v]", reviews[0].Own, reviews[1].Own)
	}
}

func TestEditReplacesCommentOnly(t *testing.T) {
	t.Parallel()

	uc := newUsecase(t)
	added, err := uc.Add(context.Background(), reviewdto.AddInput{Username: "ada", Comment: "decent airflow"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	edited, err := uc.Edit(context.Background(), reviewdto.EditInput{Username: "ada", ReviewID: added.ID, Comment: "great airflow"})
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if edited.Comment != "great airflow" {
		t.Fatalf("Comment = %q", edited.Comment)
	}
	if edited.User != "ada" {
		t.Fatalf("User = %q, edit must not change the author", edited.User)
	}
	if !edited.CreatedAt.Equal(added.CreatedAt) {
		t.Fatalf("CreatedAt changed: %v -> %v", added.CreatedAt, edited.CreatedAt)
	}
}

func TestEditByNonOwnerRejected(t *testing.T) {
	t.Parallel()

	uc := newUsecase(t)
	added, err := uc.Add(context.Background(), reviewdto.AddInput{Username: "ada", Comment: "quiet under load"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	_, err = uc.Edit(context.Background(), reviewdto.EditInput{Username: "bob", ReviewID: added.ID, Comment: "hijacked"})
	if !errors.Is(err, apperrors.ErrNotOwner) {
		t.Fatalf("error = %v, want ErrNotOwner", err)
	}

	reviews, err := uc.List(context.Background(), "ada")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if reviews[0].Comment != "quiet under load" {
		t.Fatalf("Comment = %q, rejected edit must not stick", reviews[0].Comment)
	}
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	t.Parallel()

	uc := newUsecase(t)
	added, err := uc.Add(context.Background(), reviewdto.AddInput{Username: "ada", Comment: "runs cool"})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	err = uc.Delete(context.Background(), reviewdto.DeleteInput{Username: "bob", ReviewID: added.ID})
	if !errors.Is(err, apperrors.ErrNotOwner) {
		t.Fatalf("error = %v, want ErrNotOwner", err)
	}
	if err := uc.Delete(context.Background(), reviewdto.DeleteInput{Username: "ada", ReviewID: added.ID}); err != nil {
		t.Fatalf("Delete() by owner error = %v", err)
	}

	reviews, err := uc.List(context.Background(), "ada")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(reviews) != 0 {
		t.Fatalf("len(reviews) = %d, want 0", len(reviews))
	}
}

func TestEditMissingReview(t *testing.T) {
	t.Parallel()

	uc := newUsecase(t)
	_, err := uc.Edit(context.Background(), reviewdto.EditInput{Username: "ada", ReviewID: "ghost", Comment: "hello"})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}
