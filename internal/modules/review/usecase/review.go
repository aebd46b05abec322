package usecase

import (
	"context"

	"sdu/internal/modules/review/domain"
	reviewdto "sdu/internal/modules/review/dto"
	reviewin "sdu/internal/modules/review/port/in"
	"sdu/internal/modules/review/service"
)

type Interactor struct {
	svc *service.ReviewService
}

func NewInteractor(svc *service.ReviewService) reviewin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Add(ctx context.Context, input reviewdto.AddInput) (reviewdto.ReviewOutput, error) {
	review, err := i.svc.Add(ctx, input.Username, input.Comment)
	if err != nil {
		return reviewdto.ReviewOutput{}, err
	}
	return reviewOutput(review, input.Username), nil
}

func (i *Interactor) Edit(ctx context.Context, input reviewdto.EditInput) (reviewdto.ReviewOutput, error) {
	review, err := i.svc.Edit(ctx, input.Username, input.ReviewID, input.Comment)
	if err != nil {
		return reviewdto.ReviewOutput{}, err
	}
	return reviewOutput(review, input.Username), nil
}

func (i *Interactor) Delete(ctx context.Context, input reviewdto.DeleteInput) error {
	return i.svc.Delete(ctx, input.Username, input.ReviewID)
}

func (i *Interactor) List(ctx context.Context, username string) ([]reviewdto.ReviewOutput, error) {
	reviews, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	outputs := make([]reviewdto.ReviewOutput, 0, len(reviews))
	for _, review := range reviews {
		outputs = append(outputs, reviewOutput(review, username))
	}
	return outputs, nil
}

func reviewOutput(review domain.Review, viewer string) reviewdto.ReviewOutput {
	return reviewdto.ReviewOutput{
		ID:        review.ID,
		User:      review.User,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		Own:       review.OwnedBy(viewer),
	}
}
