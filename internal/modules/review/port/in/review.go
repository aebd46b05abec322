package in

import (
	"context"

	"sdu/internal/modules/review/dto"
)

type Usecase interface {
	Add(ctx context.Context, input dto.AddInput) (dto.ReviewOutput, error)
	Edit(ctx context.Context, input dto.EditInput) (dto.ReviewOutput, error)
	Delete(ctx context.Context, input dto.DeleteInput) error
	List(ctx context.Context, username string) ([]dto.ReviewOutput, error)
}
