package in

import (
	"context"

	reviewdto "sdu/internal/modules/review/dto"
	reviewin "sdu/internal/modules/review/port/in"
)

type CLIHandler struct {
	usecase reviewin.Usecase
}

func NewCLIHandler(usecase reviewin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Add(ctx context.Context, username, comment string) (reviewdto.ReviewOutput, error) {
	return h.usecase.Add(ctx, reviewdto.AddInput{Username: username, Comment: comment})
}

func (h CLIHandler) Edit(ctx context.Context, username, reviewID, comment string) (reviewdto.ReviewOutput, error) {
	return h.usecase.Edit(ctx, reviewdto.EditInput{Username: username, ReviewID: reviewID, Comment: comment})
}

func (h CLIHandler) Delete(ctx context.Context, username, reviewID string) error {
	return h.usecase.Delete(ctx, reviewdto.DeleteInput{Username: username, ReviewID: reviewID})
}

func (h CLIHandler) List(ctx context.Context, username string) ([]reviewdto.ReviewOutput, error) {
	return h.usecase.List(ctx, username)
}
