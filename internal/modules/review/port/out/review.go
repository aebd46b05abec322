package out

import (
	"context"

	"sdu/internal/modules/review/domain"
)

type ReviewStore interface {
	Insert(ctx context.Context, review domain.Review) error
	Update(ctx context.Context, review domain.Review) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Review, error)
	List(ctx context.Context) ([]domain.Review, error)
}
