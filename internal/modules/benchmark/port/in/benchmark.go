package in

import (
	"context"

	"sdu/internal/modules/benchmark/dto"
)

// Usecase splits executing a run from persisting it: Run produces a result
// without side effects so an abandoned run leaves no trace, and Finalize
// records a completed one exactly once.
type Usecase interface {
	Run(ctx context.Context, input dto.RunInput) (dto.ResultOutput, error)
	Finalize(ctx context.Context, result dto.ResultOutput) (dto.ResultOutput, error)
	History(ctx context.Context) ([]dto.ResultOutput, error)
	List(ctx context.Context) ([]dto.ResultOutput, error)
	Breakdown(ctx context.Context) (dto.BreakdownOutput, error)
	Compare(ctx context.Context) (dto.ComparisonOutput, error)
	Live(ctx context.Context) (dto.LiveOutput, error)
}
