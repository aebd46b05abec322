package in

import (
	"context"

	benchmarkdto "sdu/internal/modules/benchmark/dto"
	benchmarkin "sdu/internal/modules/benchmark/port/in"
)

type CLIHandler struct {
	usecase benchmarkin.Usecase
}

func NewCLIHandler(usecase benchmarkin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Run executes and records a benchmark in one step; the CLI has no way to
// abandon a run mid-flight.
func (h CLIHandler) Run(ctx context.Context, benchmarkType string) (benchmarkdto.ResultOutput, error) {
	result, err := h.usecase.Run(ctx, benchmarkdto.RunInput{Type: benchmarkType})
	if err != nil {
		return benchmarkdto.ResultOutput{}, err
	}
	return h.usecase.Finalize(ctx, result)
}

func (h CLIHandler) List(ctx context.Context) ([]benchmarkdto.ResultOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) History(ctx context.Context) ([]benchmarkdto.ResultOutput, error) {
	return h.usecase.History(ctx)
}

func (h CLIHandler) Breakdown(ctx context.Context) (benchmarkdto.BreakdownOutput, error) {
	return h.usecase.Breakdown(ctx)
}

func (h CLIHandler) Compare(ctx context.Context) (benchmarkdto.ComparisonOutput, error) {
	return h.usecase.Compare(ctx)
}
