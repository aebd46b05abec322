package in

import (
	"context"

	specsdto "sdu/internal/modules/specs/dto"
	specsin "sdu/internal/modules/specs/port/in"
)

type CLIHandler struct {
	usecase specsin.Usecase
}

func NewCLIHandler(usecase specsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Get(ctx context.Context) (specsdto.SnapshotOutput, error) {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) Rescan(ctx context.Context) (specsdto.SnapshotOutput, error) {
	return h.usecase.Rescan(ctx)
}

func (h CLIHandler) Analyze(ctx context.Context) (specsdto.AnalysisOutput, error) {
	return h.usecase.Analyze(ctx)
}
