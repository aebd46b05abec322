package in

import (
	"context"

	"sdu/internal/modules/probe/dto"
	probein "sdu/internal/modules/probe/port/in"
)

type CLIHandler struct {
	usecase probein.Usecase
}

func NewCLIHandler(usecase probein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.ProbeInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Snapshot(ctx context.Context, probeName string) (dto.SnapshotOutput, error) {
	return h.usecase.Snapshot(ctx, probeName)
}

func (h CLIHandler) Live(ctx context.Context, probeName string) (dto.LiveSampleOutput, error) {
	return h.usecase.Live(ctx, probeName)
}
