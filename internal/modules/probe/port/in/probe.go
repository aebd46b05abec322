package in

import (
	"context"

	"sdu/internal/modules/probe/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.ProbeInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Snapshot(ctx context.Context, probeName string) (dto.SnapshotOutput, error)
	Live(ctx context.Context, probeName string) (dto.LiveSampleOutput, error)
}
