package usecase

import (
	"context"

	"sdu/internal/modules/probe/dto"
	probein "sdu/internal/modules/probe/port/in"
	"sdu/internal/modules/probe/service"
)

type Interactor struct {
	svc *service.ProbeService
}

func NewInteractor(svc *service.ProbeService) probein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.ProbeInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Snapshot(ctx context.Context, probeName string) (dto.SnapshotOutput, error) {
	return i.svc.Snapshot(ctx, probeName)
}

func (i *Interactor) Live(ctx context.Context, probeName string) (dto.LiveSampleOutput, error) {
	return i.svc.Live(ctx, probeName)
}
