package usecase

import (
	"context"

	"sdu/internal/modules/specs/domain"
	specsdto "sdu/internal/modules/specs/dto"
	specsin "sdu/internal/modules/specs/port/in"
	"sdu/internal/modules/specs/service"
)

type Interactor struct {
	svc *service.SpecsService
}

func NewInteractor(svc *service.SpecsService) specsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Get(ctx context.Context) (specsdto.SnapshotOutput, error) {
	snapshot, err := i.svc.Get(ctx)
	if err != nil {
		return specsdto.SnapshotOutput{}, err
	}
	return snapshotOutput(snapshot), nil
}

func (i *Interactor) Rescan(ctx context.Context) (specsdto.SnapshotOutput, error) {
	snapshot, err := i.svc.Rescan(ctx)
	if err != nil {
		return specsdto.SnapshotOutput{}, err
	}
	return snapshotOutput(snapshot), nil
}

func (i *Interactor) Analyze(ctx context.Context) (specsdto.AnalysisOutput, error) {
	analysis, err := i.svc.Analyze(ctx)
	if err != nil {
		return specsdto.AnalysisOutput{}, err
	}
	return specsdto.AnalysisOutput{
		Issues:          analysis.Issues,
		Recommendations: analysis.Recommendations,
		OverallHealth:   string(analysis.OverallHealth),
	}, nil
}

func snapshotOutput(s domain.Snapshot) specsdto.SnapshotOutput {
	return specsdto.SnapshotOutput{
		OS:          s.OS,
		CPU:         specsdto.CPUOutput{Model: s.CPU.Model, Cores: s.CPU.Cores, Threads: s.CPU.Threads, UsagePct: s.CPU.UsagePct},
		GPU:         specsdto.GPUOutput{Model: s.GPU.Model, VRAMGB: s.GPU.VRAMGB, UsagePct: s.GPU.UsagePct},
		RAM:         specsdto.RAMOutput{TotalGB: s.RAM.TotalGB, Speed: s.RAM.Speed, UsagePct: s.RAM.UsagePct},
		Storage:     specsdto.StorageOutput{Kind: s.Storage.Kind, TotalGB: s.Storage.TotalGB, UsagePct: s.Storage.UsagePct},
		CollectedAt: s.CollectedAt,
	}
}
