package out

import (
	"context"

	probein "sdu/internal/modules/probe/port/in"
	"sdu/internal/modules/specs/domain"
	specsout "sdu/internal/modules/specs/port/out"
	"sdu/internal/platform/clock"
)

// ProbeCollector sources the snapshot from an installed hardware probe.
type ProbeCollector struct {
	probes    probein.Usecase
	probeName string
	clock     clock.Clock
}

var _ specsout.Collector = (*ProbeCollector)(nil)

func NewProbeCollector(probes probein.Usecase, probeName string, clock clock.Clock) *ProbeCollector {
	return &ProbeCollector{probes: probes, probeName: probeName, clock: clock}
}

func (c *ProbeCollector) Collect(ctx context.Context) (domain.Snapshot, error) {
	raw, err := c.probes.Snapshot(ctx, c.probeName)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.Snapshot{
		OS:          raw.OS,
		CPU:         domain.CPU{Model: raw.CPUModel, Cores: raw.CPUCores, Threads: raw.CPUThreads, UsagePct: raw.CPUUsagePct},
		GPU:         domain.GPU{Model: raw.GPUModel, VRAMGB: raw.GPUVRAMGB, UsagePct: raw.GPUUsagePct},
		RAM:         domain.RAM{TotalGB: raw.RAMTotalGB, Speed: raw.RAMSpeed, UsagePct: raw.RAMUsagePct},
		Storage:     domain.Storage{Kind: raw.StorageKind, TotalGB: raw.StorageGB, UsagePct: raw.StorageUsagePct},
		CollectedAt: c.clock.Now(),
	}, nil
}
