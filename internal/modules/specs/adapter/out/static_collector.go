package out

import (
	"context"

	"sdu/internal/modules/specs/domain"
	specsout "sdu/internal/modules/specs/port/out"
	"sdu/internal/platform/clock"
)

// StaticCollector serves a fixed reference machine. It is the last resort
// when neither a probe plugin nor the backend is reachable, so the dashboard
// always has something to render.
type StaticCollector struct {
	clock clock.Clock
}

var _ specsout.Collector = (*StaticCollector)(nil)

func NewStaticCollector(clock clock.Clock) *StaticCollector {
	return &StaticCollector{clock: clock}
}

func (c *StaticCollector) Collect(context.Context) (domain.Snapshot, error) {
	return domain.Snapshot{
		OS:          "Windows 11 Pro 23H2",
		CPU:         domain.CPU{Model: "AMD Ryzen 9 5950X", Cores: 16, Threads: 32, UsagePct: 45},
		GPU:         domain.GPU{Model: "NVIDIA GeForce RTX 4080", VRAMGB: 16, UsagePct: 23},
		RAM:         domain.RAM{TotalGB: 64, Speed: "DDR4-3600", UsagePct: 62},
		Storage:     domain.Storage{Kind: "NVMe SSD", TotalGB: 2000, UsagePct: 58},
		CollectedAt: c.clock.Now(),
	}, nil
}
