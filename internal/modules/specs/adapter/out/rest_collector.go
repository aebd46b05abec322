package out

import (
	"context"
	"time"

	"sdu/internal/modules/specs/domain"
	specsout "sdu/internal/modules/specs/port/out"
	"sdu/internal/platform/rest"
)

// RESTCollector pulls hardware data from the backend's diagnostics endpoint.
type RESTCollector struct {
	client *rest.Client
}

var _ specsout.Collector = (*RESTCollector)(nil)

func NewRESTCollector(client *rest.Client) *RESTCollector {
	return &RESTCollector{client: client}
}

type snapshotPayload struct {
	OS  string `json:"os"`
	CPU struct {
		Model   string  `json:"model"`
		Cores   int     `json:"cores"`
		Threads int     `json:"threads"`
		Usage   float64 `json:"usage"`
	} `json:"cpu"`
	GPU struct {
		Model  string  `json:"model"`
		VRAMGB int     `json:"vram_gb"`
		Usage  float64 `json:"usage"`
	} `json:"gpu"`
	RAM struct {
		TotalGB int     `json:"total_gb"`
		Speed   string  `json:"speed"`
		Usage   float64 `json:"usage"`
	} `json:"ram"`
	Storage struct {
		Kind    string  `json:"kind"`
		TotalGB int     `json:"total_gb"`
		Usage   float64 `json:"usage"`
	} `json:"storage"`
	CollectedAt string `json:"collected_at"`
}

func (c *RESTCollector) Collect(ctx context.Context) (domain.Snapshot, error) {
	var p snapshotPayload
	if err := c.client.Get(ctx, "/diagnostics/collect/", &p); err != nil {
		return domain.Snapshot{}, err
	}
	snapshot := domain.Snapshot{
		OS:      p.OS,
		CPU:     domain.CPU{Model: p.CPU.Model, Cores: p.CPU.Cores, Threads: p.CPU.Threads, UsagePct: p.CPU.Usage},
		GPU:     domain.GPU{Model: p.GPU.Model, VRAMGB: p.GPU.VRAMGB, UsagePct: p.GPU.Usage},
		RAM:     domain.RAM{TotalGB: p.RAM.TotalGB, Speed: p.RAM.Speed, UsagePct: p.RAM.Usage},
		Storage: domain.Storage{Kind: p.Storage.Kind, TotalGB: p.Storage.TotalGB, UsagePct: p.Storage.Usage},
	}
	if p.CollectedAt != "" {
		if at, err := time.Parse(time.RFC3339, p.CollectedAt); err == nil {
			snapshot.CollectedAt = at
		}
	}
	return snapshot, nil
}
