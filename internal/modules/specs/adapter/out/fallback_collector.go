package out

import (
	"context"

	"sdu/internal/modules/specs/domain"
	specsout "sdu/internal/modules/specs/port/out"
)

// FallbackCollector tries each collector in order and returns the first
// snapshot that collects cleanly. Only the last collector's error surfaces.
type FallbackCollector struct {
	chain []specsout.Collector
}

var _ specsout.Collector = (*FallbackCollector)(nil)

func NewFallbackCollector(chain ...specsout.Collector) *FallbackCollector {
	return &FallbackCollector{chain: chain}
}

func (c *FallbackCollector) Collect(ctx context.Context) (domain.Snapshot, error) {
	var lastErr error
	for _, collector := range c.chain {
		snapshot, err := collector.Collect(ctx)
		if err == nil {
			return snapshot, nil
		}
		lastErr = err
	}
	return domain.Snapshot{}, lastErr
}
