package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	specsout "sdu/internal/modules/specs/adapter/out"
	"sdu/internal/modules/specs/domain"
	"sdu/internal/modules/specs/service"
)

type fixedClock struct{ at time.Time }

func (f fixedClock) Now() time.Time { return f.at }

type countingCollector struct {
	calls    int
	snapshot domain.Snapshot
	err      error
}

func (c *countingCollector) Collect(context.Context) (domain.Snapshot, error) {
	c.calls++
	return c.snapshot, c.err
}

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func sampleSnapshot() domain.Snapshot {
	return domain.Snapshot{
		OS:      "Windows 11 Pro 23H2",
		CPU:     domain.CPU{Model: "AMD Ryzen 9 5950X", Cores: 16, Threads: 32, UsagePct: 45},
		GPU:     domain.GPU{Model: "NVIDIA GeForce RTX 4080", VRAMGB: 16, UsagePct: 23},
		RAM:     domain.RAM{TotalGB: 64, Speed: "DDR4-3600", UsagePct: 62},
		Storage: domain.Storage{Kind: "NVMe SSD", TotalGB: 2000, UsagePct: 58},
	}
}

func newService(t *testing.T, collector *countingCollector) *service.SpecsService {
	t.Helper()
	cache := specsout.NewFileSnapshotCache(filepath.Join(t.TempDir(), "snapshot.json"))
	return service.NewSpecsService(fixedClock{at: testNow}, collector, cache)
}

func TestGetCollectsOnCacheMissThenServesCache(t *testing.T) {
	t.Parallel()

	collector := &countingCollector{snapshot: sampleSnapshot()}
	svc := newService(t, collector)

	first, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if collector.calls != 1 {
		t.Fatalf("collector calls = %d, want 1", collector.calls)
	}
	if !first.CollectedAt.Equal(testNow) {
		t.Fatalf("CollectedAt = %v, want clock time", first.CollectedAt)
	}

	second, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() again error = %v", err)
	}
	if collector.calls != 1 {
		t.Fatalf("collector calls = %d after cached read, want 1", collector.calls)
	}
	if second.CPU.Model != first.CPU.Model {
		t.Fatalf("cached snapshot = %+v", second)
	}
}

func TestRescanBypassesCache(t *testing.T) {
	t.Parallel()

	collector := &countingCollector{snapshot: sampleSnapshot()}
	svc := newService(t, collector)

	if _, err := svc.Get(context.Background()); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	collector.snapshot.RAM.TotalGB = 128

	rescanned, err := svc.Rescan(context.Background())
	if err != nil {
		t.Fatalf("Rescan() error = %v", err)
	}
	if collector.calls != 2 {
		t.Fatalf("collector calls = %d, want 2", collector.calls)
	}
	if rescanned.RAM.TotalGB != 128 {
		t.Fatalf("RAM.TotalGB = %d, want fresh value", rescanned.RAM.TotalGB)
	}

	cached, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() after rescan error = %v", err)
	}
	if cached.RAM.TotalGB != 128 {
		t.Fatal("rescan must replace the cached snapshot")
	}
}

func TestGetSurfacesCollectorFailure(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("probe unreachable")
	svc := newService(t, &countingCollector{err: wantErr})

	if _, err := svc.Get(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want collector failure", err)
	}
}

func TestAnalyzeUsesCurrentSnapshot(t *testing.T) {
	t.Parallel()

	snapshot := sampleSnapshot()
	snapshot.RAM.TotalGB = 4
	svc := newService(t, &countingCollector{snapshot: snapshot})

	analysis, err := svc.Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(analysis.Issues) != 1 {
		t.Fatalf("Issues = %v", analysis.Issues)
	}
	if analysis.OverallHealth != domain.HealthGood {
		t.Fatalf("OverallHealth = %q", analysis.OverallHealth)
	}
}
