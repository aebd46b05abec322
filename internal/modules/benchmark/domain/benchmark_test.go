package domain_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"sdu/internal/modules/benchmark/domain"
	apperrors "sdu/internal/platform/errors"
)

func TestParseType(t *testing.T) {
	t.Parallel()

	for _, typ := range domain.AllTypes {
		parsed, err := domain.ParseType(string(typ))
		if err != nil {
			t.Fatalf("ParseType(%q) error = %v", typ, err)
		}
		if parsed != typ {
			t.Fatalf("ParseType(%q) = %q", typ, parsed)
		}
	}
	if _, err := domain.ParseType("quantum"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("ParseType(quantum) error = %v, want ErrInvalidInput", err)
	}
}

func TestSimulateStaysInsideScoreBands(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	hw := domain.Hardware{CPUModel: "AMD Ryzen 9 5950X", GPUModel: "NVIDIA GeForce RTX 4080", RAMGB: 64}
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 200; i++ {
		r := domain.Simulate(rng, "run-1", domain.TypeHybrid, hw, at)
		if r.CPUScore < 8000 || r.CPUScore > 10000 {
			t.Fatalf("CPUScore = %d out of band", r.CPUScore)
		}
		if r.GPUScore < 12000 || r.GPUScore > 15000 {
			t.Fatalf("GPUScore = %d out of band", r.GPUScore)
		}
		if r.RAMScore < 5000 || r.RAMScore > 6000 {
			t.Fatalf("RAMScore = %d out of band", r.RAMScore)
		}
		if r.OverallScore < 20000 || r.OverallScore > 25000 {
			t.Fatalf("OverallScore = %d out of band", r.OverallScore)
		}
		if r.AvgTemp < 60 || r.AvgTemp > 75 {
			t.Fatalf("AvgTemp = %v out of band", r.AvgTemp)
		}
	}
}

func TestSimulateCarriesHardwareAndCurve(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	hw := domain.Hardware{CPUModel: "cpu-x", GPUModel: "gpu-y", RAMGB: 32}
	r := domain.Simulate(rng, "run-2", domain.TypeGaming, hw, time.Now())

	if r.CPUModel != "cpu-x" || r.GPUModel != "gpu-y" || r.RAMGB != 32 {
		t.Fatalf("hardware not carried: %+v", r)
	}
	if len(r.Metrics) != 5 {
		t.Fatalf("len(Metrics) = %d, want 5", len(r.Metrics))
	}
	if r.Metrics[0].Time != 0 || r.Metrics[4].Time != 120 {
		t.Fatalf("curve endpoints = %d..%d", r.Metrics[0].Time, r.Metrics[4].Time)
	}
	if r.Metrics[3].CPU != 95 || r.Metrics[3].GPU != 94 || r.Metrics[3].Temp != 82 {
		t.Fatalf("peak sample = %+v", r.Metrics[3])
	}
}

func TestLoadCurveReturnsCopy(t *testing.T) {
	t.Parallel()

	curve := domain.LoadCurve()
	curve[0].CPU = 999
	if domain.LoadCurve()[0].CPU == 999 {
		t.Fatal("LoadCurve must not expose shared backing storage")
	}
}

func TestComputeBreakdownNormalizesAgainstObservedMax(t *testing.T) {
	t.Parallel()

	latest := domain.Result{CPUScore: 8000, GPUScore: 12000, RAMGB: 16, AvgTemp: 70}
	all := []domain.Result{
		latest,
		{CPUScore: 10000, GPUScore: 15000},
	}

	b := domain.ComputeBreakdown(latest, all)
	if b.CPU != 80 {
		t.Fatalf("CPU = %v, want 80", b.CPU)
	}
	if b.GPU != 80 {
		t.Fatalf("GPU = %v, want 80", b.GPU)
	}
	if b.RAM != 50 {
		t.Fatalf("RAM = %v, want 50", b.RAM)
	}
	if b.Temp != 70 {
		t.Fatalf("Temp = %v, want 70", b.Temp)
	}
}

func TestComputeBreakdownLoneResultReadsFull(t *testing.T) {
	t.Parallel()

	latest := domain.Result{CPUScore: 9000, GPUScore: 13000, RAMGB: 64, AvgTemp: 65}
	b := domain.ComputeBreakdown(latest, []domain.Result{latest})
	if b.CPU != 100 || b.GPU != 100 {
		t.Fatalf("lone result breakdown = %+v, want CPU/GPU 100", b)
	}
	if b.RAM != 100 {
		t.Fatalf("RAM = %v, want clamped 100", b.RAM)
	}
}
