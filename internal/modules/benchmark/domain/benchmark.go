package domain

import (
	"fmt"
	"time"

	apperrors "sdu/internal/platform/errors"
)

type Type string

const (
	TypeCPU     Type = "cpu"
	TypeGPU     Type = "gpu"
	TypeHybrid  Type = "hybrid"
	TypeGaming  Type = "gaming"
	TypeOffice  Type = "office"
	TypeEditing Type = "editing"
	TypeAIML    Type = "ai-ml"
)

// AllTypes is the selection order shown to the user.
var AllTypes = []Type{TypeCPU, TypeGPU, TypeHybrid, TypeGaming, TypeOffice, TypeEditing, TypeAIML}

func ParseType(raw string) (Type, error) {
	for _, t := range AllTypes {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown benchmark type %q", apperrors.ErrInvalidInput, raw)
}

// MetricPoint is one sample of the load curve recorded during a run.
// Time is seconds from the start of the run.
type MetricPoint struct {
	Time int     `json:"time"`
	CPU  float64 `json:"cpu"`
	GPU  float64 `json:"gpu"`
	Temp float64 `json:"temp"`
}

type Result struct {
	ID            string        `json:"id"`
	BenchmarkType Type          `json:"benchmark_type"`
	CPUScore      int           `json:"cpu_score"`
	GPUScore      int           `json:"gpu_score"`
	RAMScore      int           `json:"ram_score"`
	OverallScore  int           `json:"overall_score"`
	AvgTemp       float64       `json:"avg_temp"`
	CPUModel      string        `json:"cpu_model"`
	GPUModel      string        `json:"gpu_model"`
	RAMGB         int           `json:"ram_gb"`
	CreatedAt     time.Time     `json:"created_at"`
	Metrics       []MetricPoint `json:"metrics"`
}

// Breakdown holds per-subsystem utilization on a 0-100 scale, derived from a
// result relative to its peers.
type Breakdown struct {
	CPU  float64
	GPU  float64
	RAM  float64
	Temp float64
}

const (
	// referenceRAMGB anchors RAM utilization; a 32 GB kit reads as 100%.
	referenceRAMGB = 32
	// referenceTempC anchors thermal headroom; 100°C reads as 100%.
	referenceTempC = 100
)

// ComputeBreakdown normalizes the latest result against the maximum scores
// observed across all results, so a lone result always reads as 100% on CPU
// and GPU.
func ComputeBreakdown(latest Result, all []Result) Breakdown {
	maxCPU, maxGPU := latest.CPUScore, latest.GPUScore
	for _, r := range all {
		if r.CPUScore > maxCPU {
			maxCPU = r.CPUScore
		}
		if r.GPUScore > maxGPU {
			maxGPU = r.GPUScore
		}
	}
	b := Breakdown{
		RAM:  clampPercent(float64(latest.RAMGB) / referenceRAMGB * 100),
		Temp: clampPercent(latest.AvgTemp / referenceTempC * 100),
	}
	if maxCPU > 0 {
		b.CPU = clampPercent(float64(latest.CPUScore) / float64(maxCPU) * 100)
	}
	if maxGPU > 0 {
		b.GPU = clampPercent(float64(latest.GPUScore) / float64(maxGPU) * 100)
	}
	return b
}

// Comparison ranks a machine against backend results for similar hardware.
type Comparison struct {
	AvgCPUScore     float64
	AvgGPUScore     float64
	AvgOverallScore float64
	SampleSize      int
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
