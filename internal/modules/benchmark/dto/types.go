package dto

import "time"

type RunInput struct {
	Type string
}

type MetricPointOutput struct {
	Time int
	CPU  float64
	GPU  float64
	Temp float64
}

type ResultOutput struct {
	ID            string
	BenchmarkType string
	CPUScore      int
	GPUScore      int
	RAMScore      int
	OverallScore  int
	AvgTemp       float64
	CPUModel      string
	GPUModel      string
	RAMGB         int
	CreatedAt     time.Time
	Metrics       []MetricPointOutput
}

type BreakdownOutput struct {
	CPU  float64
	GPU  float64
	RAM  float64
	Temp float64
}

type ComparisonOutput struct {
	CPUModel        string
	GPUModel        string
	RAMGB           int
	AvgCPUScore     float64
	AvgGPUScore     float64
	AvgOverallScore float64
	SampleSize      int
}

type LiveOutput struct {
	CPU  float64
	GPU  float64
	Temp float64
	At   time.Time
}
