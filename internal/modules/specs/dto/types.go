package dto

import "time"

type CPUOutput struct {
	Model    string
	Cores    int
	Threads  int
	UsagePct float64
}

type GPUOutput struct {
	Model    string
	VRAMGB   int
	UsagePct float64
}

type RAMOutput struct {
	TotalGB  int
	Speed    string
	UsagePct float64
}

type StorageOutput struct {
	Kind     string
	TotalGB  int
	UsagePct float64
}

type SnapshotOutput struct {
	OS          string
	CPU         CPUOutput
	GPU         GPUOutput
	RAM         RAMOutput
	Storage     StorageOutput
	CollectedAt time.Time
}

type AnalysisOutput struct {
	Issues          []string
	Recommendations []string
	OverallHealth   string
}
