package domain

import "time"

const SchemaVersion = 1

type CPU struct {
	Model    string  `json:"model"`
	Cores    int     `json:"cores"`
	Threads  int     `json:"threads"`
	UsagePct float64 `json:"usage"`
}

type GPU struct {
	Model    string  `json:"model"`
	VRAMGB   int     `json:"vram_gb"`
	UsagePct float64 `json:"usage"`
}

type RAM struct {
	TotalGB  int     `json:"total_gb"`
	Speed    string  `json:"speed"`
	UsagePct float64 `json:"usage"`
}

type Storage struct {
	Kind     string  `json:"kind"`
	TotalGB  int     `json:"total_gb"`
	UsagePct float64 `json:"usage"`
}

// Snapshot is one hardware inventory pass over the machine.
type Snapshot struct {
	OS          string    `json:"os"`
	CPU         CPU       `json:"cpu"`
	GPU         GPU       `json:"gpu"`
	RAM         RAM       `json:"ram"`
	Storage     Storage   `json:"storage"`
	CollectedAt time.Time `json:"collected_at"`
}

func (s Snapshot) Empty() bool {
	return s.CPU.Model == "" && s.RAM.TotalGB == 0
}
