package domain

import (
	"errors"
	"fmt"
	"regexp"
)

type Capability string

const (
	CapabilitySnapshot    Capability = "snapshot"
	CapabilityLiveMetrics Capability = "live_metrics"
)

var (
	ErrProbeDisabled     = errors.New("probe is disabled")
	ErrChecksumMismatch  = errors.New("probe checksum mismatch")
	ErrCapabilityMissing = errors.New("probe capability missing")
	ErrProbeTimeout      = errors.New("probe timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes one installed hardware probe binary.
type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("probe name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("probe version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("probe binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("probe sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("probe capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	switch c {
	case CapabilitySnapshot, CapabilityLiveMetrics:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// Snapshot is the raw hardware inventory a probe reports. It stays flat on
// the wire; richer shapes belong to the consumers.
type Snapshot struct {
	OS              string
	CPUModel        string
	CPUCores        int
	CPUThreads      int
	CPUUsagePct     float64
	GPUModel        string
	GPUVRAMGB       int
	GPUUsagePct     float64
	RAMTotalGB      int
	RAMSpeed        string
	RAMUsagePct     float64
	StorageKind     string
	StorageGB       int
	StorageUsagePct float64
}

type LiveSample struct {
	CPU  float64
	GPU  float64
	Temp float64
}
