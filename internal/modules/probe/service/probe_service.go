package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sdu/internal/modules/probe/domain"
	"sdu/internal/modules/probe/dto"
	probeout "sdu/internal/modules/probe/port/out"
)

type ProbeService struct {
	store probeout.ManifestStore
	host  probeout.Host
}

func NewProbeService(store probeout.ManifestStore, host probeout.Host) *ProbeService {
	return &ProbeService{store: store, host: host}
}

func (s *ProbeService) List(ctx context.Context) ([]dto.ProbeInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProbeInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.ProbeInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *ProbeService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *ProbeService) Snapshot(ctx context.Context, probeName string) (dto.SnapshotOutput, error) {
	manifest, err := s.getRunnableManifest(ctx, probeName, domain.CapabilitySnapshot)
	if err != nil {
		return dto.SnapshotOutput{}, err
	}
	snapshot, err := s.host.CollectSnapshot(ctx, manifest)
	if err != nil {
		return dto.SnapshotOutput{}, err
	}
	return dto.SnapshotOutput{
		OS:              snapshot.OS,
		CPUModel:        snapshot.CPUModel,
		CPUCores:        snapshot.CPUCores,
		CPUThreads:      snapshot.CPUThreads,
		CPUUsagePct:     snapshot.CPUUsagePct,
		GPUModel:        snapshot.GPUModel,
		GPUVRAMGB:       snapshot.GPUVRAMGB,
		GPUUsagePct:     snapshot.GPUUsagePct,
		RAMTotalGB:      snapshot.RAMTotalGB,
		RAMSpeed:        snapshot.RAMSpeed,
		RAMUsagePct:     snapshot.RAMUsagePct,
		StorageKind:     snapshot.StorageKind,
		StorageGB:       snapshot.StorageGB,
		StorageUsagePct: snapshot.StorageUsagePct,
	}, nil
}

func (s *ProbeService) Live(ctx context.Context, probeName string) (dto.LiveSampleOutput, error) {
	manifest, err := s.getRunnableManifest(ctx, probeName, domain.CapabilityLiveMetrics)
	if err != nil {
		return dto.LiveSampleOutput{}, err
	}
	sample, err := s.host.SampleLive(ctx, manifest)
	if err != nil {
		return dto.LiveSampleOutput{}, err
	}
	return dto.LiveSampleOutput{CPU: sample.CPU, GPU: sample.GPU, Temp: sample.Temp}, nil
}

func (s *ProbeService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate probe name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *ProbeService) getRunnableManifest(ctx context.Context, probeName string, requiredCapability domain.Capability) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	manifest := domain.Manifest{}
	found := false
	for _, item := range manifests {
		if item.Name == probeName {
			manifest = item
			found = true
			break
		}
	}
	if !found {
		return domain.Manifest{}, fmt.Errorf("probe %q not found", probeName)
	}
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrProbeDisabled, probeName)
	}
	if requiredCapability != "" && !manifest.HasCapability(requiredCapability) {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrCapabilityMissing, requiredCapability)
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		return domain.Manifest{}, err
	}
	if s.host != nil {
		if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrProbeTimeout, probeName)
			}
			return domain.Manifest{}, err
		}
	}
	return manifest, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read probe binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
