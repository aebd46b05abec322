package out_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	probeout "sdu/internal/modules/probe/adapter/out"
	"sdu/internal/modules/probe/domain"
)

func TestGRPCHostIntegrationMockProbe(t *testing.T) {
	binPath, checksum := buildMockProbe(t)
	manifest := domain.Manifest{
		Name:         "mockprobe",
		Version:      "1.0.0",
		Binary:       binPath,
		SHA256:       checksum,
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilitySnapshot, domain.CapabilityLiveMetrics},
	}

	host := probeout.NewGRPCHost()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := host.CheckLifecycle(ctx, manifest); err != nil {
		t.Fatalf("check lifecycle: %v", err)
	}
	metadata, err := host.GetMetadata(ctx, manifest)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if metadata.Name != "mockprobe" {
		t.Fatalf("unexpected metadata name: %s", metadata.Name)
	}

	snapshot, err := host.CollectSnapshot(ctx, manifest)
	if err != nil {
		t.Fatalf("collect snapshot: %v", err)
	}
	if snapshot.CPUModel == "" || snapshot.RAMTotalGB == 0 {
		t.Fatalf("incomplete snapshot: %+v", snapshot)
	}

	sample, err := host.SampleLive(ctx, manifest)
	if err != nil {
		t.Fatalf("sample live: %v", err)
	}
	if sample.CPU <= 0 || sample.Temp <= 0 {
		t.Fatalf("implausible live sample: %+v", sample)
	}
}

func buildMockProbe(t *testing.T) (string, string) {
	t.Helper()
	tmp := t.TempDir()
	binPath := filepath.Join(tmp, "mockprobe")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/mockprobe")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build mockprobe: %v\n%s", err, string(out))
	}
	payload, err := os.ReadFile(binPath)
	if err != nil {
		t.Fatalf("read built probe: %v", err)
	}
	hash := sha256.Sum256(payload)
	return binPath, hex.EncodeToString(hash[:])
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
