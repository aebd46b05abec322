package main

import (
	"context"
	"math/rand"
	"sync"

	proberpc "sdu/internal/modules/probe/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

// mockprobe reports a fixed reference machine and jittered live samples. It
// doubles as the integration target for the probe host tests.
type server struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *server) GetMetadata(_ context.Context, _ *proberpc.Empty) (*proberpc.Metadata, error) {
	return &proberpc.Metadata{
		Name:         "mockprobe",
		Version:      "1.0.0",
		Capabilities: []string{"snapshot", "live_metrics"},
	}, nil
}

func (s *server) CollectSnapshot(_ context.Context, _ *proberpc.Empty) (*proberpc.Snapshot, error) {
	return &proberpc.Snapshot{
		OS:              "Windows 11 Pro 23H2",
		CPUModel:        "AMD Ryzen 9 5950X",
		CPUCores:        16,
		CPUThreads:      32,
		CPUUsagePct:     45,
		GPUModel:        "NVIDIA GeForce RTX 4080",
		GPUVRAMGB:       16,
		GPUUsagePct:     23,
		RAMTotalGB:      64,
		RAMSpeed:        "DDR4-3600",
		RAMUsagePct:     62,
		StorageKind:     "NVMe SSD",
		StorageGB:       2000,
		StorageUsagePct: 58,
	}, nil
}

func (s *server) SampleLive(_ context.Context, _ *proberpc.Empty) (*proberpc.LiveSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &proberpc.LiveSample{
		CPU:  35 + s.rng.Float64()*30,
		GPU:  20 + s.rng.Float64()*40,
		Temp: 55 + s.rng.Float64()*20,
	}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: proberpc.HandshakeConfig,
		Plugins:         proberpc.ProbeMap(&server{rng: rand.New(rand.NewSource(1))}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
