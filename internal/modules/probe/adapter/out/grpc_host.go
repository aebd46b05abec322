package out

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	proberpc "sdu/internal/modules/probe/adapter/out/rpc"
	"sdu/internal/modules/probe/domain"
	probeout "sdu/internal/modules/probe/port/out"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

type GRPCHost struct{}

var _ probeout.Host = (*GRPCHost)(nil)

func NewGRPCHost() *GRPCHost {
	return &GRPCHost{}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()
	if _, err := client.GetMetadata(callCtx); err != nil {
		return fmt.Errorf("get metadata: %w", err)
	}
	return nil
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	capabilities := make([]domain.Capability, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		capabilities = append(capabilities, domain.Capability(capability))
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Capabilities: capabilities}, nil
}

func (h *GRPCHost) CollectSnapshot(ctx context.Context, manifest domain.Manifest) (domain.Snapshot, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.Snapshot{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	snapshot, err := client.CollectSnapshot(callCtx)
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.Snapshot{}, fmt.Errorf("%w: %s", domain.ErrProbeTimeout, manifest.Name)
		}
		return domain.Snapshot{}, fmt.Errorf("collect snapshot: %w", err)
	}
	return domain.Snapshot{
		OS:              snapshot.OS,
		CPUModel:        snapshot.CPUModel,
		CPUCores:        int(snapshot.CPUCores),
		CPUThreads:      int(snapshot.CPUThreads),
		CPUUsagePct:     snapshot.CPUUsagePct,
		GPUModel:        snapshot.GPUModel,
		GPUVRAMGB:       int(snapshot.GPUVRAMGB),
		GPUUsagePct:     snapshot.GPUUsagePct,
		RAMTotalGB:      int(snapshot.RAMTotalGB),
		RAMSpeed:        snapshot.RAMSpeed,
		RAMUsagePct:     snapshot.RAMUsagePct,
		StorageKind:     snapshot.StorageKind,
		StorageGB:       int(snapshot.StorageGB),
		StorageUsagePct: snapshot.StorageUsagePct,
	}, nil
}

func (h *GRPCHost) SampleLive(ctx context.Context, manifest domain.Manifest) (domain.LiveSample, error) {
	client, closeFn, err := h.connect(manifest, defaultStartTimeout)
	if err != nil {
		return domain.LiveSample{}, err
	}
	defer closeFn()

	callCtx, cancel := h.callContext(ctx, defaultCallTimeout)
	defer cancel()

	sample, err := client.SampleLive(callCtx)
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return domain.LiveSample{}, fmt.Errorf("%w: %s", domain.ErrProbeTimeout, manifest.Name)
		}
		return domain.LiveSample{}, fmt.Errorf("sample live metrics: %w", err)
	}
	return domain.LiveSample{CPU: sample.CPU, GPU: sample.GPU, Temp: sample.Temp}, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest, startTimeout time.Duration) (proberpc.SduProbeClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  proberpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          proberpc.ProbeMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start probe client: %w", err)
	}
	raw, err := rpcClient.Dispense(proberpc.ProbeMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense probe: %w", err)
	}
	typed, ok := raw.(proberpc.SduProbeClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("probe rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func (h *GRPCHost) callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
