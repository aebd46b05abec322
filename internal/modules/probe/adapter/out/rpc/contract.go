package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	ProbeMapKey       = "sdu"
	serviceName       = "sdu.probe.v1.SduProbe"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodCollect     = "/" + serviceName + "/CollectSnapshot"
	methodSampleLive  = "/" + serviceName + "/SampleLive"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "SDU_PROBE",
	MagicCookieValue: "sdu",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Capabilities []string `json:"capabilities"`
}

type Snapshot struct {
	OS              string  `json:"os"`
	CPUModel        string  `json:"cpu_model"`
	CPUCores        int32   `json:"cpu_cores"`
	CPUThreads      int32   `json:"cpu_threads"`
	CPUUsagePct     float64 `json:"cpu_usage"`
	GPUModel        string  `json:"gpu_model"`
	GPUVRAMGB       int32   `json:"gpu_vram_gb"`
	GPUUsagePct     float64 `json:"gpu_usage"`
	RAMTotalGB      int32   `json:"ram_total_gb"`
	RAMSpeed        string  `json:"ram_speed"`
	RAMUsagePct     float64 `json:"ram_usage"`
	StorageKind     string  `json:"storage_kind"`
	StorageGB       int32   `json:"storage_gb"`
	StorageUsagePct float64 `json:"storage_usage"`
}

type LiveSample struct {
	CPU  float64 `json:"cpu"`
	GPU  float64 `json:"gpu"`
	Temp float64 `json:"temp"`
}

type SduProbeServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	CollectSnapshot(ctx context.Context, in *Empty) (*Snapshot, error)
	SampleLive(ctx context.Context, in *Empty) (*LiveSample, error)
}

type SduProbeClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	CollectSnapshot(ctx context.Context) (*Snapshot, error)
	SampleLive(ctx context.Context) (*LiveSample, error)
}

type sduProbeClient struct {
	conn *grpc.ClientConn
}

func NewSduProbeClient(conn *grpc.ClientConn) SduProbeClient {
	return &sduProbeClient{conn: conn}
}

func (c *sduProbeClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sduProbeClient) CollectSnapshot(ctx context.Context) (*Snapshot, error) {
	out := &Snapshot{}
	if err := c.conn.Invoke(ctx, methodCollect, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sduProbeClient) SampleLive(ctx context.Context) (*LiveSample, error) {
	out := &LiveSample{}
	if err := c.conn.Invoke(ctx, methodSampleLive, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterSduProbeServer(server grpc.ServiceRegistrar, impl SduProbeServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*SduProbeServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.GetMetadata(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetMetadata}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.GetMetadata(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "CollectSnapshot",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.CollectSnapshot(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodCollect}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.CollectSnapshot(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
			{
				MethodName: "SampleLive",
				Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := &Empty{}
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return impl.SampleLive(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodSampleLive}
					handler := func(ctx context.Context, req any) (any, error) {
						empty, ok := req.(*Empty)
						if !ok {
							return nil, fmt.Errorf("invalid request type")
						}
						return impl.SampleLive(ctx, empty)
					}
					return interceptor(ctx, in, info, handler)
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "schemas/probe-rpc-v1.proto",
	}, impl)
}

type GRPCProbe struct {
	plugin.NetRPCUnsupportedPlugin
	Impl SduProbeServer
}

func (p *GRPCProbe) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterSduProbeServer(server, p.Impl)
	return nil
}

func (p *GRPCProbe) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewSduProbeClient(conn), nil
}

func ProbeMap(impl SduProbeServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		ProbeMapKey: &GRPCProbe{Impl: impl},
	}
}
