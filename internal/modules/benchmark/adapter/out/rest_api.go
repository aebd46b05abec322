package out

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"sdu/internal/modules/benchmark/domain"
	benchmarkout "sdu/internal/modules/benchmark/port/out"
	"sdu/internal/platform/rest"
)

// RESTBenchmarkAPI drives runs on the backend and reads its result index and
// live utilization feed.
type RESTBenchmarkAPI struct {
	client *rest.Client
}

var (
	_ benchmarkout.Runner      = (*RESTBenchmarkAPI)(nil)
	_ benchmarkout.RemoteIndex = (*RESTBenchmarkAPI)(nil)
	_ benchmarkout.LiveFeed    = (*RESTBenchmarkAPI)(nil)
	_ benchmarkout.Comparator  = (*RESTBenchmarkAPI)(nil)
)

func NewRESTBenchmarkAPI(client *rest.Client) *RESTBenchmarkAPI {
	return &RESTBenchmarkAPI{client: client}
}

type resultPayload struct {
	ID            json.Number          `json:"id"`
	BenchmarkType string               `json:"benchmark_type"`
	CPUScore      int                  `json:"cpu_score"`
	GPUScore      int                  `json:"gpu_score"`
	RAMScore      int                  `json:"ram_score"`
	OverallScore  int                  `json:"overall_score"`
	AvgTemp       float64              `json:"avg_temp"`
	CPUModel      string               `json:"cpu_model"`
	GPUModel      string               `json:"gpu_model"`
	RAMGB         int                  `json:"ram_gb"`
	CreatedAt     string               `json:"created_at"`
	Metrics       []domain.MetricPoint `json:"metrics"`
}

func (p resultPayload) toDomain() (domain.Result, error) {
	createdAt := time.Time{}
	if p.CreatedAt != "" {
		at, err := time.Parse(time.RFC3339, p.CreatedAt)
		if err != nil {
			return domain.Result{}, fmt.Errorf("parse created_at %q: %w", p.CreatedAt, err)
		}
		createdAt = at
	}
	return domain.Result{
		ID:            p.ID.String(),
		BenchmarkType: domain.Type(p.BenchmarkType),
		CPUScore:      p.CPUScore,
		GPUScore:      p.GPUScore,
		RAMScore:      p.RAMScore,
		OverallScore:  p.OverallScore,
		AvgTemp:       p.AvgTemp,
		CPUModel:      p.CPUModel,
		GPUModel:      p.GPUModel,
		RAMGB:         p.RAMGB,
		CreatedAt:     createdAt,
		Metrics:       p.Metrics,
	}, nil
}

func (a *RESTBenchmarkAPI) Run(ctx context.Context, typ domain.Type) (domain.Result, error) {
	in := map[string]string{"benchmark_type": string(typ)}
	var out resultPayload
	if err := a.client.Post(ctx, "/benchmarks/", in, &out); err != nil {
		return domain.Result{}, err
	}
	return out.toDomain()
}

func (a *RESTBenchmarkAPI) ListRemote(ctx context.Context) ([]domain.Result, error) {
	var payloads []resultPayload
	if err := a.client.Get(ctx, "/benchmarks/", &payloads); err != nil {
		return nil, err
	}
	results := make([]domain.Result, 0, len(payloads))
	for _, p := range payloads {
		r, err := p.toDomain()
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (a *RESTBenchmarkAPI) Bottleneck(ctx context.Context, benchmarkID string) (domain.Breakdown, error) {
	var out struct {
		CPUScore float64 `json:"cpu_score"`
		GPUScore float64 `json:"gpu_score"`
		RAMScore float64 `json:"ram_score"`
		Temp     float64 `json:"temp"`
	}
	query := url.Values{"benchmark_id": {benchmarkID}}
	if err := a.client.Get(ctx, "/benchmarks/bottleneck/?"+query.Encode(), &out); err != nil {
		return domain.Breakdown{}, err
	}
	return domain.Breakdown{CPU: out.CPUScore, GPU: out.GPUScore, RAM: out.RAMScore, Temp: out.Temp}, nil
}

func (a *RESTBenchmarkAPI) Compare(ctx context.Context, cpuModel, gpuModel string, ramGB int) (domain.Comparison, error) {
	var out struct {
		AvgCPUScore     float64 `json:"avg_cpu_score"`
		AvgGPUScore     float64 `json:"avg_gpu_score"`
		AvgOverallScore float64 `json:"avg_overall_score"`
		SampleSize      int     `json:"sample_size"`
	}
	query := url.Values{
		"cpu_model": {cpuModel},
		"gpu_model": {gpuModel},
		"ram_gb":    {strconv.Itoa(ramGB)},
	}
	if err := a.client.Get(ctx, "/benchmarks/compare/?"+query.Encode(), &out); err != nil {
		return domain.Comparison{}, err
	}
	return domain.Comparison{
		AvgCPUScore:     out.AvgCPUScore,
		AvgGPUScore:     out.AvgGPUScore,
		AvgOverallScore: out.AvgOverallScore,
		SampleSize:      out.SampleSize,
	}, nil
}

func (a *RESTBenchmarkAPI) Sample(ctx context.Context) (domain.MetricPoint, error) {
	var out struct {
		CPU  float64 `json:"cpu"`
		GPU  float64 `json:"gpu"`
		Temp float64 `json:"temp"`
	}
	if err := a.client.Get(ctx, "/benchmarks/live/", &out); err != nil {
		return domain.MetricPoint{}, err
	}
	return domain.MetricPoint{CPU: out.CPU, GPU: out.GPU, Temp: out.Temp}, nil
}
