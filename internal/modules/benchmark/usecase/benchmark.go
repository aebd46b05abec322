package usecase

import (
	"context"
	"fmt"

	"sdu/internal/modules/benchmark/domain"
	benchmarkdto "sdu/internal/modules/benchmark/dto"
	benchmarkin "sdu/internal/modules/benchmark/port/in"
	benchmarkout "sdu/internal/modules/benchmark/port/out"
	"sdu/internal/modules/benchmark/service"
	apperrors "sdu/internal/platform/errors"
)

type Interactor struct {
	svc     *service.BenchmarkService
	runner  benchmarkout.Runner
	remote  benchmarkout.RemoteIndex
	compare benchmarkout.Comparator
	live    benchmarkout.LiveFeed
}

// NewInteractor wires the benchmark flows. remote and compare may be nil in
// offline mode; listing then falls back to local history alone and Compare
// reports the backend as unavailable.
func NewInteractor(svc *service.BenchmarkService, runner benchmarkout.Runner, remote benchmarkout.RemoteIndex, compare benchmarkout.Comparator, live benchmarkout.LiveFeed) benchmarkin.Usecase {
	return &Interactor{svc: svc, runner: runner, remote: remote, compare: compare, live: live}
}

func (i *Interactor) Run(ctx context.Context, input benchmarkdto.RunInput) (benchmarkdto.ResultOutput, error) {
	typ, err := domain.ParseType(input.Type)
	if err != nil {
		return benchmarkdto.ResultOutput{}, err
	}
	result, err := i.runner.Run(ctx, typ)
	if err != nil {
		return benchmarkdto.ResultOutput{}, fmt.Errorf("run %s benchmark: %w", typ, err)
	}
	return resultOutput(result), nil
}

func (i *Interactor) Finalize(ctx context.Context, result benchmarkdto.ResultOutput) (benchmarkdto.ResultOutput, error) {
	finalized, err := i.svc.Finalize(ctx, resultDomain(result))
	if err != nil {
		return benchmarkdto.ResultOutput{}, err
	}
	return resultOutput(finalized), nil
}

func (i *Interactor) History(ctx context.Context) ([]benchmarkdto.ResultOutput, error) {
	results, err := i.svc.History(ctx)
	if err != nil {
		return nil, err
	}
	return resultOutputs(results), nil
}

func (i *Interactor) List(ctx context.Context) ([]benchmarkdto.ResultOutput, error) {
	results, err := i.merged(ctx)
	if err != nil {
		return nil, err
	}
	return resultOutputs(results), nil
}

func (i *Interactor) Breakdown(ctx context.Context) (benchmarkdto.BreakdownOutput, error) {
	results, err := i.merged(ctx)
	if err != nil {
		return benchmarkdto.BreakdownOutput{}, err
	}
	// The backend's bottleneck profile accounts for the whole fleet; the
	// locally computed one only knows this machine's history.
	if i.compare != nil && len(results) > 0 {
		if b, err := i.compare.Bottleneck(ctx, results[0].ID); err == nil {
			return benchmarkdto.BreakdownOutput{CPU: b.CPU, GPU: b.GPU, RAM: b.RAM, Temp: b.Temp}, nil
		}
	}
	b, err := i.svc.Breakdown(results)
	if err != nil {
		return benchmarkdto.BreakdownOutput{}, err
	}
	return benchmarkdto.BreakdownOutput{CPU: b.CPU, GPU: b.GPU, RAM: b.RAM, Temp: b.Temp}, nil
}

// Compare ranks the latest result's hardware against backend aggregates.
func (i *Interactor) Compare(ctx context.Context) (benchmarkdto.ComparisonOutput, error) {
	if i.compare == nil {
		return benchmarkdto.ComparisonOutput{}, apperrors.ErrOffline
	}
	results, err := i.merged(ctx)
	if err != nil {
		return benchmarkdto.ComparisonOutput{}, err
	}
	if len(results) == 0 {
		return benchmarkdto.ComparisonOutput{}, fmt.Errorf("%w: no benchmark results to compare", apperrors.ErrNotFound)
	}
	latest := results[0]
	cmp, err := i.compare.Compare(ctx, latest.CPUModel, latest.GPUModel, latest.RAMGB)
	if err != nil {
		return benchmarkdto.ComparisonOutput{}, fmt.Errorf("compare hardware: %w", err)
	}
	return benchmarkdto.ComparisonOutput{
		CPUModel:        latest.CPUModel,
		GPUModel:        latest.GPUModel,
		RAMGB:           latest.RAMGB,
		AvgCPUScore:     cmp.AvgCPUScore,
		AvgGPUScore:     cmp.AvgGPUScore,
		AvgOverallScore: cmp.AvgOverallScore,
		SampleSize:      cmp.SampleSize,
	}, nil
}

func (i *Interactor) Live(ctx context.Context) (benchmarkdto.LiveOutput, error) {
	sample, err := i.live.Sample(ctx)
	if err != nil {
		return benchmarkdto.LiveOutput{}, err
	}
	return benchmarkdto.LiveOutput{CPU: sample.CPU, GPU: sample.GPU, Temp: sample.Temp}, nil
}

func (i *Interactor) merged(ctx context.Context) ([]domain.Result, error) {
	local, err := i.svc.History(ctx)
	if err != nil {
		return nil, err
	}
	if i.remote == nil {
		return i.svc.Merge(nil, local), nil
	}
	remote, err := i.remote.ListRemote(ctx)
	if err != nil {
		return nil, fmt.Errorf("list remote benchmarks: %w", err)
	}
	return i.svc.Merge(remote, local), nil
}

func resultOutput(r domain.Result) benchmarkdto.ResultOutput {
	metrics := make([]benchmarkdto.MetricPointOutput, 0, len(r.Metrics))
	for _, m := range r.Metrics {
		metrics = append(metrics, benchmarkdto.MetricPointOutput{Time: m.Time, CPU: m.CPU, GPU: m.GPU, Temp: m.Temp})
	}
	return benchmarkdto.ResultOutput{
		ID:            r.ID,
		BenchmarkType: string(r.BenchmarkType),
		CPUScore:      r.CPUScore,
		GPUScore:      r.GPUScore,
		RAMScore:      r.RAMScore,
		OverallScore:  r.OverallScore,
		AvgTemp:       r.AvgTemp,
		CPUModel:      r.CPUModel,
		GPUModel:      r.GPUModel,
		RAMGB:         r.RAMGB,
		CreatedAt:     r.CreatedAt,
		Metrics:       metrics,
	}
}

func resultOutputs(results []domain.Result) []benchmarkdto.ResultOutput {
	outputs := make([]benchmarkdto.ResultOutput, 0, len(results))
	for _, r := range results {
		outputs = append(outputs, resultOutput(r))
	}
	return outputs
}

func resultDomain(r benchmarkdto.ResultOutput) domain.Result {
	metrics := make([]domain.MetricPoint, 0, len(r.Metrics))
	for _, m := range r.Metrics {
		metrics = append(metrics, domain.MetricPoint{Time: m.Time, CPU: m.CPU, GPU: m.GPU, Temp: m.Temp})
	}
	return domain.Result{
		ID:            r.ID,
		BenchmarkType: domain.Type(r.BenchmarkType),
		CPUScore:      r.CPUScore,
		GPUScore:      r.GPUScore,
		RAMScore:      r.RAMScore,
		OverallScore:  r.OverallScore,
		AvgTemp:       r.AvgTemp,
		CPUModel:      r.CPUModel,
		GPUModel:      r.GPUModel,
		RAMGB:         r.RAMGB,
		CreatedAt:     r.CreatedAt,
		Metrics:       metrics,
	}
}
