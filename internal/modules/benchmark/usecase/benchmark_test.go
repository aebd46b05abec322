package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"sdu/internal/modules/benchmark/domain"
	benchmarkdto "sdu/internal/modules/benchmark/dto"
	benchmarkin "sdu/internal/modules/benchmark/port/in"
	"sdu/internal/modules/benchmark/service"
	"sdu/internal/modules/benchmark/usecase"
	apperrors "sdu/internal/platform/errors"
)

type fixedClock struct{ at time.Time }

func (f fixedClock) Now() time.Time { return f.at }

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("gen-%d", s.n)
}

type memoryStore struct {
	results []domain.Result
}

func (m *memoryStore) Insert(_ context.Context, result domain.Result) error {
	m.results = append(m.results, result)
	return nil
}

func (m *memoryStore) List(_ context.Context, limit int) ([]domain.Result, error) {
	sorted := make([]domain.Result, len(m.results))
	copy(sorted, m.results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (m *memoryStore) Prune(_ context.Context, keep int) error {
	kept, _ := m.List(context.Background(), keep)
	m.results = kept
	return nil
}

type fakeRunner struct {
	calls  int
	result domain.Result
	err    error
}

func (f *fakeRunner) Run(context.Context, domain.Type) (domain.Result, error) {
	f.calls++
	return f.result, f.err
}

type fakeRemote struct {
	results []domain.Result
	err     error
}

func (f *fakeRemote) ListRemote(context.Context) ([]domain.Result, error) {
	return f.results, f.err
}

type fakeLive struct {
	sample domain.MetricPoint
}

func (f *fakeLive) Sample(context.Context) (domain.MetricPoint, error) {
	return f.sample, nil
}

type fakeComparator struct {
	breakdown  domain.Breakdown
	comparison domain.Comparison
	err        error
}

func (f *fakeComparator) Bottleneck(context.Context, string) (domain.Breakdown, error) {
	return f.breakdown, f.err
}

func (f *fakeComparator) Compare(context.Context, string, string, int) (domain.Comparison, error) {
	return f.comparison, f.err
}

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newUsecase(runner *fakeRunner, remote *fakeRemote, store *memoryStore) benchmarkin.Usecase {
	svc := service.NewBenchmarkService(fixedClock{at: testNow}, &seqID{}, store, 10)
	if remote == nil {
		return usecase.NewInteractor(svc, runner, nil, nil, &fakeLive{})
	}
	return usecase.NewInteractor(svc, runner, remote, nil, &fakeLive{})
}

func TestRunRejectsUnknownTypeWithoutExecuting(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	uc := newUsecase(runner, nil, &memoryStore{})

	_, err := uc.Run(context.Background(), benchmarkdto.RunInput{Type: "quantum"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
	if runner.calls != 0 {
		t.Fatalf("runner calls = %d, want 0", runner.calls)
	}
}

func TestRunDoesNotPersistUntilFinalize(t *testing.T) {
	t.Parallel()

	store := &memoryStore{}
	runner := &fakeRunner{result: domain.Result{ID: "run-1", BenchmarkType: domain.TypeCPU, CreatedAt: testNow}}
	uc := newUsecase(runner, nil, store)

	result, err := uc.Run(context.Background(), benchmarkdto.RunInput{Type: "cpu"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(store.results) != 0 {
		t.Fatal("Run must not touch history; an abandoned run leaves no trace")
	}

	if _, err := uc.Finalize(context.Background(), result); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if len(store.results) != 1 {
		t.Fatalf("len(history) = %d after finalize, want 1", len(store.results))
	}
}

func TestListOfflineFallsBackToLocalHistory(t *testing.T) {
	t.Parallel()

	store := &memoryStore{results: []domain.Result{{ID: "local", CreatedAt: testNow}}}
	uc := newUsecase(&fakeRunner{}, nil, store)

	results, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(results) != 1 || results[0].ID != "local" {
		t.Fatalf("results = %+v", results)
	}
}

func TestListMergesRemoteWithLocal(t *testing.T) {
	t.Parallel()

	store := &memoryStore{results: []domain.Result{{ID: "local", CreatedAt: testNow.Add(time.Minute)}}}
	remote := &fakeRemote{results: []domain.Result{{ID: "remote", CreatedAt: testNow}}}
	uc := newUsecase(&fakeRunner{}, remote, store)

	results, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].ID != "local" || results[1].ID != "remote" {
		t.Fatalf("order = [%s %s]", results[0].ID, results[1].ID)
	}
}

func TestBreakdownUsesNewestMergedResult(t *testing.T) {
	t.Parallel()

	store := &memoryStore{results: []domain.Result{
		{ID: "old", CPUScore: 10000, GPUScore: 15000, CreatedAt: testNow},
		{ID: "new", CPUScore: 8000, GPUScore: 12000, RAMGB: 16, AvgTemp: 70, CreatedAt: testNow.Add(time.Minute)},
	}}
	uc := newUsecase(&fakeRunner{}, nil, store)

	b, err := uc.Breakdown(context.Background())
	if err != nil {
		t.Fatalf("Breakdown() error = %v", err)
	}
	if b.CPU != 80 || b.GPU != 80 || b.RAM != 50 || b.Temp != 70 {
		t.Fatalf("breakdown = %+v", b)
	}
}

func TestBreakdownFallsBackWhenBackendBottleneckFails(t *testing.T) {
	t.Parallel()

	store := &memoryStore{results: []domain.Result{
		{ID: "only", CPUScore: 8000, GPUScore: 12000, RAMGB: 16, AvgTemp: 70, CreatedAt: testNow},
	}}
	svc := service.NewBenchmarkService(fixedClock{at: testNow}, &seqID{}, store, 10)
	comparator := &fakeComparator{err: errors.New("backend down")}
	uc := usecase.NewInteractor(svc, &fakeRunner{}, nil, comparator, &fakeLive{})

	b, err := uc.Breakdown(context.Background())
	if err != nil {
		t.Fatalf("Breakdown() error = %v", err)
	}
	if b.CPU != 100 || b.GPU != 100 || b.RAM != 50 || b.Temp != 70 {
		t.Fatalf("breakdown = %+v, want local computation", b)
	}
}

func TestCompareUsesLatestHardware(t *testing.T) {
	t.Parallel()

	store := &memoryStore{results: []domain.Result{
		{ID: "r1", CPUModel: "Ryzen 7", GPUModel: "RTX 4070", RAMGB: 32, CreatedAt: testNow},
	}}
	svc := service.NewBenchmarkService(fixedClock{at: testNow}, &seqID{}, store, 10)
	comparator := &fakeComparator{comparison: domain.Comparison{AvgOverallScore: 21000, SampleSize: 42}}
	uc := usecase.NewInteractor(svc, &fakeRunner{}, nil, comparator, &fakeLive{})

	c, err := uc.Compare(context.Background())
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if c.CPUModel != "Ryzen 7" || c.RAMGB != 32 {
		t.Fatalf("comparison hardware = %+v", c)
	}
	if c.AvgOverallScore != 21000 || c.SampleSize != 42 {
		t.Fatalf("comparison stats = %+v", c)
	}
}

func TestCompareOfflineReportsBackendUnavailable(t *testing.T) {
	t.Parallel()

	uc := newUsecase(&fakeRunner{}, nil, &memoryStore{})

	_, err := uc.Compare(context.Background())
	if !errors.Is(err, apperrors.ErrOffline) {
		t.Fatalf("error = %v, want ErrOffline", err)
	}
}
