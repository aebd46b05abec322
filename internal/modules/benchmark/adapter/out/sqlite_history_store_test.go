package out_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	benchmarkout "sdu/internal/modules/benchmark/adapter/out"
	"sdu/internal/modules/benchmark/domain"
)

func newStore(t *testing.T) *benchmarkout.SQLiteHistoryStore {
	t.Helper()
	store, err := benchmarkout.NewSQLiteHistoryStore(filepath.Join(t.TempDir(), "state", "sdu.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleResult(id string, at time.Time) domain.Result {
	return domain.Result{
		ID:            id,
		BenchmarkType: domain.TypeHybrid,
		CPUScore:      9000,
		GPUScore:      13000,
		RAMScore:      5500,
		OverallScore:  22000,
		AvgTemp:       68.5,
		CPUModel:      "AMD Ryzen 9 5950X",
		GPUModel:      "NVIDIA GeForce RTX 4080",
		RAMGB:         64,
		CreatedAt:     at,
		Metrics:       domain.LoadCurve(),
	}
}

func TestInsertAndListRoundTrip(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	want := sampleResult("run-1", at)

	if err := store.Insert(context.Background(), want); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	results, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	got := results[0]
	if got.ID != want.ID || got.BenchmarkType != want.BenchmarkType || got.OverallScore != want.OverallScore {
		t.Fatalf("result = %+v", got)
	}
	if !got.CreatedAt.Equal(at) {
		t.Fatalf("CreatedAt = %v, want %v", got.CreatedAt, at)
	}
	if len(got.Metrics) != 5 || got.Metrics[2].CPU != 92 {
		t.Fatalf("metrics = %+v", got.Metrics)
	}
}

func TestListNewestFirst(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		r := sampleResult(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*time.Minute))
		if err := store.Insert(context.Background(), r); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	results, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if results[0].ID != "run-2" || results[2].ID != "run-0" {
		t.Fatalf("order = [%s %s %s]", results[0].ID, results[1].ID, results[2].ID)
	}
}

func TestListSameSecondKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	// Random hex ids give no useful sort order, so the second run gets
	// an id that sorts below the first on purpose.
	first := sampleResult("ffff0001", at)
	second := sampleResult("aaaa0002", at)

	if err := store.Insert(context.Background(), first); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := store.Insert(context.Background(), second); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	results, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].ID != "aaaa0002" || results[1].ID != "ffff0001" {
		t.Fatalf("order = [%s %s], want newest insert first", results[0].ID, results[1].ID)
	}
}

func TestPruneKeepsNewestRows(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		r := sampleResult(fmt.Sprintf("run-%02d", i), base.Add(time.Duration(i)*time.Minute))
		if err := store.Insert(context.Background(), r); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	if err := store.Prune(context.Background(), 10); err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	results, err := store.List(context.Background(), 100)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(results) != 10 {
		t.Fatalf("len(results) = %d, want 10", len(results))
	}
	if results[0].ID != "run-11" || results[9].ID != "run-02" {
		t.Fatalf("kept window = %s..%s", results[0].ID, results[9].ID)
	}
}

func TestInsertSameIDUpserts(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	r := sampleResult("run-1", at)
	if err := store.Insert(context.Background(), r); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	r.OverallScore = 24999
	if err := store.Insert(context.Background(), r); err != nil {
		t.Fatalf("Insert() again error = %v", err)
	}

	results, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if results[0].OverallScore != 24999 {
		t.Fatalf("OverallScore = %d, want 24999", results[0].OverallScore)
	}
}
