package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	specsout "sdu/internal/modules/specs/adapter/out"
	"sdu/internal/modules/specs/domain"
	apperrors "sdu/internal/platform/errors"
)

func TestFileSnapshotCacheRoundTrip(t *testing.T) {
	t.Parallel()

	cache := specsout.NewFileSnapshotCache(filepath.Join(t.TempDir(), "state", "snapshot.json"))
	want := domain.Snapshot{
		OS:          "Windows 11 Pro 23H2",
		CPU:         domain.CPU{Model: "AMD Ryzen 9 5950X", Cores: 16, Threads: 32, UsagePct: 45},
		RAM:         domain.RAM{TotalGB: 64, Speed: "DDR4-3600", UsagePct: 62},
		CollectedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	if err := cache.Save(context.Background(), want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := cache.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.CPU.Model != want.CPU.Model || got.RAM.TotalGB != want.RAM.TotalGB {
		t.Fatalf("loaded = %+v", got)
	}
	if !got.CollectedAt.Equal(want.CollectedAt) {
		t.Fatalf("CollectedAt = %v, want %v", got.CollectedAt, want.CollectedAt)
	}
}

func TestFileSnapshotCacheMissingFileIsMiss(t *testing.T) {
	t.Parallel()

	cache := specsout.NewFileSnapshotCache(filepath.Join(t.TempDir(), "snapshot.json"))
	if _, err := cache.Load(context.Background()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Load() = %v, want ErrNotFound", err)
	}
}

func TestFileSnapshotCacheCorruptFileIsMiss(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	cache := specsout.NewFileSnapshotCache(path)
	if _, err := cache.Load(context.Background()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Load() = %v, want ErrNotFound", err)
	}
}

func TestFileSnapshotCacheClear(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snapshot.json")
	cache := specsout.NewFileSnapshotCache(path)
	if err := cache.Save(context.Background(), domain.Snapshot{OS: "x"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := cache.Clear(context.Background()); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if err := cache.Clear(context.Background()); err != nil {
		t.Fatalf("Clear() on missing file error = %v", err)
	}
	if _, err := cache.Load(context.Background()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Load() after clear = %v, want ErrNotFound", err)
	}
}
