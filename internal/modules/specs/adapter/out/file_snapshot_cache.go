package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sdu/internal/modules/specs/domain"
	specsout "sdu/internal/modules/specs/port/out"
	apperrors "sdu/internal/platform/errors"
)

type FileSnapshotCache struct {
	path string
}

var _ specsout.SnapshotCache = (*FileSnapshotCache)(nil)

func NewFileSnapshotCache(path string) *FileSnapshotCache {
	return &FileSnapshotCache{path: path}
}

func (c *FileSnapshotCache) Save(_ context.Context, snapshot domain.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(c.path, payload, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load treats a corrupt cache file as a miss; the next collection pass
// overwrites it.
func (c *FileSnapshotCache) Load(_ context.Context) (domain.Snapshot, error) {
	payload, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Snapshot{}, apperrors.ErrNotFound
		}
		return domain.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	snapshot := domain.Snapshot{}
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return domain.Snapshot{}, apperrors.ErrNotFound
	}
	return snapshot, nil
}

func (c *FileSnapshotCache) Clear(_ context.Context) error {
	if err := os.Remove(c.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
