package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sdu/internal/modules/benchmark/domain"
	benchmarkout "sdu/internal/modules/benchmark/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteHistoryStore struct {
	db *sql.DB
}

var _ benchmarkout.HistoryStore = (*SQLiteHistoryStore)(nil)

func NewSQLiteHistoryStore(dbPath string) (*SQLiteHistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteHistoryStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteHistoryStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS benchmarks (
  id TEXT PRIMARY KEY,
  benchmark_type TEXT NOT NULL,
  cpu_score INTEGER NOT NULL,
  gpu_score INTEGER NOT NULL,
  ram_score INTEGER NOT NULL,
  overall_score INTEGER NOT NULL,
  avg_temp REAL NOT NULL,
  cpu_model TEXT,
  gpu_model TEXT,
  ram_gb INTEGER NOT NULL,
  created_at TEXT NOT NULL,
  metrics TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create benchmarks table: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryStore) Insert(ctx context.Context, result domain.Result) error {
	metrics, err := json.Marshal(result.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	const stmt = `
INSERT INTO benchmarks (id, benchmark_type, cpu_score, gpu_score, ram_score, overall_score, avg_temp, cpu_model, gpu_model, ram_gb, created_at, metrics)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  benchmark_type=excluded.benchmark_type,
  cpu_score=excluded.cpu_score,
  gpu_score=excluded.gpu_score,
  ram_score=excluded.ram_score,
  overall_score=excluded.overall_score,
  avg_temp=excluded.avg_temp,
  cpu_model=excluded.cpu_model,
  gpu_model=excluded.gpu_model,
  ram_gb=excluded.ram_gb,
  created_at=excluded.created_at,
  metrics=excluded.metrics;
`
	_, err = s.db.ExecContext(ctx, stmt,
		result.ID,
		string(result.BenchmarkType),
		result.CPUScore,
		result.GPUScore,
		result.RAMScore,
		result.OverallScore,
		result.AvgTemp,
		result.CPUModel,
		result.GPUModel,
		result.RAMGB,
		result.CreatedAt.Format(time.RFC3339),
		string(metrics),
	)
	if err != nil {
		return fmt.Errorf("insert benchmark: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryStore) List(ctx context.Context, limit int) ([]domain.Result, error) {
	// rowid breaks ties between runs stored within the same second.
	const query = `
SELECT id, benchmark_type, cpu_score, gpu_score, ram_score, overall_score, avg_temp, cpu_model, gpu_model, ram_gb, created_at, metrics
FROM benchmarks
ORDER BY created_at DESC, rowid DESC
LIMIT ?;
`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list benchmarks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Result
	for rows.Next() {
		var (
			r         domain.Result
			typ       string
			createdAt string
			metrics   string
		)
		if err := rows.Scan(&r.ID, &typ, &r.CPUScore, &r.GPUScore, &r.RAMScore, &r.OverallScore, &r.AvgTemp, &r.CPUModel, &r.GPUModel, &r.RAMGB, &createdAt, &metrics); err != nil {
			return nil, fmt.Errorf("scan benchmark: %w", err)
		}
		r.BenchmarkType = domain.Type(typ)
		at, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		r.CreatedAt = at
		if err := json.Unmarshal([]byte(metrics), &r.Metrics); err != nil {
			return nil, fmt.Errorf("decode metrics: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list benchmarks: %w", err)
	}
	return results, nil
}

// Prune drops everything beyond the newest keep rows.
func (s *SQLiteHistoryStore) Prune(ctx context.Context, keep int) error {
	const stmt = `
DELETE FROM benchmarks
WHERE id NOT IN (
  SELECT id FROM benchmarks ORDER BY created_at DESC, rowid DESC LIMIT ?
);
`
	if _, err := s.db.ExecContext(ctx, stmt, keep); err != nil {
		return fmt.Errorf("prune benchmarks: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryStore) Close() error {
	return s.db.Close()
}
