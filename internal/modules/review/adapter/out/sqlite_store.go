package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sdu/internal/modules/review/domain"
	reviewout "sdu/internal/modules/review/port/out"
	apperrors "sdu/internal/platform/errors"

	_ "modernc.org/sqlite"
)

type SQLiteReviewStore struct {
	db *sql.DB
}

var _ reviewout.ReviewStore = (*SQLiteReviewStore)(nil)

func NewSQLiteReviewStore(dbPath string) (*SQLiteReviewStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteReviewStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteReviewStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS reviews (
  id TEXT PRIMARY KEY,
  user TEXT NOT NULL,
  comment TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create reviews table: %w", err)
	}
	return nil
}

func (s *SQLiteReviewStore) Insert(ctx context.Context, review domain.Review) error {
	const stmt = `INSERT INTO reviews (id, user, comment, created_at, updated_at) VALUES (?, ?, ?, ?, ?);`
	_, err := s.db.ExecContext(ctx, stmt,
		review.ID,
		review.User,
		review.Comment,
		review.CreatedAt.Format(time.RFC3339Nano),
		review.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (s *SQLiteReviewStore) Update(ctx context.Context, review domain.Review) error {
	const stmt = `UPDATE reviews SET comment = ?, updated_at = ? WHERE id = ?;`
	res, err := s.db.ExecContext(ctx, stmt, review.Comment, review.UpdatedAt.Format(time.RFC3339Nano), review.ID)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *SQLiteReviewStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?;`, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

func (s *SQLiteReviewStore) Get(ctx context.Context, id string) (domain.Review, error) {
	const query = `SELECT id, user, comment, created_at, updated_at FROM reviews WHERE id = ?;`
	review, err := scanReview(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Review{}, apperrors.ErrNotFound
		}
		return domain.Review{}, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

func (s *SQLiteReviewStore) List(ctx context.Context) ([]domain.Review, error) {
	// rowid preserves insertion order exactly, which created_at cannot once
	// two adds land inside the same timestamp granule.
	const query = `SELECT id, user, comment, created_at, updated_at FROM reviews ORDER BY rowid DESC;`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reviews []domain.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func (s *SQLiteReviewStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (domain.Review, error) {
	var (
		review             domain.Review
		createdAt, updated string
	)
	if err := row.Scan(&review.ID, &review.User, &review.Comment, &createdAt, &updated); err != nil {
		return domain.Review{}, err
	}
	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return domain.Review{}, fmt.Errorf("parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, updated)
	if err != nil {
		return domain.Review{}, fmt.Errorf("parse updated_at: %w", err)
	}
	review.CreatedAt = created
	review.UpdatedAt = updatedAt
	return review, nil
}
