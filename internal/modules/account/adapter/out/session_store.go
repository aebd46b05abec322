package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sdu/internal/modules/account/domain"
	accountout "sdu/internal/modules/account/port/out"
	apperrors "sdu/internal/platform/errors"
)

type FileSessionStore struct {
	path string
}

var _ accountout.SessionStore = (*FileSessionStore)(nil)

func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

func (s *FileSessionStore) Save(_ context.Context, session domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load returns the stored token pair. A corrupt or incomplete file is
// removed and reported as no session, so a bad write never wedges startup.
func (s *FileSessionStore) Load(ctx context.Context) (domain.Session, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Session{}, apperrors.ErrNoSession
		}
		return domain.Session{}, fmt.Errorf("read session: %w", err)
	}
	session := domain.Session{}
	if err := json.Unmarshal(payload, &session); err != nil || !session.Valid() {
		if clearErr := s.Clear(ctx); clearErr != nil {
			return domain.Session{}, clearErr
		}
		return domain.Session{}, apperrors.ErrNoSession
	}
	return session, nil
}

func (s *FileSessionStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// AccessToken lets the store double as the REST client's token source.
// It swallows errors: an unreadable session simply means no bearer header.
func (s *FileSessionStore) AccessToken(ctx context.Context) string {
	session, err := s.Load(ctx)
	if err != nil {
		return ""
	}
	return session.AccessToken
}
