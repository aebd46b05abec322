package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	accountout "sdu/internal/modules/account/adapter/out"
	"sdu/internal/modules/account/domain"
	apperrors "sdu/internal/platform/errors"
)

func TestFileSessionStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state", "session.json")
	store := accountout.NewFileSessionStore(path)

	session := domain.Session{AccessToken: "a1", RefreshToken: "r1"}
	if err := store.Save(context.Background(), session); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded != session {
		t.Fatalf("loaded = %+v, want %+v", loaded, session)
	}

	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := store.Load(context.Background()); !errors.Is(err, apperrors.ErrNoSession) {
		t.Fatalf("Load() after clear = %v, want ErrNoSession", err)
	}
}

func TestFileSessionStoreRemovesCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	store := accountout.NewFileSessionStore(path)

	if _, err := store.Load(context.Background()); !errors.Is(err, apperrors.ErrNoSession) {
		t.Fatalf("Load() = %v, want ErrNoSession", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("corrupt session file must be removed")
	}
}

func TestFileSessionStoreTreatsIncompletePairAsAbsent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"access":"a1"}`), 0o600); err != nil {
		t.Fatalf("write partial file: %v", err)
	}
	store := accountout.NewFileSessionStore(path)

	if _, err := store.Load(context.Background()); !errors.Is(err, apperrors.ErrNoSession) {
		t.Fatalf("Load() = %v, want ErrNoSession", err)
	}
}

func TestAccessTokenEmptyWithoutSession(t *testing.T) {
	t.Parallel()

	store := accountout.NewFileSessionStore(filepath.Join(t.TempDir(), "session.json"))
	if got := store.AccessToken(context.Background()); got != "" {
		t.Fatalf("AccessToken() = %q, want empty", got)
	}
}
