package out

import (
	"context"

	"sdu/internal/modules/account/domain"
)

type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Load(ctx context.Context) (domain.Session, error)
	Clear(ctx context.Context) error
}

type AccountAPI interface {
	Login(ctx context.Context, username, password string) (domain.Session, error)
	Signup(ctx context.Context, username, email, password string) error
	Refresh(ctx context.Context, refreshToken string) (domain.Session, error)
	Profile(ctx context.Context) (domain.User, error)
	UpdateProfile(ctx context.Context, username, email, avatar string) (domain.User, error)
	DeleteAccount(ctx context.Context) error
}

type AvatarEncoder interface {
	Encode(ctx context.Context, path string) (string, error)
}
