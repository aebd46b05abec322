package service

import (
	"context"
	"strings"
	"time"

	"sdu/internal/modules/account/domain"
	"sdu/internal/platform/clock"
	apperrors "sdu/internal/platform/errors"
)

// RefreshWindow is how close to expiry the access token may get before a
// refresh is issued ahead of the next authorized request.
const RefreshWindow = 30 * time.Second

type AccountService struct {
	clock clock.Clock
}

func NewAccountService(clock clock.Clock) *AccountService {
	return &AccountService{clock: clock}
}

func (s *AccountService) ValidateCredentials(_ context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return apperrors.ErrInvalidInput
	}
	return nil
}

func (s *AccountService) ValidateSignup(ctx context.Context, username, email, password string) error {
	if err := s.ValidateCredentials(ctx, username, password); err != nil {
		return err
	}
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return apperrors.ErrInvalidInput
	}
	return nil
}

func (s *AccountService) NeedsRefresh(session domain.Session) bool {
	return session.AccessExpiresWithin(s.clock.Now(), RefreshWindow)
}
