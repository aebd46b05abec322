package usecase

import (
	"context"
	"fmt"
	"strings"

	"sdu/internal/modules/account/domain"
	accountdto "sdu/internal/modules/account/dto"
	accountin "sdu/internal/modules/account/port/in"
	accountout "sdu/internal/modules/account/port/out"
	"sdu/internal/modules/account/service"
)

type Interactor struct {
	svc     *service.AccountService
	api     accountout.AccountAPI
	store   accountout.SessionStore
	avatars accountout.AvatarEncoder
}

func NewInteractor(svc *service.AccountService, api accountout.AccountAPI, store accountout.SessionStore, avatars accountout.AvatarEncoder) accountin.Usecase {
	return &Interactor{svc: svc, api: api, store: store, avatars: avatars}
}

func (i *Interactor) Login(ctx context.Context, input accountdto.LoginInput) (accountdto.UserOutput, error) {
	if err := i.svc.ValidateCredentials(ctx, input.Username, input.Password); err != nil {
		return accountdto.UserOutput{}, err
	}
	session, err := i.api.Login(ctx, strings.TrimSpace(input.Username), input.Password)
	if err != nil {
		return accountdto.UserOutput{}, err
	}
	if err := i.store.Save(ctx, session); err != nil {
		return accountdto.UserOutput{}, err
	}
	user, err := i.api.Profile(ctx)
	if err != nil {
		return accountdto.UserOutput{}, err
	}
	return userOutput(user), nil
}

// Signup registers the account but does not sign the user in; the caller is
// expected to log in afterwards.
func (i *Interactor) Signup(ctx context.Context, input accountdto.SignupInput) error {
	if err := i.svc.ValidateSignup(ctx, input.Username, input.Email, input.Password); err != nil {
		return err
	}
	return i.api.Signup(ctx, strings.TrimSpace(input.Username), strings.TrimSpace(input.Email), input.Password)
}

// Restore resumes a persisted session. A failed profile fetch invalidates the
// stored tokens, so the session file is cleared before the error is returned.
func (i *Interactor) Restore(ctx context.Context) (accountdto.UserOutput, error) {
	if _, err := i.store.Load(ctx); err != nil {
		return accountdto.UserOutput{}, err
	}
	user, err := i.api.Profile(ctx)
	if err != nil {
		if clearErr := i.store.Clear(ctx); clearErr != nil {
			return accountdto.UserOutput{}, fmt.Errorf("clear stale session: %w", clearErr)
		}
		return accountdto.UserOutput{}, err
	}
	return userOutput(user), nil
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.store.Clear(ctx)
}

func (i *Interactor) Profile(ctx context.Context) (accountdto.UserOutput, error) {
	user, err := i.api.Profile(ctx)
	if err != nil {
		return accountdto.UserOutput{}, err
	}
	return userOutput(user), nil
}

func (i *Interactor) UpdateProfile(ctx context.Context, input accountdto.UpdateProfileInput) (accountdto.UserOutput, error) {
	avatar := ""
	if input.AvatarPath != "" {
		if i.avatars == nil {
			return accountdto.UserOutput{}, fmt.Errorf("avatar encoder is not configured")
		}
		encoded, err := i.avatars.Encode(ctx, input.AvatarPath)
		if err != nil {
			return accountdto.UserOutput{}, err
		}
		avatar = encoded
	}
	user, err := i.api.UpdateProfile(ctx, strings.TrimSpace(input.Username), strings.TrimSpace(input.Email), avatar)
	if err != nil {
		return accountdto.UserOutput{}, err
	}
	return userOutput(user), nil
}

func (i *Interactor) DeleteAccount(ctx context.Context) error {
	if err := i.api.DeleteAccount(ctx); err != nil {
		return err
	}
	return i.store.Clear(ctx)
}

// EnsureFresh refreshes the access token when it is about to expire. Callers
// invoke it before authorized requests; it never retries a failed refresh.
func (i *Interactor) EnsureFresh(ctx context.Context) error {
	session, err := i.store.Load(ctx)
	if err != nil {
		return err
	}
	if !i.svc.NeedsRefresh(session) {
		return nil
	}
	refreshed, err := i.api.Refresh(ctx, session.RefreshToken)
	if err != nil {
		return err
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = session.RefreshToken
	}
	return i.store.Save(ctx, refreshed)
}

func userOutput(user domain.User) accountdto.UserOutput {
	return accountdto.UserOutput{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Avatar:     user.Avatar,
		JoinedDate: user.JoinedDate,
	}
}
