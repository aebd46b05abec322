package in

import (
	"context"

	"sdu/internal/modules/account/dto"
)

type Usecase interface {
	Login(ctx context.Context, input dto.LoginInput) (dto.UserOutput, error)
	Signup(ctx context.Context, input dto.SignupInput) error
	Restore(ctx context.Context) (dto.UserOutput, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (dto.UserOutput, error)
	UpdateProfile(ctx context.Context, input dto.UpdateProfileInput) (dto.UserOutput, error)
	DeleteAccount(ctx context.Context) error
	EnsureFresh(ctx context.Context) error
}
