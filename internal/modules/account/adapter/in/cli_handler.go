package in

import (
	"context"

	accountdto "sdu/internal/modules/account/dto"
	accountin "sdu/internal/modules/account/port/in"
)

type CLIHandler struct {
	usecase accountin.Usecase
}

func NewCLIHandler(usecase accountin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, username, password string) (accountdto.UserOutput, error) {
	return h.usecase.Login(ctx, accountdto.LoginInput{Username: username, Password: password})
}

func (h CLIHandler) Signup(ctx context.Context, username, email, password string) error {
	return h.usecase.Signup(ctx, accountdto.SignupInput{Username: username, Email: email, Password: password})
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) Whoami(ctx context.Context) (accountdto.UserOutput, error) {
	return h.usecase.Restore(ctx)
}

func (h CLIHandler) UpdateProfile(ctx context.Context, username, email, avatarPath string) (accountdto.UserOutput, error) {
	return h.usecase.UpdateProfile(ctx, accountdto.UpdateProfileInput{Username: username, Email: email, AvatarPath: avatarPath})
}

func (h CLIHandler) DeleteAccount(ctx context.Context) error {
	return h.usecase.DeleteAccount(ctx)
}
