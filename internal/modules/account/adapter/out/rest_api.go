package out

import (
	"context"
	"encoding/json"
	"time"

	"sdu/internal/modules/account/domain"
	accountout "sdu/internal/modules/account/port/out"
	"sdu/internal/platform/rest"
)

type RESTAccountAPI struct {
	client *rest.Client
}

var _ accountout.AccountAPI = (*RESTAccountAPI)(nil)

func NewRESTAccountAPI(client *rest.Client) *RESTAccountAPI {
	return &RESTAccountAPI{client: client}
}

type tokenPairPayload struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type userPayload struct {
	ID         json.Number `json:"id"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	Avatar     string      `json:"avatar"`
	JoinedDate string      `json:"joined_date"`
}

func (p userPayload) toDomain() domain.User {
	user := domain.User{
		ID:       p.ID.String(),
		Username: p.Username,
		Email:    p.Email,
		Avatar:   p.Avatar,
	}
	// joined_date is informational; a malformed value leaves it zero.
	if joined, err := time.Parse(time.RFC3339, p.JoinedDate); err == nil {
		user.JoinedDate = joined
	}
	return user
}

func (a *RESTAccountAPI) Login(ctx context.Context, username, password string) (domain.Session, error) {
	in := map[string]string{"username": username, "password": password}
	var out tokenPairPayload
	if err := a.client.Post(ctx, "/users/login/", in, &out); err != nil {
		return domain.Session{}, err
	}
	return domain.Session{AccessToken: out.Access, RefreshToken: out.Refresh}, nil
}

func (a *RESTAccountAPI) Signup(ctx context.Context, username, email, password string) error {
	in := map[string]string{"username": username, "email": email, "password": password}
	return a.client.Post(ctx, "/users/signup/", in, nil)
}

func (a *RESTAccountAPI) Refresh(ctx context.Context, refreshToken string) (domain.Session, error) {
	in := map[string]string{"refresh": refreshToken}
	var out tokenPairPayload
	if err := a.client.Post(ctx, "/users/refresh/", in, &out); err != nil {
		return domain.Session{}, err
	}
	return domain.Session{AccessToken: out.Access, RefreshToken: out.Refresh}, nil
}

func (a *RESTAccountAPI) Profile(ctx context.Context) (domain.User, error) {
	var out userPayload
	if err := a.client.Get(ctx, "/users/profile/", &out); err != nil {
		return domain.User{}, err
	}
	return out.toDomain(), nil
}

func (a *RESTAccountAPI) UpdateProfile(ctx context.Context, username, email, avatar string) (domain.User, error) {
	in := map[string]string{}
	if username != "" {
		in["username"] = username
	}
	if email != "" {
		in["email"] = email
	}
	if avatar != "" {
		in["avatar"] = avatar
	}
	var out userPayload
	if err := a.client.Put(ctx, "/users/profile/update/", in, &out); err != nil {
		return domain.User{}, err
	}
	return out.toDomain(), nil
}

func (a *RESTAccountAPI) DeleteAccount(ctx context.Context) error {
	return a.client.Delete(ctx, "/users/profile/delete/")
}
