package dto

import "time"

type LoginInput struct {
	Username string
	Password string
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

type UpdateProfileInput struct {
	Username   string
	Email      string
	AvatarPath string
}

type UserOutput struct {
	ID         string
	Username   string
	Email      string
	Avatar     string
	JoinedDate time.Time
}
