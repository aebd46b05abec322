package dto

import "time"

type AddInput struct {
	Username string
	Comment  string
}

type EditInput struct {
	Username string
	ReviewID string
	Comment  string
}

type DeleteInput struct {
	Username string
	ReviewID string
}

type ReviewOutput struct {
	ID        string
	User      string
	Comment   string
	CreatedAt time.Time
	Own       bool
}
