package domain

import (
	"strings"
	"time"

	apperrors "sdu/internal/platform/errors"
)

// Review is a user-authored note on the machine's diagnostic results.
type Review struct {
	ID        string
	User      string
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeComment trims the comment and rejects blank input.
func NormalizeComment(raw string) (string, error) {
	comment := strings.TrimSpace(raw)
	if comment == "" {
		return "", apperrors.ErrInvalidInput
	}
	return comment, nil
}

// OwnedBy reports whether username may edit or delete this review.
func (r Review) OwnedBy(username string) bool {
	return username != "" && r.User == username
}
