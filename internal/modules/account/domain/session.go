package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const SchemaVersion = 1

// Session holds the token pair issued at login. Tokens are opaque to every
// consumer except AccessExpiresWithin, which only reads the exp claim.
type Session struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

type User struct {
	ID         string
	Username   string
	Email      string
	Avatar     string
	JoinedDate time.Time
}

func (s Session) Valid() bool {
	return s.AccessToken != "" && s.RefreshToken != ""
}

// AccessExpiresWithin reports whether the access token expires inside the
// given window. The claim is read without signature verification; only the
// backend validates tokens. An unreadable token counts as expired.
func (s Session) AccessExpiresWithin(now time.Time, window time.Duration) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.Time.After(now.Add(window))
}
