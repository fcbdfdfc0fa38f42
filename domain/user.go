package domain

import (
	"regexp"
	"strings"
	"time"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
	// bcrypt ignores everything past this
	MaxPasswordBytes = 72
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicUser is the outbound shape of a user.
type PublicUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail is a structural check only.
func ValidEmail(email string) bool {
	return emailRegexp.MatchString(strings.TrimSpace(email))
}
