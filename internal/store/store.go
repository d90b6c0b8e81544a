package store

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	Username  string
	CreatedAt time.Time
}

// Users is the credential store behind register/login. Passwords are always
// kept as bcrypt hashes, never plaintext.
type Users interface {
	// Register creates the user, failing with ErrUserExists on a duplicate name
	Register(ctx context.Context, username, password string) (User, error)
	// Authenticate verifies the credentials, failing with ErrInvalidCredentials
	// whether the user is missing or the password is wrong
	Authenticate(ctx context.Context, username, password string) (User, error)
	Close()
}

// normUsername trims surrounding whitespace; usernames stay case-sensitive
func normUsername(s string) string { return strings.TrimSpace(s) }
