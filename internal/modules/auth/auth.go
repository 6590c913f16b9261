package auth

import (
	"context"
	"errors"

	"github.com/georgemunganga/kuber-inventory/internal/modules/admin"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Login checks the password and returns a signed token for the admin.
	Login(ctx context.Context, email, password string) (string, *admin.Admin, error)
	// Authenticate verifies a token and loads the admin it was issued to.
	Authenticate(ctx context.Context, token string) (*admin.Admin, error)
}
