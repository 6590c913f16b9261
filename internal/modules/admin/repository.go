package admin

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("admin not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidInput = errors.New("invalid admin input")
)

// Repository defines admin data storage.
type Repository interface {
	CreateAdmin(ctx context.Context, a *Admin) error
	GetAdminByEmail(ctx context.Context, email string) (*Admin, error)
	GetAdminByID(ctx context.Context, id string) (*Admin, error)
	ListAdmins(ctx context.Context) ([]*Admin, error)
}
