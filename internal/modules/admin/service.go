package admin

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service defines admin account business logic.
type Service interface {
	RegisterAdmin(ctx context.Context, req RegisterRequest) (*Admin, error)
	GetAdmin(ctx context.Context, id string) (*Admin, error)
	ListAdmins(ctx context.Context) ([]*Admin, error)
}

// RegisterRequest holds the data for a new admin account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

const minPasswordLength = 6

type service struct {
	repo Repository
}

// NewService creates a new admin service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RegisterAdmin(ctx context.Context, req RegisterRequest) (*Admin, error) {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "admin"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	a := &Admin{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Name:         req.Name,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateAdmin(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) GetAdmin(ctx context.Context, id string) (*Admin, error) {
	return s.repo.GetAdminByID(ctx, id)
}

func (s *service) ListAdmins(ctx context.Context) ([]*Admin, error) {
	return s.repo.ListAdmins(ctx)
}
