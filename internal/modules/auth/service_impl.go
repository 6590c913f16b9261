package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/georgemunganga/kuber-inventory/internal/modules/admin"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	admins admin.Repository
	key    []byte
	ttl    time.Duration
}

// NewService creates a new auth service signing HS256 tokens with key.
func NewService(admins admin.Repository, key []byte, ttl time.Duration) Service {
	return &service{admins: admins, key: key, ttl: ttl}
}

func (s *service) Login(ctx context.Context, email, password string) (string, *admin.Admin, error) {
	a, err := s.admins.GetAdminByEmail(ctx, email)
	if errors.Is(err, admin.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := &jwt.StandardClaims{
		Subject:   a.ID.String(),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.key)
	if err != nil {
		return "", nil, err
	}

	return tokenString, a, nil
}

func (s *service) Authenticate(ctx context.Context, tokenString string) (*admin.Admin, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	a, err := s.admins.GetAdminByID(ctx, claims.Subject)
	if errors.Is(err, admin.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	return a, err
}
