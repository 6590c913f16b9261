package admin

import (
	"context"
	"database/sql"
	"errors"

	"github.com/georgemunganga/kuber-inventory/internal/postgres"
	"github.com/google/uuid"
)

type postgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new PostgreSQL admin repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateAdmin(ctx context.Context, a *Admin) error {
	query := `
		INSERT INTO admins (id, email, password_hash, name, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.Email, a.PasswordHash, a.Name, a.Role, a.CreatedAt)
	if postgres.IsUniqueViolation(err, "admins_email_key") {
		return ErrEmailTaken
	}
	return err
}

func (r *postgresRepository) getOne(ctx context.Context, where string, arg interface{}) (*Admin, error) {
	a := &Admin{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, name, role, created_at
		FROM admins
		WHERE `+where+` = $1`, arg).Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.Name,
		&a.Role,
		&a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *postgresRepository) GetAdminByEmail(ctx context.Context, email string) (*Admin, error) {
	return r.getOne(ctx, "email", email)
}

func (r *postgresRepository) GetAdminByID(ctx context.Context, id string) (*Admin, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.getOne(ctx, "id", parsedID)
}

func (r *postgresRepository) ListAdmins(ctx context.Context) ([]*Admin, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, password_hash, name, role, created_at
		FROM admins ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	admins := []*Admin{}
	for rows.Next() {
		a := &Admin{}
		if err := rows.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Role, &a.CreatedAt); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}
