package activity

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresReader struct{ db *sql.DB }

func NewPostgresReader(db *sql.DB) Reader { return &postgresReader{db: db} }

// Insert writes e inside the caller's transaction. The mutation and its entry
// commit or roll back together.
func Insert(ctx context.Context, tx *sql.Tx, e *Entry) error {
	err := tx.QueryRowContext(ctx, `
		INSERT INTO activity_logs
		  (id, product_id, product_name, action, quantity_change, admin_id, admin_email, timestamp)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING seq`,
		e.ID, e.ProductID, e.ProductName, e.Action, e.QuantityChange,
		e.AdminID, e.AdminEmail, e.Timestamp).Scan(&e.Seq)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

func (r *postgresReader) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	limit, err := NormalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	query, args, err := psql.
		Select("seq", "id", "product_id", "product_name", "action", "quantity_change",
			"admin_id", "admin_email", "timestamp").
		From("activity_logs").
		OrderBy("timestamp DESC", "seq DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.Seq, &e.ID, &e.ProductID, &e.ProductName, &e.Action,
			&e.QuantityChange, &e.AdminID, &e.AdminEmail, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
