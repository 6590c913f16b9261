package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgemunganga/kuber-inventory/internal/modules/activity"
	"github.com/georgemunganga/kuber-inventory/internal/postgres"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const skuConstraint = "products_sku_key"

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	productColumns = []string{
		"id", "sku", "name", "description", "price", "quantity", "category",
		"low_stock_threshold", "images", "version", "created_at", "updated_at",
	}
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	var images []string
	err := scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.Category,
		&p.LowStockThreshold, pq.Array(&images), &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Images = images
	if p.Images == nil {
		p.Images = []string{}
	}
	return p, nil
}

// Create inserts the product and its "created" entry inside a single transaction.
func (r *postgresRepo) Create(ctx context.Context, p *Product, entry *activity.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products
		  (id, sku, name, description, price, quantity, category,
		   low_stock_threshold, images, version, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		p.ID, p.SKU, p.Name, p.Description, p.Price, p.Quantity, p.Category,
		p.LowStockThreshold, pq.Array(p.Images), p.Version, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err, skuConstraint) {
			return ErrDuplicateSKU
		}
		return fmt.Errorf("insert product: %w", err)
	}
	if err := activity.Insert(ctx, tx, entry); err != nil {
		return err
	}
	return tx.Commit()
}

// lockProduct reads the current row and holds its lock until tx ends.
func lockProduct(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*Product, error) {
	query, args, err := psql.Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, err
	}
	p, err := scanProduct(tx.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *postgresRepo) Update(ctx context.Context, id uuid.UUID, apply ApplyFunc) (*Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	current, err := lockProduct(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	next, entry, err := apply(current)
	if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET sku=$1, name=$2, description=$3, price=$4, quantity=$5, category=$6,
		    low_stock_threshold=$7, images=$8, version=$9, updated_at=$10
		WHERE id=$11 AND version=$12`,
		next.SKU, next.Name, next.Description, next.Price, next.Quantity, next.Category,
		next.LowStockThreshold, pq.Array(next.Images), next.Version, next.UpdatedAt,
		id, current.Version)
	if err != nil {
		if postgres.IsUniqueViolation(err, skuConstraint) {
			return nil, ErrDuplicateSKU
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n != 1 {
		return nil, ErrConflict
	}
	if err := activity.Insert(ctx, tx, entry); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return next, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID, entryFor EntryFunc) (*Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	current, err := lockProduct(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, id); err != nil {
		return nil, fmt.Errorf("delete product: %w", err)
	}
	if err := activity.Insert(ctx, tx, entryFor(current)); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return current, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	query, args, err := psql.Select(productColumns...).From("products").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// listQuery turns a Filter into SQL.
func listQuery(f Filter) sq.SelectBuilder {
	q := psql.Select(productColumns...).From("products")
	if f.Category != "" {
		q = q.Where(sq.Eq{"category": f.Category})
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		q = q.Where(sq.Or{sq.ILike{"name": pattern}, sq.ILike{"sku": pattern}})
	}
	if f.LowStockOnly {
		q = q.Where("quantity <= low_stock_threshold")
	}
	return q.OrderBy("created_at", "id")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

func (r *postgresRepo) List(ctx context.Context, f Filter) ([]*Product, error) {
	query, args, err := listQuery(f).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM products GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		counts[name] = n
	}
	return counts, rows.Err()
}
