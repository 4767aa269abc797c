package items

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/joao-fontenele/supplychain/internal/domain"
)

const itemColumns = `id, name, description, sku, category, quantity, min_quantity, price, supplier, location, created_at, updated_at`

// PostgresRepository persists catalog items. Single-row statements are the
// unit of atomicity; no cross-item transactions.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	item := &domain.Item{}

	err := r.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE id = $1
	`, id).Scan(
		&item.ID, &item.Name, &item.Description, &item.SKU, &item.Category,
		&item.Quantity, &item.MinQuantity, &item.Price, &item.Supplier,
		&item.Location, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return item, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]domain.Item, error) {
	return r.queryItems(ctx, `
		SELECT `+itemColumns+`
		FROM items
		ORDER BY name, supplier
	`)
}

func (r *PostgresRepository) Create(ctx context.Context, item *domain.Item) error {
	item.ID = uuid.New().String()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, item.ID, item.Name, item.Description, item.SKU, item.Category,
		item.Quantity, item.MinQuantity, item.Price, item.Supplier,
		item.Location, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrConflict
		}
		return err
	}

	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, item *domain.Item) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE items
		SET name = $2, description = $3, sku = $4, category = $5, quantity = $6,
		    min_quantity = $7, price = $8, supplier = $9, location = $10, updated_at = $11
		WHERE id = $1
	`, item.ID, item.Name, item.Description, item.SKU, item.Category,
		item.Quantity, item.MinQuantity, item.Price, item.Supplier,
		item.Location, item.UpdatedAt)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM items WHERE id = $1
	`, id)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *PostgresRepository) SearchByName(ctx context.Context, name string) ([]domain.Item, error) {
	return r.queryItems(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name, supplier
	`, name)
}

func (r *PostgresRepository) ListBySupplier(ctx context.Context, supplier string) ([]domain.Item, error) {
	return r.queryItems(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE supplier = $1
		ORDER BY name
	`, supplier)
}

func (r *PostgresRepository) ListByQuantityAtMost(ctx context.Context, threshold int) ([]domain.Item, error) {
	return r.queryItems(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE quantity <= $1
		ORDER BY quantity, name
	`, threshold)
}

func (r *PostgresRepository) ListByQuantity(ctx context.Context, quantity int) ([]domain.Item, error) {
	return r.queryItems(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE quantity = $1
		ORDER BY name
	`, quantity)
}

func (r *PostgresRepository) ListLowStock(ctx context.Context) ([]domain.Item, error) {
	return r.queryItems(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE quantity > 0 AND quantity <= min_quantity
		ORDER BY quantity, name
	`)
}

func (r *PostgresRepository) ListByPriceBetween(ctx context.Context, minPrice, maxPrice int64) ([]domain.Item, error) {
	return r.queryItems(ctx, `
		SELECT `+itemColumns+`
		FROM items
		WHERE price BETWEEN $1 AND $2
		ORDER BY price, name
	`, minPrice, maxPrice)
}

func (r *PostgresRepository) ExistsByNameAndSupplier(ctx context.Context, name, supplier string) (bool, error) {
	var exists bool

	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM items WHERE name = $1 AND supplier = $2
		)
	`, name, supplier).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *PostgresRepository) queryItems(ctx context.Context, query string, args ...any) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []domain.Item{}
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.SKU, &item.Category,
			&item.Quantity, &item.MinQuantity, &item.Price, &item.Supplier,
			&item.Location, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
