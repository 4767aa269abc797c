package orders

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/joao-fontenele/supplychain/internal/domain"
)

// PostgresRepository persists orders together with their line-item
// snapshots. Line items carry copied name/price/sku values and have no
// reference back to the live catalog.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	order.ID = uuid.New().String()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_name, customer_email, customer_phone, total_amount,
			status, payment_status, order_date, expected_delivery, shipping_address, payment_method, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, order.ID, order.CustomerName, order.CustomerEmail, order.CustomerPhone, order.TotalAmount,
		order.Status, order.PaymentStatus, order.OrderDate, nullTime(order.ExpectedDelivery),
		order.ShippingAddress, order.PaymentMethod, order.Notes)
	if err != nil {
		return err
	}

	if err := insertLines(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}

	return tx.Commit()
}

// Update replaces all order fields except id and order_date, and rewrites
// the line-item snapshot.
func (r *PostgresRepository) Update(ctx context.Context, order *domain.Order) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET customer_name = $2, customer_email = $3, customer_phone = $4, total_amount = $5,
		    status = $6, payment_status = $7, expected_delivery = $8, shipping_address = $9,
		    payment_method = $10, notes = $11
		WHERE id = $1
	`, order.ID, order.CustomerName, order.CustomerEmail, order.CustomerPhone, order.TotalAmount,
		order.Status, order.PaymentStatus, nullTime(order.ExpectedDelivery),
		order.ShippingAddress, order.PaymentMethod, order.Notes)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if rowsAffected == 0 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_lines WHERE order_id = $1`, order.ID); err != nil {
		return false, err
	}
	if err := insertLines(ctx, tx, order.ID, order.Items); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order := &domain.Order{}
	var expectedDelivery sql.NullTime

	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_name, customer_email, customer_phone, total_amount,
			status, payment_status, order_date, expected_delivery, shipping_address, payment_method, notes
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.CustomerName, &order.CustomerEmail, &order.CustomerPhone,
		&order.TotalAmount, &order.Status, &order.PaymentStatus, &order.OrderDate,
		&expectedDelivery, &order.ShippingAddress, &order.PaymentMethod, &order.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	order.ExpectedDelivery = expectedDelivery.Time

	rows, err := r.db.QueryContext(ctx, `
		SELECT name, quantity, price, sku
		FROM order_lines
		WHERE order_id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	order.Items = []domain.OrderLine{}
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.Name, &line.Quantity, &line.Price, &line.SKU); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_name, customer_email, customer_phone, total_amount,
			status, payment_status, order_date, expected_delivery, shipping_address, payment_method, notes
		FROM orders
		ORDER BY order_date DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	orderMap := make(map[string]*domain.Order)
	var orderIDs []string

	for rows.Next() {
		var order domain.Order
		var expectedDelivery sql.NullTime
		if err := rows.Scan(&order.ID, &order.CustomerName, &order.CustomerEmail, &order.CustomerPhone,
			&order.TotalAmount, &order.Status, &order.PaymentStatus, &order.OrderDate,
			&expectedDelivery, &order.ShippingAddress, &order.PaymentMethod, &order.Notes); err != nil {
			return nil, err
		}
		order.ExpectedDelivery = expectedDelivery.Time
		order.Items = []domain.OrderLine{}
		orderMap[order.ID] = &order
		orderIDs = append(orderIDs, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orderIDs) == 0 {
		return []domain.Order{}, nil
	}

	lineRows, err := r.db.QueryContext(ctx, `
		SELECT order_id, name, quantity, price, sku
		FROM order_lines
		WHERE order_id = ANY($1)
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer func() { _ = lineRows.Close() }()

	for lineRows.Next() {
		var orderID string
		var line domain.OrderLine
		if err := lineRows.Scan(&orderID, &line.Name, &line.Quantity, &line.Price, &line.SKU); err != nil {
			return nil, err
		}
		order := orderMap[orderID]
		order.Items = append(order.Items, line)
	}

	if err := lineRows.Err(); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		orders = append(orders, *orderMap[id])
	}

	return orders, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM orders WHERE id = $1
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

func (r *PostgresRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders WHERE status = $1
	`, status).Scan(&count)
	return count, err
}

func (r *PostgresRepository) CountByPaymentStatus(ctx context.Context, paymentStatus string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM orders WHERE payment_status = $1
	`, paymentStatus).Scan(&count)
	return count, err
}

func insertLines(ctx context.Context, tx *sql.Tx, orderID string, lines []domain.OrderLine) error {
	for _, line := range lines {
		lineID := uuid.New().String()
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_lines (id, order_id, name, quantity, price, sku)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, lineID, orderID, line.Name, line.Quantity, line.Price, line.SKU)
		if err != nil {
			return err
		}
	}
	return nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
