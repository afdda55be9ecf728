package repository

import (
	"context"
	"database/sql"
	"fmt"

	"delitrack/internal/domain"
)

// MySQLOrderRepository reads the sample dataset from an Orders table. It
// only ever issues SELECTs.
type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, customer, pickupAddress, deliveryAddress, orderDate,
		       amount, status, items, paymentMethod
		FROM Orders
		ORDER BY sortOrder, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		err := rows.Scan(
			&o.ID, &o.Customer, &o.PickupAddress, &o.DeliveryAddress, &o.Date,
			&o.Amount, &o.Status, &o.Items, &o.PaymentMethod,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, nil
}
