package repository

import (
	"context"
	"fmt"

	"delitrack/internal/domain"
	apperrors "delitrack/internal/errors"
	"delitrack/internal/infrastructure/validation"
)

// MemoryOrderRepository serves an immutable, ordered order dataset. It is
// safe for concurrent reads.
type MemoryOrderRepository struct {
	orders []domain.Order
	index  map[string]int
}

// NewMemoryOrderRepository validates orders and builds the id index. The
// dataset must be non-empty with unique ids.
func NewMemoryOrderRepository(orders []domain.Order) (*MemoryOrderRepository, error) {
	if len(orders) == 0 {
		return nil, apperrors.NewValidationError("order dataset is empty")
	}

	v := validation.New()
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		if err := validation.Struct(v, o, fmt.Sprintf("invalid order at position %d", i)); err != nil {
			return nil, err
		}
		if prev, dup := index[o.ID]; dup {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("duplicate order id %q", o.ID),
				apperrors.ValidationDetail{
					Field:   "id",
					Message: fmt.Sprintf("order id %q appears at positions %d and %d", o.ID, prev, i),
				},
			)
		}
		index[o.ID] = i
	}

	copied := make([]domain.Order, len(orders))
	copy(copied, orders)

	return &MemoryOrderRepository{orders: copied, index: index}, nil
}

func (r *MemoryOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *MemoryOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %q not found", id))
	}
	order := r.orders[i]
	return &order, nil
}

// First returns the default record.
func (r *MemoryOrderRepository) First(ctx context.Context) (*domain.Order, error) {
	order := r.orders[0]
	return &order, nil
}
