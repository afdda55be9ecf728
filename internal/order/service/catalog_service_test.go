package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"delitrack/internal/domain"
	apperrors "delitrack/internal/errors"
	"delitrack/internal/order/repository"
)

// Mock implementations
type mockOrderRepository struct {
	ListFunc     func(ctx context.Context) ([]domain.Order, error)
	FindByIDFunc func(ctx context.Context, id string) (*domain.Order, error)
	FirstFunc    func(ctx context.Context) (*domain.Order, error)
}

func (m *mockOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	return m.ListFunc(ctx)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderRepository) First(ctx context.Context) (*domain.Order, error) {
	return m.FirstFunc(ctx)
}

type lookupCounter struct {
	hits      int
	fallbacks int
}

func (c *lookupCounter) RecordOrderLookup(fallback bool) {
	if fallback {
		c.fallbacks++
		return
	}
	c.hits++
}

func order(id, customer, address, status string, amount float64) domain.Order {
	return domain.Order{
		ID:              id,
		Customer:        customer,
		PickupAddress:   "1 Depot Rd",
		DeliveryAddress: address,
		Date:            "2024-03-15",
		Amount:          amount,
		Status:          status,
		Items:           1,
		PaymentMethod:   "Credit Card",
	}
}

func newCatalog(t *testing.T, orders ...domain.Order) (*CatalogService, *lookupCounter) {
	t.Helper()
	repo, err := repository.NewMemoryOrderRepository(orders)
	require.NoError(t, err)
	counter := &lookupCounter{}
	return NewCatalogService(repo, zap.NewNop(), counter), counter
}

func sampleCatalog(t *testing.T) (*CatalogService, *lookupCounter) {
	return newCatalog(t,
		order("1001", "John Smith", "456 Market St", domain.OrderStatusInTransit, 42.50),
		order("1002", "Sarah Johnson", "321 Valencia St", domain.OrderStatusPending, 78.25),
		order("1003", "Michael Chen", "1600 Stockton St", domain.OrderStatusDelivered, 125.00),
		order("1004", "Emily Davis", "2200 Lombard St", domain.OrderStatusDelivered, 34.99),
		order("1005", "Robert Wilson", "3500 Geary Blvd", domain.OrderStatusCancelled, 56.40),
		order("2010", "Market Street Deli", "10 Pine St", "Pending", 12.00),
	)
}

// Tests

func TestLookup_SingleOrderScenario(t *testing.T) {
	catalog, counter := newCatalog(t, order("1001", "John Smith", "456 Market St", domain.OrderStatusInTransit, 42.50))

	hit, err := catalog.Lookup(context.Background(), "1001")
	require.NoError(t, err)
	assert.Equal(t, 42.50, hit.Order.Amount)
	assert.False(t, hit.Fallback)

	miss, err := catalog.Lookup(context.Background(), "9999")
	require.NoError(t, err)
	assert.True(t, miss.Fallback)
	assert.Equal(t, "9999", miss.RequestedID)
	assert.Equal(t, hit.Order, miss.Order)

	assert.Equal(t, 1, counter.hits)
	assert.Equal(t, 1, counter.fallbacks)
}

func TestLookup_ReturnsExactRecord(t *testing.T) {
	catalog, _ := sampleCatalog(t)

	for _, id := range []string{"1001", "1003", "1005", "2010"} {
		res, err := catalog.Lookup(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, res.Order.ID)
		assert.False(t, res.Fallback)
	}
}

func TestLookup_MissingIDsFallBackToFirst(t *testing.T) {
	catalog, _ := sampleCatalog(t)

	for _, id := range []string{"", "9999", "ORD-1", " 1001"} {
		res, err := catalog.Lookup(context.Background(), id)
		require.NoError(t, err, id)
		assert.Equal(t, "1001", res.Order.ID, id)
		assert.True(t, res.Fallback, id)
	}
}

func TestLookup_RepositoryFailureIsInternal(t *testing.T) {
	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return nil, errors.New("disk on fire")
		},
	}
	catalog := NewCatalogService(repo, zap.NewNop(), nil)

	_, err := catalog.Lookup(context.Background(), "1001")

	ie, ok := apperrors.IsInternalError(err)
	require.True(t, ok)
	assert.Equal(t, "looking up order", ie.Message)
}

func TestLookup_DefaultRecordFailure(t *testing.T) {
	repo := &mockOrderRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return nil, apperrors.NewNotFoundError("nope")
		},
		FirstFunc: func(ctx context.Context) (*domain.Order, error) {
			return nil, errors.New("empty")
		},
	}
	catalog := NewCatalogService(repo, zap.NewNop(), nil)

	_, err := catalog.Lookup(context.Background(), "1001")

	_, ok := apperrors.IsInternalError(err)
	assert.True(t, ok)
}

func TestDefault(t *testing.T) {
	catalog, counter := sampleCatalog(t)

	o, err := catalog.Default(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1001", o.ID)
	assert.Zero(t, counter.hits+counter.fallbacks)
}

func TestNormalizeStatusFilter(t *testing.T) {
	assert.Equal(t, StatusFilterAll, NormalizeStatusFilter(""))
	assert.Equal(t, StatusFilterAll, NormalizeStatusFilter("all"))
	assert.Equal(t, StatusFilterAll, NormalizeStatusFilter("returned"))
	assert.Equal(t, domain.OrderStatusPending, NormalizeStatusFilter("pending"))
	assert.Equal(t, domain.OrderStatusInTransit, NormalizeStatusFilter("in-transit"))
	assert.Equal(t, domain.OrderStatusInTransit, NormalizeStatusFilter("In_Transit"))
	assert.Equal(t, domain.OrderStatusDelivered, NormalizeStatusFilter("Delivered"))
}

func ids(orders []domain.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestSearch(t *testing.T) {
	catalog, _ := sampleCatalog(t)

	tests := []struct {
		name   string
		query  string
		status string
		want   []string
	}{
		{"empty query matches all", "", "", []string{"1001", "1002", "1003", "1004", "1005", "2010"}},
		{"id substring", "100", "", []string{"1001", "1002", "1003", "1004", "1005"}},
		{"customer ignores case", "SARAH", "", []string{"1002"}},
		{"address ignores case", "VALENCIA st", "", []string{"1002"}},
		{"customer or address", "market", "", []string{"1001", "2010"}},
		{"status tab", "", "delivered", []string{"1003", "1004"}},
		{"status matches any case", "", "pending", []string{"1002", "2010"}},
		{"in-transit tab", "", "in-transit", []string{"1001"}},
		{"query and status", "1", "cancelled", []string{"1005"}},
		{"unknown status means all", "michael", "archived", []string{"1003"}},
		{"no match", "zzz", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := catalog.Search(context.Background(), tt.query, tt.status)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSearch_ListFailure(t *testing.T) {
	repo := &mockOrderRepository{
		ListFunc: func(ctx context.Context) ([]domain.Order, error) {
			return nil, errors.New("boom")
		},
	}
	catalog := NewCatalogService(repo, zap.NewNop(), nil)

	_, err := catalog.Search(context.Background(), "", "")
	assert.Error(t, err)

	_, err = catalog.Stats(context.Background())
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	catalog, _ := sampleCatalog(t)

	stats, err := catalog.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStats{
		Total:     6,
		Pending:   2,
		InTransit: 1,
		Delivered: 2,
		Cancelled: 1,
	}, stats)
}
