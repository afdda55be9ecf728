package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"delitrack/internal/domain"
	apperrors "delitrack/internal/errors"
)

type OrderRepository interface {
	List(ctx context.Context) ([]domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	First(ctx context.Context) (*domain.Order, error)
}

type LookupRecorder interface {
	RecordOrderLookup(fallback bool)
}

type LookupResult struct {
	RequestedID string
	Order       domain.Order
	Fallback    bool
}

// StatusFilterAll disables status filtering.
const StatusFilterAll = "all"

type CatalogService struct {
	repo     OrderRepository
	logger   *zap.Logger
	recorder LookupRecorder
}

func NewCatalogService(repo OrderRepository, logger *zap.Logger, recorder LookupRecorder) *CatalogService {
	return &CatalogService{
		repo:     repo,
		logger:   logger,
		recorder: recorder,
	}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

// Lookup returns the order with id. An unknown id is not an error: the first
// order of the dataset is returned instead and Fallback is set.
func (s *CatalogService) Lookup(ctx context.Context, id string) (LookupResult, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err == nil {
		s.record(false)
		return LookupResult{RequestedID: id, Order: *order}, nil
	}
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		return LookupResult{}, apperrors.NewInternalError("looking up order", err)
	}

	first, err := s.repo.First(ctx)
	if err != nil {
		return LookupResult{}, apperrors.NewInternalError("loading default order", err)
	}

	s.logger.Debug("order not found, using default",
		zap.String("requestedId", id),
		zap.String("orderId", first.ID),
	)
	s.record(true)
	return LookupResult{RequestedID: id, Order: *first, Fallback: true}, nil
}

// Default returns the first order of the dataset.
func (s *CatalogService) Default(ctx context.Context) (domain.Order, error) {
	first, err := s.repo.First(ctx)
	if err != nil {
		return domain.Order{}, apperrors.NewInternalError("loading default order", err)
	}
	return *first, nil
}

func (s *CatalogService) record(fallback bool) {
	if s.recorder != nil {
		s.recorder.RecordOrderLookup(fallback)
	}
}

// NormalizeStatusFilter maps a tab value such as "in-transit" to an order
// status. Empty, "all" and unknown values disable filtering.
func NormalizeStatusFilter(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.ReplaceAll(v, "-", " ")
	v = strings.ReplaceAll(v, "_", " ")
	if domain.IsKnownOrderStatus(v) {
		return v
	}
	return StatusFilterAll
}

// Search matches query against the order id, customer name and delivery
// address, then applies the status filter. An empty query matches everything.
func (s *CatalogService) Search(ctx context.Context, query, statusFilter string) ([]domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("listing orders", err)
	}

	status := NormalizeStatusFilter(statusFilter)
	query = strings.TrimSpace(query)
	lowered := strings.ToLower(query)

	matched := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if status != StatusFilterAll && !o.HasStatus(status) {
			continue
		}
		if query != "" &&
			!strings.Contains(o.ID, query) &&
			!strings.Contains(strings.ToLower(o.Customer), lowered) &&
			!strings.Contains(strings.ToLower(o.DeliveryAddress), lowered) {
			continue
		}
		matched = append(matched, o)
	}

	return matched, nil
}

func (s *CatalogService) Stats(ctx context.Context) (domain.OrderStats, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return domain.OrderStats{}, apperrors.NewInternalError("listing orders", err)
	}

	stats := domain.OrderStats{Total: len(orders)}
	for _, o := range orders {
		switch strings.ToLower(o.Status) {
		case domain.OrderStatusPending:
			stats.Pending++
		case domain.OrderStatusInTransit:
			stats.InTransit++
		case domain.OrderStatusDelivered:
			stats.Delivered++
		case domain.OrderStatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}
