package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"delitrack/internal/domain"
	"delitrack/internal/dto"
	apperrors "delitrack/internal/errors"
	"delitrack/internal/order/service"
)

type Catalog interface {
	Lookup(ctx context.Context, id string) (service.LookupResult, error)
	Search(ctx context.Context, query, statusFilter string) ([]domain.Order, error)
	Stats(ctx context.Context) (domain.OrderStats, error)
}

type OrdersController struct {
	catalog Catalog
	logger  *zap.Logger
}

func NewOrdersController(catalog Catalog, logger *zap.Logger) *OrdersController {
	return &OrdersController{
		catalog: catalog,
		logger:  logger,
	}
}

// ListOrders serves GET /api/orders?q=&status=.
func (c *OrdersController) ListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	query := r.URL.Query().Get("q")
	status := service.NormalizeStatusFilter(r.URL.Query().Get("status"))

	orders, err := c.catalog.Search(r.Context(), query, status)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	items := make([]dto.OrderDTO, len(orders))
	for i, o := range orders {
		items[i] = dto.NewOrderDTO(o)
	}

	c.writeJSON(w, http.StatusOK, dto.OrderListResponse{
		TraceID:   traceID,
		Query:     query,
		Status:    status,
		Count:     len(items),
		Orders:    items,
		Timestamp: time.Now().UTC(),
	})
}

// GetOrder serves GET /api/orders/{orderId}. Unknown ids answer 200 with the
// default order and fallback set.
func (c *OrdersController) GetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID := chi.URLParam(r, "orderId")

	result, err := c.catalog.Lookup(r.Context(), orderID)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.OrderLookupResponse{
		TraceID:     traceID,
		RequestedID: result.RequestedID,
		Fallback:    result.Fallback,
		Order:       dto.NewOrderDTO(result.Order),
		Timestamp:   time.Now().UTC(),
	})
}

// GetStats serves GET /api/stats.
func (c *OrdersController) GetStats(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	stats, err := c.catalog.Stats(r.Context())
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.StatsResponse{
		TraceID:   traceID,
		Total:     stats.Total,
		Pending:   stats.Pending,
		InTransit: stats.InTransit,
		Delivered: stats.Delivered,
		Cancelled: stats.Cancelled,
		Timestamp: time.Now().UTC(),
	})
}

func (c *OrdersController) handleError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		logger.Warn("validation failed", zap.String("message", ve.Message))
		c.writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{
			TraceID: traceID,
			Error:   dto.ErrorCodeValidation,
			Message: ve.Message,
			Details: ve.Details,
		})
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, dto.ErrorResponse{
			TraceID: traceID,
			Error:   dto.ErrorCodeNotFound,
			Message: nfe.Message,
		})
		return
	}

	logger.Error("order request failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{
		TraceID: traceID,
		Error:   dto.ErrorCodeInternal,
		Message: "an unexpected error occurred",
	})
}

func (c *OrdersController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
