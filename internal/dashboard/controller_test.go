package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"delitrack/internal/domain"
	"delitrack/internal/order/repository"
	"delitrack/internal/order/service"
	"delitrack/internal/telemetry"
)

func testOrders() []domain.Order {
	return []domain.Order{
		{ID: "1001", Customer: "John Smith", PickupAddress: "123 Main St", DeliveryAddress: "456 Market St", Date: "2024-03-15", Amount: 42.50, Status: domain.OrderStatusInTransit, Items: 3, PaymentMethod: "Credit Card"},
		{ID: "1002", Customer: "Sarah Johnson", PickupAddress: "789 Howard St", DeliveryAddress: "321 Valencia St", Date: "2024-03-15", Amount: 78.25, Status: domain.OrderStatusPending, Items: 5, PaymentMethod: "PayPal"},
		{ID: "1003", Customer: "Michael Chen", PickupAddress: "555 Mission St", DeliveryAddress: "1600 Stockton St", Date: "2024-03-14", Amount: 125, Status: domain.OrderStatusDelivered, Items: 2, PaymentMethod: "Credit Card"},
	}
}

func fastTelemetry() telemetry.Config {
	cfg := telemetry.DefaultConfig()
	cfg.PositionInterval = 2 * time.Millisecond
	cfg.ProgressInterval = 3 * time.Millisecond
	return cfg
}

func newTestController(t *testing.T, cfg telemetry.Config) (*Controller, *telemetry.Registry) {
	t.Helper()
	repo, err := repository.NewMemoryOrderRepository(testOrders())
	require.NoError(t, err)
	catalog := service.NewCatalogService(repo, zap.NewNop(), nil)
	registry := telemetry.NewRegistry(cfg, zap.NewNop())

	ctrl, err := NewModule(catalog, registry, cfg, zap.NewNop())
	require.NoError(t, err)
	ctrl.now = func() time.Time { return time.Date(2024, 3, 15, 14, 45, 0, 0, time.UTC) }
	return ctrl, registry
}

func testRouter(ctrl *Controller) http.Handler {
	r := chi.NewRouter()
	r.Get("/", ctrl.Landing)
	r.Get("/login", ctrl.LoginForm)
	r.Post("/login", ctrl.Login)
	r.Get("/vendor", ctrl.Vendor)
	r.Get("/delivery", ctrl.Delivery)
	r.Get("/track", ctrl.Track)
	r.Get("/track/{orderId}", ctrl.Track)
	r.Get("/track/{orderId}/stream", ctrl.Stream)
	return r
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func postLogin(t *testing.T, h http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLanding(t *testing.T) {
	ctrl, _ := newTestController(t, fastTelemetry())

	rec := get(t, testRouter(ctrl), "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "Real-time delivery tracking for your business")
	assert.Contains(t, body, `href="/login?role=vendor"`)
	assert.Contains(t, body, `href="/login?role=delivery"`)
}

func TestLoginForm_RoleTabs(t *testing.T) {
	ctrl, _ := newTestController(t, fastTelemetry())
	h := testRouter(ctrl)

	tests := []struct {
		query string
		title string
		role  string
	}{
		{"", "Vendor Login", "vendor"},
		{"?role=vendor", "Vendor Login", "vendor"},
		{"?role=delivery", "Delivery Login", "delivery"},
		{"?role=customer", "Customer Login", "customer"},
		{"?role=admin", "Vendor Login", "vendor"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := get(t, h, "/login"+tt.query)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.title)
			assert.Contains(t, rec.Body.String(), `name="role" value="`+tt.role+`"`)
		})
	}
}

func TestLogin_RedirectsByRole(t *testing.T) {
	ctrl, _ := newTestController(t, fastTelemetry())
	h := testRouter(ctrl)

	tests := []struct {
		role     string
		location string
	}{
		{"vendor", "/vendor"},
		{"delivery", "/delivery"},
		{"customer", "/track"},
		{"", "/vendor"},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			rec := postLogin(t, h, url.Values{
				"role":     {tt.role},
				"email":    {"ana@example.com"},
				"password": {"hunter2"},
			})

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
		})
	}
}

func TestLogin_InvalidFormRerenders(t *testing.T) {
	ctrl, _ := newTestController(t, fastTelemetry())

	rec := postLogin(t, testRouter(ctrl), url.Values{
		"role":  {"delivery"},
		"email": {"not-an-email"},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Delivery Login")
	assert.Contains(t, body, "email must be a valid email address")
	assert.Contains(t, body, "password is required")
	assert.Contains(t, body, `value="not-an-email"`)
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestVendor_StatsAndTable(t *testing.T) {
	ctrl, _ := newTestController(t, fastTelemetry())

	rec := get(t, testRouter(ctrl), "/vendor")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<h2 id="stat-total">3</h2>`)
	assert.Contains(t, body, `<h2 id="stat-pending">1</h2>`)
	assert.Contains(t, body, `<h2 id="stat-in-transit">1</h2>`)
	assert.Contains(t, body, `<h2 id="stat-delivered">1</h2>`)
	assert.Contains(t, body, "$42.50")
	assert.Contains(t, body, "$125.00")
	assert.Contains(t, body, `href="/track/1002"`)
	assert.Contains(t, body, `class="badge tone-amber"`)
}

func TestVendor_SearchAndStatusTab(t *testing.T) {
	ctrl, _ := newTestController(t, fastTelemetry())
	h := testRouter(ctrl)

	rec := get(t, h, "/vendor?q=valencia")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sarah Johnson")
	assert.NotContains(t, rec.Body.String(), "John Smith")
	assert.Contains(t, rec.Body.String(), `href="/vendor?q=valencia&amp;status=pending"`)

	rec = get(t, h, "/vendor?status=delivered")
	assert.Contains(t, rec.Body.String(), "Michael Chen")
	assert.NotContains(t, rec.Body.String(), "Sarah Johnson")

	rec = get(t, h, "/vendor?q=nobody")
	assert.Contains(t, rec.Body.String(), "No orders found")
}

func TestDelivery(t *testing.T) {
	ctrl, _ := newTestController(t, fastTelemetry())
	h := testRouter(ctrl)

	rec := get(t, h, "/delivery")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Order #1001")
	assert.Contains(t, body, "John Delivery")
	assert.Contains(t, body, "Driver #1024")
	assert.Contains(t, body, "75%")
	assert.Contains(t, body, `data-stream="/track/1001/stream"`)
	assert.Contains(t, body, `href="/delivery?online=false"`)

	rec = get(t, h, "/delivery?online=false")
	assert.Contains(t, rec.Body.String(), "Offline")
	assert.NotContains(t, rec.Body.String(), "data-stream")
}

func TestTrack_KnownOrder(t *testing.T) {
	ctrl, _ := newTestController(t, fastTelemetry())

	rec := get(t, testRouter(ctrl), "/track/1002")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Track Order #1002")
	assert.Contains(t, body, "Recipient: Sarah Johnson")
	assert.Contains(t, body, "$78.25")
	assert.Contains(t, body, "Estimated arrival at 15:15")
	assert.Contains(t, body, "ETA: 15 min")
	assert.Contains(t, body, "5.2 km remaining")
	assert.Contains(t, body, `data-stream="/track/1002/stream"`)
}

func TestTrack_UnknownOrderFallsBack(t *testing.T) {
	ctrl, _ := newTestController(t, fastTelemetry())
	h := testRouter(ctrl)

	for _, target := range []string{"/track/9999", "/track"} {
		rec := get(t, h, target)

		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "Track Order #1001", target)
	}
}

type failingCatalog struct{}

func (failingCatalog) Lookup(ctx context.Context, id string) (service.LookupResult, error) {
	return service.LookupResult{}, assert.AnError
}

func (failingCatalog) Default(ctx context.Context) (domain.Order, error) {
	return domain.Order{}, assert.AnError
}

func (failingCatalog) Search(ctx context.Context, query, statusFilter string) ([]domain.Order, error) {
	return nil, assert.AnError
}

func (failingCatalog) Stats(ctx context.Context) (domain.OrderStats, error) {
	return domain.OrderStats{}, assert.AnError
}

func TestCatalogFailuresAnswer500(t *testing.T) {
	views, err := NewViews()
	require.NoError(t, err)
	cfg := fastTelemetry()
	ctrl := NewController(views, failingCatalog{}, telemetry.NewRegistry(cfg, zap.NewNop()), cfg, zap.NewNop())
	h := testRouter(ctrl)

	for _, target := range []string{"/vendor", "/delivery", "/track/1001", "/track/1001/stream"} {
		rec := get(t, h, target)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, target)
	}
}

func TestEstimatedArrival(t *testing.T) {
	now := time.Date(2024, 3, 15, 23, 50, 0, 0, time.UTC)
	assert.Equal(t, "00:20", EstimatedArrival(now))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$42.50", FormatMoney(42.5))
	assert.Equal(t, "$0.00", FormatMoney(0))
	assert.Equal(t, "$1234.57", FormatMoney(1234.567))
}
