package dashboard

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"delitrack/internal/domain"
	apperrors "delitrack/internal/errors"
	"delitrack/internal/infrastructure/validation"
	"delitrack/internal/order/service"
	"delitrack/internal/telemetry"
)

type Catalog interface {
	Lookup(ctx context.Context, id string) (service.LookupResult, error)
	Default(ctx context.Context) (domain.Order, error)
	Search(ctx context.Context, query, statusFilter string) ([]domain.Order, error)
	Stats(ctx context.Context) (domain.OrderStats, error)
}

type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type Controller struct {
	views     *Views
	catalog   Catalog
	sessions  *telemetry.Registry
	telemetry telemetry.Config
	validate  *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

func NewController(views *Views, catalog Catalog, sessions *telemetry.Registry, cfg telemetry.Config, logger *zap.Logger) *Controller {
	return &Controller{
		views:     views,
		catalog:   catalog,
		sessions:  sessions,
		telemetry: cfg,
		validate:  validation.New(),
		logger:    logger,
		now:       time.Now,
	}
}

func (c *Controller) Landing(w http.ResponseWriter, r *http.Request) {
	c.render(w, http.StatusOK, pageLanding, landingPage())
}

func (c *Controller) LoginForm(w http.ResponseWriter, r *http.Request) {
	role := domain.ParseRole(r.URL.Query().Get("role"))
	c.render(w, http.StatusOK, pageLogin, loginPage(role))
}

// Login accepts any well-formed credentials and redirects to the role's
// dashboard. Nothing is authenticated.
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		page := loginPage(domain.RoleVendor)
		page.Message = "the login form could not be read"
		c.render(w, http.StatusBadRequest, pageLogin, page)
		return
	}

	role := domain.ParseRole(r.PostForm.Get("role"))
	form := LoginForm{
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
	}

	if err := validation.Struct(c.validate, form, "invalid credentials"); err != nil {
		page := loginPage(role)
		page.Email = form.Email
		if ve, ok := apperrors.IsValidationError(err); ok {
			page.Message = "Please correct the highlighted fields."
			page.EmailError = ve.FieldMessage("email")
			page.PasswordError = ve.FieldMessage("password")
		} else {
			c.logger.Error("validating login form", zap.Error(err))
			page.Message = "Something went wrong, please try again."
		}
		c.render(w, http.StatusBadRequest, pageLogin, page)
		return
	}

	c.logger.Info("simulated login", zap.String("role", string(role)))
	http.Redirect(w, r, role.DashboardPath(), http.StatusSeeOther)
}

func (c *Controller) Vendor(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	status := service.NormalizeStatusFilter(r.URL.Query().Get("status"))

	stats, err := c.catalog.Stats(r.Context())
	if err != nil {
		c.fail(w, "loading order stats", err)
		return
	}
	orders, err := c.catalog.Search(r.Context(), query, status)
	if err != nil {
		c.fail(w, "searching orders", err)
		return
	}

	c.render(w, http.StatusOK, pageVendor, VendorPage{
		Stats:  stats,
		Query:  query,
		Status: status,
		Tabs:   vendorTabs(query, status),
		Orders: orders,
	})
}

func (c *Controller) Delivery(w http.ResponseWriter, r *http.Request) {
	online := true
	if v := r.URL.Query().Get("online"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			online = parsed
		}
	}

	order, err := c.catalog.Default(r.Context())
	if err != nil {
		c.fail(w, "loading current delivery", err)
		return
	}

	c.render(w, http.StatusOK, pageDelivery, DeliveryPage{
		Online:     online,
		ToggleHref: "/delivery?online=" + strconv.FormatBool(!online),
		Driver:     demoDriver,
		Order:      order,
		Progress:   c.startProgress(),
		Map:        mapView(order.ID, c.telemetry.Start),
	})
}

// Track renders the tracking page. Unknown order ids show the default order.
func (c *Controller) Track(w http.ResponseWriter, r *http.Request) {
	requested := chi.URLParam(r, "orderId")

	result, err := c.catalog.Lookup(r.Context(), requested)
	if err != nil {
		c.fail(w, "looking up order", err)
		return
	}

	arrival := EstimatedArrival(c.now())
	c.render(w, http.StatusOK, pageTrack, TrackPage{
		RequestedID:      requested,
		Fallback:         result.Fallback,
		Order:            result.Order,
		Progress:         c.startProgress(),
		EstimatedArrival: arrival,
		Timeline:         trackTimeline(result.Order, arrival),
		Driver:           demoDriver,
		Map:              mapView(result.Order.ID, c.telemetry.Start),
	})
}

func (c *Controller) startProgress() float64 {
	return telemetry.NewGenerator(c.telemetry, nil).CurrentProgress()
}

func (c *Controller) render(w http.ResponseWriter, status int, page string, data any) {
	if err := c.views.Render(w, status, page, data); err != nil {
		c.logger.Error("rendering page", zap.String("page", page), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (c *Controller) fail(w http.ResponseWriter, action string, err error) {
	traceID := uuid.New().String()
	c.logger.Error(action+" failed", zap.String("traceId", traceID), zap.Error(err))
	http.Error(w, "internal server error (trace "+traceID+")", http.StatusInternalServerError)
}
