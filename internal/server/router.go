package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"delitrack/internal/dashboard"
	"delitrack/internal/order/controller"
)

type Metrics interface {
	RequestRecorder
	Handler() http.Handler
}

func NewRouter(orderCtrl *controller.OrdersController, dashCtrl *dashboard.Controller, metrics Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger, metrics))
	r.Use(middleware.Recoverer)

	r.Get("/health", health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Get("/", dashCtrl.Landing)
	r.Get("/login", dashCtrl.LoginForm)
	r.Post("/login", dashCtrl.Login)
	r.Get("/vendor", dashCtrl.Vendor)
	r.Get("/delivery", dashCtrl.Delivery)

	r.Route("/track", func(r chi.Router) {
		r.Get("/", dashCtrl.Track)
		r.Get("/{orderId}", dashCtrl.Track)
		r.Get("/{orderId}/stream", dashCtrl.Stream)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/orders", orderCtrl.ListOrders)
		r.Get("/orders/{orderId}", orderCtrl.GetOrder)
		r.Get("/stats", orderCtrl.GetStats)
	})

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
