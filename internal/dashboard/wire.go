package dashboard

import (
	"go.uber.org/zap"

	"delitrack/internal/telemetry"
)

func NewModule(catalog Catalog, sessions *telemetry.Registry, cfg telemetry.Config, logger *zap.Logger) (*Controller, error) {
	views, err := NewViews()
	if err != nil {
		return nil, err
	}
	return NewController(views, catalog, sessions, cfg, logger), nil
}
