package telemetry

import (
	"delitrack/internal/config"
	"delitrack/internal/domain"
)

func ConfigFromSettings(s config.TelemetryConfig) Config {
	return Config{
		PositionInterval: s.PositionInterval,
		ProgressInterval: s.ProgressInterval,
		MaxDrift:         s.MaxDrift,
		MaxProgressStep:  s.MaxProgressStep,
		StartProgress:    s.StartProgress,
		Start:            domain.Position{Lat: s.StartLat, Lng: s.StartLng},
	}
}
