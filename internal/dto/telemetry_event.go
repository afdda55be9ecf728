package dto

import (
	"time"

	"delitrack/internal/telemetry"
)

// TelemetryEvent is the payload of one "telemetry" server-sent event.
type TelemetryEvent struct {
	SessionID  string    `json:"sessionId"`
	OrderID    string    `json:"orderId"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Progress   float64   `json:"progress"`
	Percent    int       `json:"percent"`
	MarkerTop  float64   `json:"markerTop"`
	MarkerLeft float64   `json:"markerLeft"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewTelemetryEvent(s telemetry.Snapshot) TelemetryEvent {
	return TelemetryEvent{
		SessionID:  s.SessionID,
		OrderID:    s.OrderID,
		Lat:        s.Position.Lat,
		Lng:        s.Position.Lng,
		Progress:   s.Progress,
		Percent:    s.Percent,
		MarkerTop:  s.Marker.Top,
		MarkerLeft: s.Marker.Left,
		Timestamp:  s.At.UTC(),
	}
}
