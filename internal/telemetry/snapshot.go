package telemetry

import (
	"math"
	"time"

	"delitrack/internal/domain"
)

type Snapshot struct {
	SessionID string          `json:"sessionId,omitempty"`
	OrderID   string          `json:"orderId,omitempty"`
	Position  domain.Position `json:"position"`
	Progress  float64         `json:"progress"`
	Percent   int             `json:"percent"`
	Marker    Marker          `json:"marker"`
	At        time.Time       `json:"at"`
}

// Marker is the driver icon placement on the map canvas, in percent of its
// height (Top) and width (Left).
type Marker struct {
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
}

// MarkerOffset keeps the marker near the middle of the canvas. math.Mod keeps
// the dividend's sign, so western longitudes shift the marker left.
func MarkerOffset(p domain.Position) Marker {
	return Marker{
		Top:  40 + math.Mod(p.Lat, 10)*2,
		Left: 35 + math.Mod(p.Lng, 10)*3,
	}
}
