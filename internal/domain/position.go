package domain

import "math"

// Position is a simulated driver location. No geographic bounds are enforced.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p Position) IsFinite() bool {
	return !math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0) &&
		!math.IsNaN(p.Lng) && !math.IsInf(p.Lng, 0)
}
