// Package telemetry simulates a moving delivery: a driver position doing a
// bounded random walk and a completion percentage creeping toward 100.
// Nothing here is real data; it only has to look alive on a dashboard.
package telemetry

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"delitrack/internal/domain"
)

const MaxProgress = 100.0

type Kind string

const (
	KindPosition Kind = "position"
	KindProgress Kind = "progress"
)

// Random is the source of uniform values in [0, 1).
type Random interface {
	Float64() float64
}

type Config struct {
	PositionInterval time.Duration
	ProgressInterval time.Duration
	MaxDrift         float64
	MaxProgressStep  float64
	StartProgress    float64
	Start            domain.Position
}

func DefaultConfig() Config {
	return Config{
		PositionInterval: 3 * time.Second,
		ProgressInterval: 5 * time.Second,
		MaxDrift:         0.0005,
		MaxProgressStep:  2,
		StartProgress:    75,
		Start:            domain.Position{Lat: 37.7749, Lng: -122.4194},
	}
}

type Generator struct {
	cfg Config

	mu       sync.RWMutex
	rnd      Random
	position domain.Position
	progress float64
}

// NewGenerator builds a generator at cfg's starting point. A nil rnd gets a
// freshly seeded PCG source.
func NewGenerator(cfg Config, rnd Random) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{
		cfg:      cfg,
		rnd:      rnd,
		position: cfg.Start,
		progress: AdvanceProgress(math.Max(cfg.StartProgress, 0), 0),
	}
}

// AdvanceProgress adds increment to prev and clamps the result at MaxProgress.
func AdvanceProgress(prev, increment float64) float64 {
	next := prev + increment
	if next >= MaxProgress {
		return MaxProgress
	}
	return next
}

// TickPosition moves each coordinate by an independent delta in
// [-MaxDrift, MaxDrift). The walk is unbounded and does not head anywhere.
func (g *Generator) TickPosition() domain.Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.position.Lat += g.drift()
	g.position.Lng += g.drift()
	return g.position
}

func (g *Generator) drift() float64 {
	return g.rnd.Float64()*2*g.cfg.MaxDrift - g.cfg.MaxDrift
}

// TickProgress adds a value in [0, MaxProgressStep) and clamps at 100.
func (g *Generator) TickProgress() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.progress = AdvanceProgress(g.progress, g.rnd.Float64()*g.cfg.MaxProgressStep)
	return g.progress
}

func (g *Generator) CurrentPosition() domain.Position {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position
}

func (g *Generator) CurrentProgress() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.progress
}

func (g *Generator) Snapshot() Snapshot {
	g.mu.RLock()
	pos, progress := g.position, g.progress
	g.mu.RUnlock()

	return Snapshot{
		Position: pos,
		Progress: progress,
		Percent:  int(math.Round(progress)),
		Marker:   MarkerOffset(pos),
		At:       time.Now().UTC(),
	}
}

// Run drives both periodic tasks until ctx is done. onTick, when set, is
// called from the Run goroutine after every tick.
func (g *Generator) Run(ctx context.Context, onTick func(Kind)) {
	positionTicker := time.NewTicker(g.cfg.PositionInterval)
	defer positionTicker.Stop()
	progressTicker := time.NewTicker(g.cfg.ProgressInterval)
	defer progressTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-positionTicker.C:
			g.TickPosition()
			if onTick != nil {
				onTick(KindPosition)
			}
		case <-progressTicker.C:
			g.TickProgress()
			if onTick != nil {
				onTick(KindProgress)
			}
		}
	}
}
