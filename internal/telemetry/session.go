package telemetry

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Recorder receives session lifecycle and tick notifications.
type Recorder interface {
	SessionStarted()
	SessionStopped()
	RecordTick(kind string)
}

type nopRecorder struct{}

func (nopRecorder) SessionStarted()   {}
func (nopRecorder) SessionStopped()   {}
func (nopRecorder) RecordTick(string) {}

// Session ties one Generator to the lifetime of one consuming view. Updates
// are delivered latest-wins: a slow reader only ever sees the newest snapshot.
type Session struct {
	id       string
	orderID  string
	gen      *Generator
	logger   *zap.Logger
	recorder Recorder

	mu      sync.Mutex
	state   State
	cancel  context.CancelFunc
	done    chan struct{}
	updates chan Snapshot
}

func NewSession(id, orderID string, gen *Generator, logger *zap.Logger, recorder Recorder) *Session {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Session{
		id:       id,
		orderID:  orderID,
		gen:      gen,
		logger:   logger.With(zap.String("sessionId", id), zap.String("orderId", orderID)),
		recorder: recorder,
		updates:  make(chan Snapshot, 1),
	}
}

func (s *Session) ID() string      { return s.id }
func (s *Session) OrderID() string { return s.orderID }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Updates is closed once the session has stopped.
func (s *Session) Updates() <-chan Snapshot {
	return s.updates
}

func (s *Session) Snapshot() Snapshot {
	snap := s.gen.Snapshot()
	snap.SessionID = s.id
	snap.OrderID = s.orderID
	return snap
}

// Start moves an idle session to running. Cancelling ctx halts the timers,
// but Stop must still be called to release the session. Calling Start on a
// running or stopped session does nothing.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.state = StateRunning
	s.recorder.SessionStarted()
	s.logger.Debug("telemetry session started")

	go s.run(runCtx)
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)
	defer close(s.updates)

	s.gen.Run(ctx, func(kind Kind) {
		s.recorder.RecordTick(string(kind))
		s.publish(s.Snapshot())
	})
}

func (s *Session) publish(snap Snapshot) {
	select {
	case s.updates <- snap:
		return
	default:
	}
	select {
	case <-s.updates:
	default:
	}
	select {
	case s.updates <- snap:
	default:
	}
}

// Stop cancels the timers and waits for the session goroutine to exit. No
// snapshot is published after Stop returns. Stop is idempotent.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateStopped:
		return
	case StateIdle:
		s.state = StateStopped
		close(s.updates)
		return
	}

	s.cancel()
	<-s.done
	s.state = StateStopped
	s.recorder.SessionStopped()
	s.logger.Debug("telemetry session stopped",
		zap.Float64("progress", s.gen.CurrentProgress()),
	)
}
