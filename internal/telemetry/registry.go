package telemetry

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Registry struct {
	cfg       Config
	logger    *zap.Logger
	recorder  Recorder
	newRandom func() Random

	mu       sync.Mutex
	sessions map[string]*Session
}

type RegistryOption func(*Registry)

// WithRandomSource sets the factory used to seed each new session's generator.
func WithRandomSource(newRandom func() Random) RegistryOption {
	return func(r *Registry) {
		r.newRandom = newRandom
	}
}

func WithRecorder(recorder Recorder) RegistryOption {
	return func(r *Registry) {
		r.recorder = recorder
	}
}

func NewRegistry(cfg Config, logger *zap.Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		cfg:       cfg,
		logger:    logger,
		recorder:  nopRecorder{},
		newRandom: func() Random { return nil },
		sessions:  make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open starts a new session for orderID and tracks it until Close.
func (r *Registry) Open(ctx context.Context, orderID string) *Session {
	id := uuid.New().String()
	gen := NewGenerator(r.cfg, r.newRandom())
	session := NewSession(id, orderID, gen, r.logger, r.recorder)

	r.mu.Lock()
	r.sessions[id] = session
	r.mu.Unlock()

	session.Start(ctx)
	return session
}

// Close stops the session and forgets it. Unknown ids are ignored.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	session, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		session.Stop()
	}
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// StopAll stops every tracked session. Used on shutdown.
func (r *Registry) StopAll() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for id, s := range r.sessions {
		sessions = append(sessions, s)
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
	}
	if len(sessions) > 0 {
		r.logger.Info("stopped telemetry sessions", zap.Int("count", len(sessions)))
	}
}
