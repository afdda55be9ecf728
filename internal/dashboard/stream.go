package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"delitrack/internal/dto"
	"delitrack/internal/telemetry"
)

const telemetryEvent = "telemetry"

// Stream serves GET /track/{orderId}/stream as server-sent events. Each
// connection owns one telemetry session, which is stopped when the client
// disconnects.
func (c *Controller) Stream(w http.ResponseWriter, r *http.Request) {
	requested := chi.URLParam(r, "orderId")

	result, err := c.catalog.Lookup(r.Context(), requested)
	if err != nil {
		c.fail(w, "looking up order", err)
		return
	}

	rc := http.NewResponseController(w)
	// The server write timeout would otherwise cut the stream.
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		c.logger.Warn("clearing write deadline", zap.Error(err))
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	session := c.sessions.Open(r.Context(), result.Order.ID)
	defer c.sessions.Close(session.ID())

	logger := c.logger.With(zap.String("sessionId", session.ID()), zap.String("orderId", result.Order.ID))
	logger.Debug("telemetry stream opened", zap.Bool("fallback", result.Fallback))

	seq := 0
	send := func(snap telemetry.Snapshot) bool {
		seq++
		if err := writeEvent(w, seq, snap); err != nil {
			logger.Debug("telemetry stream write failed", zap.Error(err))
			return false
		}
		if err := rc.Flush(); err != nil {
			logger.Debug("telemetry stream flush failed", zap.Error(err))
			return false
		}
		return true
	}

	// Prefer an already buffered tick over a fresh read, otherwise that older
	// tick would follow and the progress bar would step back.
	var initial telemetry.Snapshot
	select {
	case snap, ok := <-session.Updates():
		if !ok {
			return
		}
		initial = snap
	default:
		initial = session.Snapshot()
	}
	if !send(initial) {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			logger.Debug("telemetry stream closed by client")
			return
		case snap, ok := <-session.Updates():
			if !ok {
				return
			}
			if !send(snap) {
				return
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, id int, snap telemetry.Snapshot) error {
	payload, err := json.Marshal(dto.NewTelemetryEvent(snap))
	if err != nil {
		return fmt.Errorf("encoding telemetry event: %w", err)
	}
	_, err = fmt.Fprintf(w, "event: %s\nid: %d\ndata: %s\n\n", telemetryEvent, id, payload)
	return err
}
