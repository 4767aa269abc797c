// Package events exposes the inventory change feed to HTTP clients as a
// server-sent event stream.
package events

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/joao-fontenele/supplychain/internal/notify"
)

const heartbeatInterval = 30 * time.Second

type Handler struct {
	hub    *notify.Hub
	logger *slog.Logger
}

func NewHandler(hub *notify.Hub, logger *slog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// HandleStream holds the connection open and writes one SSE event per change
// signal until the client disconnects. Clients receive no history; they are
// expected to query current state themselves after each signal.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("response writer does not support streaming")
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sub := h.hub.Subscribe()
	defer sub.Cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.logger.Info("change feed subscriber connected", "remote", r.RemoteAddr)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("change feed subscriber disconnected", "remote", r.RemoteAddr)
			return
		case <-sub.C:
			if _, err := fmt.Fprint(w, "event: inventory\ndata: update\n\n"); err != nil {
				h.logger.Error("failed to write change signal", "error", err)
				return
			}
			flusher.Flush()
		case <-heartbeat.C:
			// Comment line keeps intermediaries from closing idle streams.
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
