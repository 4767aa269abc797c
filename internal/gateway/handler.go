package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

// Handler fronts the supplychain API. It forwards REST calls as-is; the SSE
// change feed is not proxied because this handler buffers response bodies.
type Handler struct {
	apiProxy *ServiceProxy
	logger   *slog.Logger
}

func NewHandler(apiProxy *ServiceProxy, logger *slog.Logger) *Handler {
	return &Handler{
		apiProxy: apiProxy,
		logger:   logger,
	}
}

func (h *Handler) HandleAPI(w http.ResponseWriter, r *http.Request) {
	resp, err := h.apiProxy.ForwardRequest(r.Context(), r, r.URL.Path)
	if err != nil {
		h.logger.Error("failed to forward request", "error", err, "path", r.URL.Path)
		h.writeError(w, http.StatusBadGateway, "service unavailable")
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if contentType := resp.Header.Get("Content-Type"); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}

	w.WriteHeader(resp.StatusCode)

	h.logger.Info("request proxied", "method", r.Method, "path", r.URL.Path, "status", resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.Error("failed to copy response body", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		h.logger.Error("failed to encode error response", "error", err)
	}
}
