package orders

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/joao-fontenele/supplychain/internal/domain"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list orders", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("orders listed", "count", len(orders))
	h.writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "failed to get order", "id", id)
		return
	}

	h.logger.Info("order retrieved", "order_id", order.ID)
	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var order domain.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	order.ID = ""

	created, err := h.service.Create(r.Context(), order)
	if err != nil {
		h.writeServiceError(w, err, "failed to create order", "customer", order.CustomerName)
		return
	}

	h.logger.Info("order created", "order_id", created.ID, "customer", created.CustomerName)
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	var order domain.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), id, order)
	if err != nil {
		h.writeServiceError(w, err, "failed to update order", "id", id)
		return
	}

	h.logger.Info("order updated", "order_id", updated.ID, "status", updated.Status)
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err, "failed to delete order", "id", id)
		return
	}

	h.logger.Info("order deleted", "order_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// HandleCount serves order counts by status or payment status. Unknown
// status strings yield zero, never an error.
func (h *Handler) HandleCount(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	paymentStatus := r.URL.Query().Get("paymentStatus")

	var (
		count int64
		err   error
	)

	switch {
	case status != "" && paymentStatus != "":
		h.writeError(w, http.StatusBadRequest, "provide either status or paymentStatus, not both")
		return
	case status != "":
		count, err = h.service.CountByStatus(r.Context(), status)
	case paymentStatus != "":
		count, err = h.service.CountByPaymentStatus(r.Context(), paymentStatus)
	default:
		h.writeError(w, http.StatusBadRequest, "missing status or paymentStatus parameter")
		return
	}

	if err != nil {
		h.logger.Error("failed to count orders", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// dashboardResponse projects the open status maps onto the counters the
// dashboard page displays.
type dashboardResponse struct {
	TotalOrders      int   `json:"total_orders"`
	TotalRevenue     int64 `json:"total_revenue"`
	PendingOrders    int64 `json:"pending_orders"`
	ProcessingOrders int64 `json:"processing_orders"`
	ShippedOrders    int64 `json:"shipped_orders"`
	DeliveredOrders  int64 `json:"delivered_orders"`
	PaidOrders       int64 `json:"paid_orders"`
	UnpaidOrders     int64 `json:"unpaid_orders"`
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("failed to build dashboard summary", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := dashboardResponse{
		TotalOrders:      summary.TotalOrders,
		TotalRevenue:     summary.TotalRevenue,
		PendingOrders:    summary.StatusCounts[domain.OrderStatusPending],
		ProcessingOrders: summary.StatusCounts[domain.OrderStatusProcessing],
		ShippedOrders:    summary.StatusCounts[domain.OrderStatusShipped],
		DeliveredOrders:  summary.StatusCounts[domain.OrderStatusDelivered],
		PaidOrders:       summary.PaymentCounts[domain.PaymentStatusPaid],
		UnpaidOrders:     summary.PaymentCounts[domain.PaymentStatusPending],
	}

	h.logger.Info("dashboard summary built", "total_orders", resp.TotalOrders)
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, msg string, args ...any) {
	var validationErr *ValidationError

	switch {
	case errors.As(err, &validationErr):
		h.writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, ErrNotFound):
		h.writeError(w, http.StatusNotFound, "order not found")
	default:
		h.logger.Error(msg, append([]any{"error", err}, args...)...)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
