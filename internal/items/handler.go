package items

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

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

type itemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SKU         string `json:"sku"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
	Price       int64  `json:"price"`
	Supplier    string `json:"supplier"`
	Location    string `json:"location"`
}

func (req itemRequest) toDomain() domain.Item {
	return domain.Item{
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		Category:    req.Category,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Price:       req.Price,
		Supplier:    req.Supplier,
		Location:    req.Location,
	}
}

// itemResponse enriches the stored record with derived stock state.
type itemResponse struct {
	domain.Item
	LowStock   bool  `json:"low_stock"`
	OutOfStock bool  `json:"out_of_stock"`
	TotalValue int64 `json:"total_value"`
}

func toItemResponse(item domain.Item) itemResponse {
	return itemResponse{
		Item:       item,
		LowStock:   item.IsLowStock(),
		OutOfStock: item.IsOutOfStock(),
		TotalValue: item.TotalValue(),
	}
}

func toItemResponses(items []domain.Item) []itemResponse {
	responses := make([]itemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toItemResponse(item))
	}
	return responses
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list items", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("items listed", "count", len(items))
	h.writeJSON(w, http.StatusOK, toItemResponses(items))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing item id")
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "failed to get item", "id", id)
		return
	}

	h.logger.Info("item retrieved", "item_id", item.ID)
	h.writeJSON(w, http.StatusOK, toItemResponse(*item))
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.service.Create(r.Context(), req.toDomain())
	if err != nil {
		h.writeServiceError(w, err, "failed to create item", "name", req.Name)
		return
	}

	h.logger.Info("item created", "item_id", item.ID, "name", item.Name, "supplier", item.Supplier)
	h.writeJSON(w, http.StatusCreated, toItemResponse(*item))
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing item id")
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.service.Update(r.Context(), id, req.toDomain())
	if err != nil {
		h.writeServiceError(w, err, "failed to update item", "id", id)
		return
	}

	h.logger.Info("item updated", "item_id", item.ID)
	h.writeJSON(w, http.StatusOK, toItemResponse(*item))
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) HandleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing item id")
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.service.UpdateQuantity(r.Context(), id, req.Quantity)
	if err != nil {
		h.writeServiceError(w, err, "failed to update item quantity", "id", id)
		return
	}

	h.logger.Info("item quantity updated", "item_id", item.ID, "quantity", item.Quantity)
	h.writeJSON(w, http.StatusOK, toItemResponse(*item))
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "missing item id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err, "failed to delete item", "id", id)
		return
	}

	h.logger.Info("item deleted", "item_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// HandleSearch serves name, supplier and price-range lookups. Exactly one
// filter is applied, checked in that order.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		items []domain.Item
		err   error
	)

	switch {
	case query.Get("name") != "":
		items, err = h.service.SearchByName(r.Context(), query.Get("name"))
	case query.Get("supplier") != "":
		items, err = h.service.ListBySupplier(r.Context(), query.Get("supplier"))
	case query.Get("minPrice") != "" || query.Get("maxPrice") != "":
		minPrice, perr := parsePriceParam(query.Get("minPrice"), 0)
		if perr != nil {
			h.writeError(w, http.StatusBadRequest, "invalid minPrice")
			return
		}
		maxPrice, perr := parsePriceParam(query.Get("maxPrice"), int64(1)<<62)
		if perr != nil {
			h.writeError(w, http.StatusBadRequest, "invalid maxPrice")
			return
		}
		items, err = h.service.ListByPriceBetween(r.Context(), minPrice, maxPrice)
	default:
		h.writeError(w, http.StatusBadRequest, "missing search parameter: name, supplier or minPrice/maxPrice")
		return
	}

	if err != nil {
		h.logger.Error("failed to search items", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("items searched", "count", len(items))
	h.writeJSON(w, http.StatusOK, toItemResponses(items))
}

func (h *Handler) HandleLowStock(w http.ResponseWriter, r *http.Request) {
	var (
		items []domain.Item
		err   error
	)

	if raw := r.URL.Query().Get("threshold"); raw != "" {
		threshold, perr := strconv.Atoi(raw)
		if perr != nil || threshold < 0 {
			h.writeError(w, http.StatusBadRequest, "invalid threshold")
			return
		}
		items, err = h.service.LowStockAtMost(r.Context(), threshold)
	} else {
		items, err = h.service.LowStock(r.Context())
	}

	if err != nil {
		h.logger.Error("failed to list low stock items", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("low stock items listed", "count", len(items))
	h.writeJSON(w, http.StatusOK, toItemResponses(items))
}

func (h *Handler) HandleOutOfStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.OutOfStock(r.Context())
	if err != nil {
		h.logger.Error("failed to list out of stock items", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("out of stock items listed", "count", len(items))
	h.writeJSON(w, http.StatusOK, toItemResponses(items))
}

func (h *Handler) HandleStockOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.StockOverview(r.Context())
	if err != nil {
		h.logger.Error("failed to build stock overview", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("stock overview built", "total_products", overview.TotalProducts)
	h.writeJSON(w, http.StatusOK, overview)
}

func parsePriceParam(raw string, fallback int64) (int64, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, msg string, args ...any) {
	var validationErr *ValidationError

	switch {
	case errors.As(err, &validationErr):
		h.writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, ErrNotFound):
		h.writeError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, ErrConflict):
		h.writeError(w, http.StatusConflict, ErrConflict.Error())
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
