// Package alerts turns inventory change events into low-stock email digests.
package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/joao-fontenele/supplychain/internal/domain"
)

type Handler struct {
	apiBaseURL      string
	emailServiceURL string
	recipient       string
	httpClient      *http.Client
	logger          *slog.Logger
}

func NewHandler(apiBaseURL, emailServiceURL, recipient string, client *http.Client, logger *slog.Logger) *Handler {
	return &Handler{
		apiBaseURL:      apiBaseURL,
		emailServiceURL: emailServiceURL,
		recipient:       recipient,
		httpClient:      client,
		logger:          logger,
	}
}

type lowStockItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
	Supplier    string `json:"supplier"`
}

// Handle processes one inventory change event: it re-queries the low-stock
// list and mails a digest when anything is below threshold. Deletions are
// skipped; removing an item cannot push another one low.
func (h *Handler) Handle(ctx context.Context, payload []byte) error {
	var event domain.InventoryChangedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal inventory changed event: %w", err)
	}

	h.logger.Info("processing inventory change", "item_id", event.ItemID, "action", event.Action)

	if event.Action == domain.ChangeActionDeleted {
		return nil
	}

	low, err := h.fetchLowStock(ctx)
	if err != nil {
		return fmt.Errorf("fetch low stock items: %w", err)
	}
	if len(low) == 0 {
		return nil
	}

	if err := h.sendDigest(ctx, low); err != nil {
		return fmt.Errorf("send low stock digest: %w", err)
	}

	h.logger.Info("low stock digest sent", "items", len(low), "recipient", h.recipient)
	return nil
}

func (h *Handler) fetchLowStock(ctx context.Context) ([]lowStockItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.apiBaseURL+"/api/items/low-stock", nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("supplychain api returned status %d", resp.StatusCode)
	}

	var items []lowStockItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, err
	}

	return items, nil
}

func (h *Handler) sendDigest(ctx context.Context, items []lowStockItem) error {
	var body strings.Builder
	fmt.Fprintf(&body, "%d item(s) are at or below their minimum stock level:\n\n", len(items))
	for _, item := range items {
		fmt.Fprintf(&body, "- %s (supplier %s): %d on hand, minimum %d\n",
			item.Name, item.Supplier, item.Quantity, item.MinQuantity)
	}

	email := map[string]string{
		"to":      h.recipient,
		"subject": fmt.Sprintf("Low stock alert: %d item(s) need reordering", len(items)),
		"body":    body.String(),
	}

	data, err := json.Marshal(email)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.emailServiceURL+"/send", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email service returned status %d", resp.StatusCode)
	}

	return nil
}
