package alerts

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/joao-fontenele/supplychain/internal/domain"
)

func changedEvent(t *testing.T, action string) []byte {
	t.Helper()
	payload, err := json.Marshal(domain.InventoryChangedEvent{
		ItemID:    "item-1",
		Action:    action,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}
	return payload
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandler_Handle(t *testing.T) {
	t.Run("mails a digest when items are low", func(t *testing.T) {
		api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/items/low-stock" {
				t.Errorf("unexpected api path %s", r.URL.Path)
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":"item-1","name":"Bolt","quantity":3,"min_quantity":5,"supplier":"Acme"}]`))
		}))
		defer api.Close()

		var sent map[string]string
		email := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/send" {
				t.Errorf("unexpected email path %s", r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&sent); err != nil {
				t.Errorf("failed to decode email request: %v", err)
			}
			_, _ = w.Write([]byte(`{"status":"sent"}`))
		}))
		defer email.Close()

		handler := NewHandler(api.URL, email.URL, "ops@example.com", http.DefaultClient, discardLogger())

		if err := handler.Handle(context.Background(), changedEvent(t, domain.ChangeActionUpdated)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sent["to"] != "ops@example.com" {
			t.Errorf("unexpected recipient %q", sent["to"])
		}
		if !strings.Contains(sent["body"], "Bolt") {
			t.Errorf("digest body missing item name: %q", sent["body"])
		}
	})

	t.Run("no email when nothing is low", func(t *testing.T) {
		api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer api.Close()

		handler := NewHandler(api.URL, "http://unused", "ops@example.com", http.DefaultClient, discardLogger())

		if err := handler.Handle(context.Background(), changedEvent(t, domain.ChangeActionCreated)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("skips deletions without querying", func(t *testing.T) {
		handler := NewHandler("http://unused", "http://unused", "ops@example.com", http.DefaultClient, discardLogger())

		if err := handler.Handle(context.Background(), changedEvent(t, domain.ChangeActionDeleted)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		handler := NewHandler("http://unused", "http://unused", "ops@example.com", http.DefaultClient, discardLogger())

		if err := handler.Handle(context.Background(), []byte("{")); err == nil {
			t.Fatal("expected error for malformed payload")
		}
	})
}
