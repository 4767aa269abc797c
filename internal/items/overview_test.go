package items

import (
	"testing"
	"time"

	"github.com/joao-fontenele/supplychain/internal/domain"
)

func TestBuildStockOverview_Empty(t *testing.T) {
	overview := BuildStockOverview(nil)

	if overview.TotalProducts != 0 {
		t.Errorf("expected 0 products, got %d", overview.TotalProducts)
	}
	if overview.TotalStockValue != 0 {
		t.Errorf("expected 0 stock value, got %d", overview.TotalStockValue)
	}
	if overview.LowStockCount != 0 {
		t.Errorf("expected 0 low stock, got %d", overview.LowStockCount)
	}
	if len(overview.RecentStock) != 0 {
		t.Errorf("expected no recent stock, got %d", len(overview.RecentStock))
	}
}

func TestBuildStockOverview_Totals(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	snapshot := []domain.Item{
		{ID: "a", Quantity: 3, MinQuantity: 5, Price: 150, UpdatedAt: base},                  // low stock, value 450
		{ID: "b", Quantity: 0, MinQuantity: 5, Price: 1000, UpdatedAt: base.Add(time.Hour)}, // out of stock, not low
		{ID: "c", Quantity: 20, MinQuantity: 5, Price: 50, UpdatedAt: base.Add(time.Minute)},
	}

	overview := BuildStockOverview(snapshot)

	if overview.TotalProducts != 3 {
		t.Errorf("expected 3 products, got %d", overview.TotalProducts)
	}
	if want := int64(450 + 0 + 1000); overview.TotalStockValue != want {
		t.Errorf("expected stock value %d, got %d", want, overview.TotalStockValue)
	}
	if overview.LowStockCount != 1 {
		t.Errorf("expected 1 low stock item, got %d", overview.LowStockCount)
	}
}

func TestBuildStockOverview_RecentStock(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("sorted descending and capped at five", func(t *testing.T) {
		var snapshot []domain.Item
		for i := range 7 {
			snapshot = append(snapshot, domain.Item{
				ID:        string(rune('a' + i)),
				UpdatedAt: base.Add(time.Duration(i) * time.Minute),
			})
		}

		recent := BuildStockOverview(snapshot).RecentStock

		if len(recent) != 5 {
			t.Fatalf("expected 5 recent items, got %d", len(recent))
		}
		for i := 1; i < len(recent); i++ {
			if recent[i].UpdatedAt.After(recent[i-1].UpdatedAt) {
				t.Errorf("recent stock not sorted descending at index %d", i)
			}
		}
		if recent[0].ID != "g" {
			t.Errorf("expected most recently updated item first, got %q", recent[0].ID)
		}
	})

	t.Run("items without update timestamp are excluded", func(t *testing.T) {
		snapshot := []domain.Item{
			{ID: "stamped", UpdatedAt: base},
			{ID: "unstamped"},
		}

		recent := BuildStockOverview(snapshot).RecentStock

		if len(recent) != 1 || recent[0].ID != "stamped" {
			t.Errorf("expected only the stamped item, got %v", recent)
		}
	})

	t.Run("ties keep snapshot order", func(t *testing.T) {
		snapshot := []domain.Item{
			{ID: "first", UpdatedAt: base},
			{ID: "second", UpdatedAt: base},
			{ID: "third", UpdatedAt: base},
		}

		recent := BuildStockOverview(snapshot).RecentStock

		if recent[0].ID != "first" || recent[1].ID != "second" || recent[2].ID != "third" {
			t.Errorf("expected stable order on equal timestamps, got %v", recent)
		}
	})
}
