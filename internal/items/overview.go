package items

import (
	"sort"

	"github.com/joao-fontenele/supplychain/internal/domain"
)

const recentStockLimit = 5

type StockOverview struct {
	TotalProducts   int           `json:"total_products"`
	TotalStockValue int64         `json:"total_stock_value"`
	LowStockCount   int           `json:"low_stock_count"`
	RecentStock     []domain.Item `json:"recent_stock"`
}

// BuildStockOverview computes the stock dashboard numbers over a snapshot of
// the catalog supplied by the caller. The snapshot is not mutated; there is
// no caching, every call recomputes from scratch.
func BuildStockOverview(snapshot []domain.Item) StockOverview {
	overview := StockOverview{TotalProducts: len(snapshot)}

	recent := make([]domain.Item, 0, len(snapshot))
	for _, item := range snapshot {
		overview.TotalStockValue += item.TotalValue()
		if item.IsLowStock() {
			overview.LowStockCount++
		}
		if !item.UpdatedAt.IsZero() {
			recent = append(recent, item)
		}
	}

	// Stable sort keeps snapshot order for equal timestamps.
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].UpdatedAt.After(recent[j].UpdatedAt)
	})
	if len(recent) > recentStockLimit {
		recent = recent[:recentStockLimit]
	}
	overview.RecentStock = recent

	return overview
}
