package orders

import "github.com/joao-fontenele/supplychain/internal/domain"

// Summary holds the dashboard counters derived from a snapshot of all
// orders. Statuses are open strings: reading an absent key yields zero, a
// misspelled status is simply never counted.
type Summary struct {
	TotalOrders   int              `json:"total_orders"`
	TotalRevenue  int64            `json:"total_revenue"`
	StatusCounts  map[string]int64 `json:"status_counts"`
	PaymentCounts map[string]int64 `json:"payment_status_counts"`
}

// Summarize computes the dashboard counters in one pass over the snapshot.
// Pure; the caller owns snapshot freshness.
func Summarize(snapshot []domain.Order) Summary {
	summary := Summary{
		StatusCounts:  make(map[string]int64),
		PaymentCounts: make(map[string]int64),
	}

	for _, order := range snapshot {
		summary.TotalOrders++
		summary.TotalRevenue += order.TotalAmount
		if order.Status != "" {
			summary.StatusCounts[order.Status]++
		}
		if order.PaymentStatus != "" {
			summary.PaymentCounts[order.PaymentStatus]++
		}
	}

	return summary
}
