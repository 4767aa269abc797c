package orders

import (
	"testing"

	"github.com/joao-fontenele/supplychain/internal/domain"
)

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	if summary.TotalOrders != 0 || summary.TotalRevenue != 0 {
		t.Errorf("expected zero totals, got %+v", summary)
	}
	if summary.StatusCounts["pending"] != 0 {
		t.Error("absent status must read as zero")
	}
}

func TestSummarize_CountsAndRevenue(t *testing.T) {
	snapshot := []domain.Order{
		{Status: "pending", PaymentStatus: "pending", TotalAmount: 10000},
		{Status: "pending", PaymentStatus: "paid", TotalAmount: 2500},
		{Status: "shipped", PaymentStatus: "paid", TotalAmount: 5000},
	}

	summary := Summarize(snapshot)

	if summary.TotalOrders != 3 {
		t.Errorf("expected 3 orders, got %d", summary.TotalOrders)
	}
	if summary.TotalRevenue != 17500 {
		t.Errorf("expected revenue 17500, got %d", summary.TotalRevenue)
	}
	if summary.StatusCounts["pending"] != 2 {
		t.Errorf("expected 2 pending, got %d", summary.StatusCounts["pending"])
	}
	if summary.StatusCounts["shipped"] != 1 {
		t.Errorf("expected 1 shipped, got %d", summary.StatusCounts["shipped"])
	}
	if summary.StatusCounts["delivered"] != 0 {
		t.Errorf("expected 0 delivered, got %d", summary.StatusCounts["delivered"])
	}
	if summary.PaymentCounts["paid"] != 2 || summary.PaymentCounts["pending"] != 1 {
		t.Errorf("unexpected payment counts: %v", summary.PaymentCounts)
	}
}

func TestSummarize_ArbitraryStatusStrings(t *testing.T) {
	snapshot := []domain.Order{
		{Status: "on-hold", TotalAmount: 100},
		{Status: "ON-HOLD", TotalAmount: 100},
	}

	summary := Summarize(snapshot)

	// Statuses are uncontrolled free text; counting is exact-match.
	if summary.StatusCounts["on-hold"] != 1 || summary.StatusCounts["ON-HOLD"] != 1 {
		t.Errorf("unexpected status counts: %v", summary.StatusCounts)
	}
	if summary.StatusCounts["onhold"] != 0 {
		t.Error("misspelled status must read as zero, not error")
	}
}

func TestSummarize_DashboardExample(t *testing.T) {
	snapshot := []domain.Order{
		{Status: "pending", TotalAmount: 10000},
		{Status: "delivered", TotalAmount: 5000},
	}

	summary := Summarize(snapshot)

	if summary.TotalRevenue != 15000 {
		t.Errorf("expected revenue 15000, got %d", summary.TotalRevenue)
	}
	if summary.StatusCounts["pending"] != 1 || summary.StatusCounts["delivered"] != 1 {
		t.Errorf("unexpected status counts: %v", summary.StatusCounts)
	}
}
