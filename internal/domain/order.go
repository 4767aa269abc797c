package domain

import "time"

// Known order status values. Status and payment status are persisted as free
// text; the dashboard projects these values but any string is accepted.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"

	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
)

// OrderLine is a snapshot of a catalog item at order time. It is a detached
// copy: later price or quantity changes in the catalog do not affect it.
type OrderLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	SKU      string `json:"sku,omitempty"`
}

type Order struct {
	ID               string      `json:"id"`
	CustomerName     string      `json:"customer_name"`
	CustomerEmail    string      `json:"customer_email,omitempty"`
	CustomerPhone    string      `json:"customer_phone,omitempty"`
	Items            []OrderLine `json:"items"`
	TotalAmount      int64       `json:"total_amount"`
	Status           string      `json:"status"`
	PaymentStatus    string      `json:"payment_status"`
	OrderDate        time.Time   `json:"order_date"`
	ExpectedDelivery time.Time   `json:"expected_delivery"`
	ShippingAddress  string      `json:"shipping_address,omitempty"`
	PaymentMethod    string      `json:"payment_method,omitempty"`
	Notes            string      `json:"notes,omitempty"`
}
