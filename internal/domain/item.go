package domain

import "time"

// Item is a catalog entry tracked by the inventory. Price is stored in cents.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SKU         string    `json:"sku,omitempty"`
	Category    string    `json:"category,omitempty"`
	Quantity    int       `json:"quantity"`
	MinQuantity int       `json:"min_quantity"`
	Price       int64     `json:"price"`
	Supplier    string    `json:"supplier"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (i Item) IsOutOfStock() bool {
	return i.Quantity == 0
}

// IsLowStock reports whether stock is at or below the configured minimum.
// An item with zero quantity is out of stock, never low stock.
func (i Item) IsLowStock() bool {
	return i.Quantity > 0 && i.Quantity <= i.MinQuantity
}

func (i Item) TotalValue() int64 {
	return i.Price * int64(i.Quantity)
}
