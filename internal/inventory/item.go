package inventory

import "time"

// Item represents one stocked product with its computed expiry date
type Item struct {
	ID         string    `json:"id"`
	ShopID     string    `json:"shop_id,omitempty"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Price      float64   `json:"price"`
	Stock      int       `json:"stock"`
	Unit       string    `json:"unit"`
	OwnerEmail string    `json:"owner_email,omitempty"`
	ExpiryDate time.Time `json:"expiry_date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
