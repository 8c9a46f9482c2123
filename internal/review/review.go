package review

import "time"

// Review represents one shop review left by a user
type Review struct {
	ID        string    `json:"id"`
	ShopID    string    `json:"shop_id"`
	UserEmail string    `json:"user_email"`
	UserName  string    `json:"user_name,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}
