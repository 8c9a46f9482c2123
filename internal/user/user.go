package user

import "time"

// User represents a registered account
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone,omitempty"`
	Role          string    `json:"role"`
	LoyaltyPoints int       `json:"loyalty_points"`
	CreatedAt     time.Time `json:"created_at"`
}

// Reward is one redeemable loyalty reward
type Reward struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Points      int    `json:"points"`
	Description string `json:"description"`
}

// LoyaltySummary is the loyalty state returned to a user
type LoyaltySummary struct {
	Points  int      `json:"points"`
	Tier    string   `json:"tier"`
	Rewards []Reward `json:"rewards"`
}

// ExpiringItem is one inventory entry approaching its expiry date
type ExpiringItem struct {
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	ExpiryDate time.Time `json:"expiry_date"`
	DaysLeft   int       `json:"days_left"`
}
