package shop

import "time"

// Shop represents a listed retail shop
type Shop struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Address        string    `json:"address"`
	Phone          string    `json:"phone"`
	OperatingHours string    `json:"operating_hours"`
	Rating         float64   `json:"rating"`
	Distance       float64   `json:"distance"`
	IsOpen         bool      `json:"is_open"`
	CreatedAt      time.Time `json:"created_at"`
}

// MatchRequest is a grocery list to match against shop inventories
type MatchRequest struct {
	Items []string `json:"items"`
}

// Match scores one shop against a grocery list
type Match struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	TotalPrice   float64  `json:"total_price"`
	Distance     float64  `json:"distance"`
	Availability float64  `json:"availability"`
	Rating       float64  `json:"rating"`
	MatchedItems int      `json:"matched_items"`
	MissingItems []string `json:"missing_items"`
}
