// Package analytics aggregates scanned bills into seller sales reports.
package analytics

import "time"

// BillRecord is one scanned bill kept for sales reporting
type BillRecord struct {
	ID         string     `json:"id"`
	OwnerEmail string     `json:"owner_email"`
	Items      []SoldItem `json:"items"`
	Total      float64    `json:"total"`
	CreatedAt  time.Time  `json:"created_at"`
}

// SoldItem is one line of a recorded bill
type SoldItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// SellerStats summarizes the sales activity of one seller
type SellerStats struct {
	TotalOrders       int     `json:"total_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	TodayOrders       int     `json:"today_orders"`
	TodayRevenue      float64 `json:"today_revenue"`
	WeekRevenue       float64 `json:"week_revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// ProductSales aggregates one product's sales across bills
type ProductSales struct {
	Name    string  `json:"name"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}
