// Package expiry computes shelf-life expiry dates for inventory items from
// a static category rule table.
package expiry

import (
	"fmt"
	"strings"
	"time"
)

// Rule maps a food category to its shelf life in days
type Rule struct {
	Category string `json:"category"`
	Days     int    `json:"days"`
}

// defaultDays applies to categories matching no rule at all
const defaultDays = 30

// rules is the static shelf-life table, loaded once and immutable for the
// process lifetime. The substring fallback scans it top to bottom and takes
// the first hit, so the order below is part of the contract: do not reorder.
var rules = []Rule{
	// Vegetables & Produce
	{"vegetables", 7},
	{"produce", 7},
	{"fruits", 7},
	{"leafy greens", 3},
	{"herbs", 5},

	// Dairy & Eggs
	{"dairy", 7},
	{"milk", 7},
	{"cheese", 14},
	{"yogurt", 14},
	{"eggs", 21},

	// Meat & Seafood
	{"meat", 3},
	{"chicken", 2},
	{"beef", 3},
	{"pork", 3},
	{"seafood", 2},
	{"fish", 2},

	// Bakery
	{"bakery", 5},
	{"bread", 5},
	{"pastries", 3},

	// Pantry
	{"pulses", 120},
	{"lentils", 120},
	{"beans", 120},
	{"rice", 365},
	{"flour", 180},
	{"sugar", 730},
	{"salt", 1825},
	{"oil", 365},
	{"spices", 365},
	{"pasta", 730},
	{"cereals", 180},

	// Canned & Preserved
	{"canned goods", 730},
	{"pickles", 365},
	{"jam", 180},
	{"sauce", 365},

	// Beverages
	{"juice", 7},
	{"soft drinks", 180},
	{"water", 365},

	// Frozen
	{"frozen", 90},
}

// Days returns the shelf life for a category. Lookup is exact match on the
// lowercased, trimmed category, then bidirectional substring containment in
// table order, then the 30-day default.
func Days(category string) int {
	key := strings.ToLower(strings.TrimSpace(category))

	for _, rule := range rules {
		if rule.Category == key {
			return rule.Days
		}
	}
	for _, rule := range rules {
		if strings.Contains(key, rule.Category) || strings.Contains(rule.Category, key) {
			return rule.Days
		}
	}
	return defaultDays
}

// Date computes the expiry date for a category relative to a reference date
func Date(category string, reference time.Time) time.Time {
	return reference.AddDate(0, 0, Days(category))
}

// Details describes the shelf life of one category
type Details struct {
	Days       int       `json:"days"`
	Duration   string    `json:"duration"`
	ExpiryDate time.Time `json:"expiry_date"`
}

// Info returns the shelf life of a category with a human-readable duration
// and the expiry date relative to the reference date. It is a pure function
// of its inputs.
func Info(category string, reference time.Time) Details {
	days := Days(category)
	return Details{
		Days:       days,
		Duration:   formatDuration(days),
		ExpiryDate: reference.AddDate(0, 0, days),
	}
}

// CategoryInfo pairs a table category with its shelf-life description
type CategoryInfo struct {
	Category string `json:"category"`
	Days     int    `json:"days"`
	Duration string `json:"duration"`
}

// All returns the shelf-life description for every category in the table,
// in table order.
func All() []CategoryInfo {
	infos := make([]CategoryInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, CategoryInfo{
			Category: rule.Category,
			Days:     rule.Days,
			Duration: formatDuration(rule.Days),
		})
	}
	return infos
}

// formatDuration renders a day count as whole days, weeks, months or years
func formatDuration(days int) string {
	switch {
	case days == 1:
		return "1 day"
	case days < 7:
		return fmt.Sprintf("%d days", days)
	case days < 30:
		return plural(days/7, "week")
	case days < 365:
		return plural(days/30, "month")
	default:
		return plural(days/365, "year")
	}
}

func plural(n int, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss", n, unit)
	}
	return fmt.Sprintf("%d %s", n, unit)
}
