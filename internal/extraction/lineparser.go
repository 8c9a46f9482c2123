package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// linePatterns are the receipt line shapes the heuristic parser understands,
// tried in priority order. The shapes overlap ("Milk - 10 - 3.99" could
// partially satisfy a looser rule), so order matters.
var linePatterns = []*regexp.Regexp{
	// Name Quantity Price (e.g. "Milk 10 3.99")
	regexp.MustCompile(`^(.+?)\s+(\d+)\s+\$?(\d+\.?\d*)$`),

	// Name x Quantity @ Price (e.g. "Milk x 10 @ 3.99")
	regexp.MustCompile(`^(.+?)\s+x\s*(\d+)\s*@\s*\$?(\d+\.?\d*)$`),

	// Quantity x Name @ Price (e.g. "10 x Milk @ 3.99")
	regexp.MustCompile(`^(\d+)\s*x\s*(.+?)\s*@\s*\$?(\d+\.?\d*)$`),

	// Name - Quantity - Price (e.g. "Milk - 10 - 3.99")
	regexp.MustCompile(`^(.+?)\s*-\s*(\d+)\s*-\s*\$?(\d+\.?\d*)$`),

	// Name Qty: Quantity Price: Price
	regexp.MustCompile(`^(.+?)\s+[Qq]ty:?\s*(\d+)\s+[Pp]rice:?\s*\$?(\d+\.?\d*)$`),
}

// qtyFirstPattern is the only shape whose first captured group is the
// quantity; all other shapes capture the name first.
const qtyFirstPattern = 2

// ParseLine extracts a line item from a single line of recognized text.
// Blank lines, headers, store names and totals are expected to match no
// shape; the second return value is false for those and the caller drops
// them silently.
func ParseLine(text string) (*LineItem, bool) {
	trimmed := strings.TrimSpace(text)

	for idx, pattern := range linePatterns {
		match := pattern.FindStringSubmatch(trimmed)
		if match == nil {
			continue
		}

		nameGroup, qtyGroup := 1, 2
		if idx == qtyFirstPattern {
			nameGroup, qtyGroup = 2, 1
		}

		quantity, err := strconv.Atoi(match[qtyGroup])
		if err != nil {
			return nil, false
		}
		price, err := strconv.ParseFloat(match[3], 64)
		if err != nil {
			return nil, false
		}

		name := strings.TrimSpace(match[nameGroup])
		return &LineItem{
			Name:     name,
			Quantity: quantity,
			Price:    price,
			Category: Categorize(name),
		}, true
	}

	return nil, false
}
