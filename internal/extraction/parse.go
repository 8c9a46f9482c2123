package extraction

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// parseItemsJSON parses a model response into line items. Strict parsing is
// tried first; if the model wrapped the array in prose or code fences, a
// bracket-scanning salvage parse (first '[' to last ']') is attempted.
func parseItemsJSON(text string) ([]LineItem, error) {
	text = strings.TrimSpace(text)

	// Remove markdown code blocks if present
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw []map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		startIdx := strings.Index(text, "[")
		endIdx := strings.LastIndex(text, "]")
		if startIdx == -1 || endIdx <= startIdx {
			return nil, fmt.Errorf("no JSON array found in response")
		}
		if err := json.Unmarshal([]byte(text[startIdx:endIdx+1]), &raw); err != nil {
			return nil, fmt.Errorf("unmarshaling items: %w", err)
		}
	}

	items := make([]LineItem, 0, len(raw))
	for _, obj := range raw {
		// Objects without a name key are dropped, not defaulted
		if _, ok := obj["name"]; !ok {
			continue
		}
		items = append(items, LineItem{
			Name:     coerceString(obj["name"], "Unknown"),
			Quantity: coerceInt(obj["quantity"], 1),
			Price:    coerceFloat(obj["price"], 0.0),
			Category: CategoryLabel(coerceString(obj["category"], string(CategoryOther))),
		})
	}

	return items, nil
}

func coerceString(v any, fallback string) string {
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	return s
}

func coerceInt(v any, fallback int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
	}
	return fallback
}

func coerceFloat(v any, fallback float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return parsed
		}
	}
	return fallback
}
