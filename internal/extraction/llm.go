package extraction

import (
	"context"
	"time"
)

// structuringTimeout bounds the remote structuring call. On timeout the
// pipeline proceeds to the next fallback stage; retries are not part of the
// design.
const structuringTimeout = 30 * time.Second

// structuringPrompt is the shared prompt used by all structuring providers.
// It constrains the model to the closed category vocabulary and to a bare
// JSON array.
const structuringPrompt = `You are a grocery bill parser. Parse the following OCR-extracted text from a grocery bill/invoice and extract all items with their details.

OCR Text:
%s

Extract each item and return them in the following JSON format ONLY (no additional text):
[
  {
    "name": "product name",
    "quantity": number,
    "price": number,
    "category": "category name"
  }
]

Categories should be one of: Dairy, Bakery, Produce, Meat, Beverages, Snacks, Packaged, Other

Rules:
1. Extract ONLY actual product items (ignore headers, footers, totals, store info)
2. If quantity is not mentioned, use 1
3. Price should be the unit price or total price per item
4. Categorize items appropriately
5. Return ONLY the JSON array, no other text

JSON Array:`

// Structurer is the remote structuring call: it turns raw bill text into a
// list of line items via a language model.
type Structurer interface {
	// StructureItems sends raw text to the model and parses its response.
	// Network, timeout and malformed-response failures are returned as
	// errors; callers count them as zero structured items.
	StructureItems(ctx context.Context, rawText string) ([]LineItem, error)

	// Close releases provider resources
	Close() error
}
