package extraction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// rawTextPreviewLimit bounds the raw text echoed back in results
const rawTextPreviewLimit = 500

// Pipeline coordinates text extraction and the ordered strategy chain. Its
// contract is to always return a usable, non-empty result: each stage trades
// precision for availability as the previous one degrades.
type Pipeline struct {
	extractor  TextExtractor
	strategies []Strategy
}

// NewPipeline creates a pipeline that tries the given strategies in order
func NewPipeline(extractor TextExtractor, strategies ...Strategy) *Pipeline {
	return &Pipeline{
		extractor:  extractor,
		strategies: strategies,
	}
}

// ExtractItems turns an uploaded bill image into structured line items.
// The only hard failure is malformed input (a zero-byte upload); every
// downstream failure is absorbed by falling through to the next strategy
// and, ultimately, to the demo item set.
func (p *Pipeline) ExtractItems(ctx context.Context, imageData []byte, contentType string) (*ExtractionResult, error) {
	if len(imageData) == 0 {
		return nil, fmt.Errorf("empty image upload")
	}

	extracted := p.extractor.Extract(imageData, contentType)
	rawText := strings.TrimSpace(extracted.Text)

	if !extracted.Success || rawText == "" {
		if extracted.Error != "" {
			slog.Warn("Text extraction failed", "error", extracted.Error)
		}
		result := demoResult("No text detected, using demo data")
		result.RawText = "No text detected in image"
		return result, nil
	}

	for _, strategy := range p.strategies {
		items, err := strategy.Attempt(ctx, extracted)
		if err != nil {
			slog.Warn("Extraction strategy failed, falling through",
				"strategy", strategy.Name(),
				"error", err,
			)
			continue
		}
		if len(items) == 0 {
			continue
		}

		slog.Info("Extracted items from bill",
			"strategy", strategy.Name(),
			"items", len(items),
		)
		return &ExtractionResult{
			Success:       true,
			Items:         items,
			TotalItems:    len(items),
			OCRConfidence: extracted.Confidence,
			RawText:       preview(rawText),
			Source:        strategy.Name(),
			ParsedBy:      strategy.Name(),
			Message:       fmt.Sprintf("Successfully extracted %d items from bill", len(items)),
		}, nil
	}

	result := demoResult("Could not parse items from text, using demo data")
	result.RawText = preview(rawText)
	return result, nil
}

// Close releases the extractor and any strategy-held resources
func (p *Pipeline) Close() error {
	return p.extractor.Close()
}

// demoResult builds the always-available fallback result. Confidence is
// reported as zero on this path regardless of what the extractor measured.
func demoResult(message string) *ExtractionResult {
	items := demoItems()
	return &ExtractionResult{
		Success:       true,
		Items:         items,
		TotalItems:    len(items),
		OCRConfidence: 0,
		Source:        SourceDemo,
		DemoMode:      true,
		Message:       message,
	}
}

// preview truncates without splitting a multi-byte rune
func preview(text string) string {
	if len(text) <= rawTextPreviewLimit {
		return text
	}
	cut := rawTextPreviewLimit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
