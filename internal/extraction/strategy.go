package extraction

import (
	"context"
	"strings"
)

// Strategy is one attempt at turning extracted text into line items. The
// pipeline walks an ordered chain of strategies until one yields a non-empty
// result; an error or an empty result both mean "try the next one".
type Strategy interface {
	// Name identifies the strategy in result provenance and logs
	Name() string

	// Attempt produces line items from extracted text. Zero items is not an
	// error; it signals the pipeline to fall through.
	Attempt(ctx context.Context, extracted *ExtractedText) ([]LineItem, error)
}

// LLMStrategy structures extracted text through a remote language model
type LLMStrategy struct {
	structurer Structurer
}

// NewLLMStrategy creates a strategy backed by the given structurer
func NewLLMStrategy(structurer Structurer) *LLMStrategy {
	return &LLMStrategy{structurer: structurer}
}

// Name identifies the strategy
func (s *LLMStrategy) Name() string { return SourceLLM }

// Attempt sends the raw text to the structuring call. Remote failures
// surface as errors and the pipeline degrades to the next strategy; they
// never propagate to the caller.
func (s *LLMStrategy) Attempt(ctx context.Context, extracted *ExtractedText) ([]LineItem, error) {
	return s.structurer.StructureItems(ctx, extracted.Text)
}

// HeuristicStrategy runs the pattern-based line parser over every extracted
// line, in order, collecting the lines that match a known receipt shape.
type HeuristicStrategy struct{}

// Name identifies the strategy
func (HeuristicStrategy) Name() string { return SourceRegex }

// Attempt parses the line-segmented view first; when no line yields an item
// it falls back to splitting the full recognized text on newlines.
func (HeuristicStrategy) Attempt(_ context.Context, extracted *ExtractedText) ([]LineItem, error) {
	items := make([]LineItem, 0)

	for _, line := range extracted.Lines {
		if item, ok := ParseLine(line.Text); ok {
			item.Confidence = line.Confidence
			items = append(items, *item)
		}
	}

	if len(items) == 0 {
		for _, line := range strings.Split(extracted.Text, "\n") {
			if item, ok := ParseLine(line); ok {
				items = append(items, *item)
			}
		}
	}

	return items, nil
}
