package extraction

// Line is one reconstructed line of recognized text.
type Line struct {
	Text       string `json:"text"`
	Confidence int    `json:"confidence"`
}

// ExtractedText is the output of one text extraction pass over an image.
// A failed pass is reported as Success=false with the error message attached,
// never as a Go error: the pipeline treats it the same as "no text found".
type ExtractedText struct {
	Success    bool    `json:"success"`
	Text       string  `json:"text"`
	Lines      []Line  `json:"lines"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error,omitempty"`
}

// TextExtractor turns raw image bytes into recognized text
type TextExtractor interface {
	// Extract recognizes text in an image. It never fails hard; decode and
	// recognizer errors are reported inside the returned ExtractedText.
	Extract(imageData []byte, contentType string) *ExtractedText

	// Close releases recognizer resources
	Close() error
}

// LineItem is one structured grocery entry extracted from a bill.
// Every parsing strategy produces items in this shape.
type LineItem struct {
	Name       string        `json:"name"`
	Quantity   int           `json:"quantity"`
	Price      float64       `json:"price"`
	Category   CategoryLabel `json:"category"`
	Confidence int           `json:"confidence,omitempty"`
}

// Provenance values for ExtractionResult.Source
const (
	SourceLLM   = "llm"
	SourceRegex = "regex"
	SourceDemo  = "demo"
)

// ExtractionResult is the contract returned to callers of the pipeline.
// TotalItems always equals len(Items), and Items is never empty: when every
// strategy is exhausted the demo set is returned with DemoMode set.
type ExtractionResult struct {
	Success       bool       `json:"success"`
	Items         []LineItem `json:"items"`
	TotalItems    int        `json:"total_items"`
	OCRConfidence float64    `json:"ocr_confidence"`
	RawText       string     `json:"raw_text"`
	ParsedBy      string     `json:"parsed_by,omitempty"`
	DemoMode      bool       `json:"demo_mode,omitempty"`
	Message       string     `json:"message"`

	// Source records which method produced the items (llm, regex or demo).
	// ParsedBy carries the same value on the wire except for the demo path,
	// where it is omitted and DemoMode is set instead.
	Source string `json:"-"`
}
