package extraction

import (
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Word-level results at or below this confidence are discarded before line
// reconstruction. Low-confidence tokens corrupt lines more than they help.
const wordConfidenceFloor = 30

// Tesseract implements the TextExtractor interface using the Tesseract engine
type Tesseract struct {
	language string
}

// NewTesseract creates a new Tesseract text extractor
func NewTesseract(language string) *Tesseract {
	if language == "" {
		language = "eng"
	}
	return &Tesseract{language: language}
}

// Extract recognizes all text in an image and reconstructs a line-segmented
// view. A fresh recognizer client is used per call so concurrent extractions
// need no coordination.
func (t *Tesseract) Extract(imageData []byte, contentType string) *ExtractedText {
	pngData, err := prepareImageData(imageData, contentType)
	if err != nil {
		return extractionFailure(err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return extractionFailure(err)
	}
	if err := client.SetImageFromBytes(pngData); err != nil {
		return extractionFailure(err)
	}

	text, err := client.Text()
	if err != nil {
		return extractionFailure(err)
	}

	boxes, err := client.GetBoundingBoxesVerbose()
	if err != nil {
		return extractionFailure(err)
	}

	return &ExtractedText{
		Success:    true,
		Text:       text,
		Lines:      groupLines(boxes),
		Confidence: averageConfidence(boxes),
	}
}

// Close releases recognizer resources (no-op, clients are per-call)
func (t *Tesseract) Close() error {
	return nil
}

// extractionFailure converts a recognizer or decode error into a soft
// failure. The pipeline treats it identically to "no text found".
func extractionFailure(err error) *ExtractedText {
	return &ExtractedText{
		Success:    false,
		Error:      err.Error(),
		Text:       "",
		Lines:      []Line{},
		Confidence: 0,
	}
}

// groupLines reconstructs lines from word boxes. Words accumulate until the
// recognizer's layout block index changes, at which point the buffer is
// flushed as one line.
func groupLines(boxes []gosseract.BoundingBoxVerbose) []Line {
	lines := make([]Line, 0)

	var words []string
	var confidences []float64
	currentBlock := -1

	flush := func() {
		text := strings.TrimSpace(strings.Join(words, " "))
		if text != "" {
			lines = append(lines, Line{
				Text:       text,
				Confidence: int(mean(confidences)),
			})
		}
		words = words[:0]
		confidences = confidences[:0]
	}

	for _, box := range boxes {
		if box.Confidence <= wordConfidenceFloor {
			continue
		}

		if box.BlockNum != currentBlock {
			if len(words) > 0 {
				flush()
			}
			currentBlock = box.BlockNum
		}

		word := strings.TrimSpace(box.Word)
		if word != "" {
			words = append(words, word)
			confidences = append(confidences, box.Confidence)
		}
	}
	if len(words) > 0 {
		flush()
	}

	return lines
}

// averageConfidence is the arithmetic mean of all word confidences. The
// recognizer emits -1 for non-text regions; those are excluded from the
// mean, not treated as zero.
func averageConfidence(boxes []gosseract.BoundingBoxVerbose) float64 {
	confidences := make([]float64, 0, len(boxes))
	for _, box := range boxes {
		if box.Confidence >= 0 {
			confidences = append(confidences, box.Confidence)
		}
	}
	return mean(confidences)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
