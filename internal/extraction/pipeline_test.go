package extraction

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeExtractor struct {
	result *ExtractedText
	closed bool
}

func (f *fakeExtractor) Extract(imageData []byte, contentType string) *ExtractedText {
	return f.result
}

func (f *fakeExtractor) Close() error {
	f.closed = true
	return nil
}

type fakeStructurer struct {
	items []LineItem
	err   error
	calls int
}

func (f *fakeStructurer) StructureItems(ctx context.Context, rawText string) ([]LineItem, error) {
	f.calls++
	return f.items, f.err
}

func (f *fakeStructurer) Close() error { return nil }

var _ = Describe("Pipeline", func() {
	var (
		extractor  *fakeExtractor
		structurer *fakeStructurer
		pipeline   *Pipeline
		imageData  []byte

		result *ExtractionResult
		err    error
	)

	BeforeEach(func() {
		extractor = &fakeExtractor{result: &ExtractedText{Success: true}}
		structurer = &fakeStructurer{}
		imageData = []byte("fake image bytes")
	})

	JustBeforeEach(func() {
		pipeline = NewPipeline(extractor, NewLLMStrategy(structurer), HeuristicStrategy{})
		result, err = pipeline.ExtractItems(context.Background(), imageData, "image/png")
	})

	When("the upload is empty", func() {
		BeforeEach(func() {
			imageData = nil
			extractor.result = &ExtractedText{Success: true, Text: "Milk 1 3.99"}
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})

	When("no text is detected in the image", func() {
		BeforeEach(func() {
			extractor.result = &ExtractedText{Success: true, Text: "   ", Confidence: 72.5}
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should fall back to demo data", func() {
			Expect(result.DemoMode).To(BeTrue())
			Expect(result.Source).To(Equal(SourceDemo))
			Expect(result.Items).To(HaveLen(4))
			Expect(result.TotalItems).To(Equal(4))
		})

		It("should report zero confidence", func() {
			Expect(result.OCRConfidence).To(Equal(0.0))
		})

		It("should not claim a parsing method", func() {
			Expect(result.ParsedBy).To(BeEmpty())
		})

		It("should explain the raw text", func() {
			Expect(result.RawText).To(Equal("No text detected in image"))
		})
	})

	When("text extraction fails", func() {
		BeforeEach(func() {
			extractor.result = &ExtractedText{Success: false, Error: "decode failed"}
		})

		It("should fall back to demo data without an error", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(result.DemoMode).To(BeTrue())
		})

		It("should not invoke the structurer", func() {
			Expect(structurer.calls).To(BeZero())
		})
	})

	When("the structuring call succeeds", func() {
		BeforeEach(func() {
			extractor.result = &ExtractedText{
				Success:    true,
				Text:       "Milk 1 3.99\nBread 2 2.49",
				Confidence: 88.1,
			}
			structurer.items = []LineItem{
				{Name: "Milk", Quantity: 1, Price: 3.99, Category: CategoryDairy},
			}
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return the structured items", func() {
			Expect(result.Success).To(BeTrue())
			Expect(result.Items).To(HaveLen(1))
			Expect(result.Items[0].Name).To(Equal("Milk"))
		})

		It("should attribute the result to the model", func() {
			Expect(result.Source).To(Equal(SourceLLM))
			Expect(result.ParsedBy).To(Equal(SourceLLM))
			Expect(result.DemoMode).To(BeFalse())
		})

		It("should pass through the measured confidence", func() {
			Expect(result.OCRConfidence).To(Equal(88.1))
		})

		It("should keep item counts consistent", func() {
			Expect(result.TotalItems).To(Equal(len(result.Items)))
		})
	})

	When("the structuring call fails but lines match receipt shapes", func() {
		BeforeEach(func() {
			extractor.result = &ExtractedText{
				Success: true,
				Text:    "GROCERY MART\nMilk 1 3.99\nBread 2 2.49\nTOTAL 6.48",
				Lines: []Line{
					{Text: "GROCERY MART", Confidence: 91},
					{Text: "Milk 1 3.99", Confidence: 85},
					{Text: "Bread 2 2.49", Confidence: 79},
				},
				Confidence: 85.0,
			}
			structurer.err = errors.New("connection refused")
		})

		It("should degrade to heuristic parsing without an error", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Source).To(Equal(SourceRegex))
			Expect(result.ParsedBy).To(Equal(SourceRegex))
		})

		It("should parse the matching lines and skip the rest", func() {
			Expect(result.Items).To(HaveLen(2))
			Expect(result.Items[0].Name).To(Equal("Milk"))
			Expect(result.Items[1].Name).To(Equal("Bread"))
		})

		It("should carry per-line confidence onto the items", func() {
			Expect(result.Items[0].Confidence).To(Equal(85))
			Expect(result.Items[1].Confidence).To(Equal(79))
		})

		It("should not be in demo mode", func() {
			Expect(result.DemoMode).To(BeFalse())
		})
	})

	When("every strategy comes up empty", func() {
		BeforeEach(func() {
			extractor.result = &ExtractedText{
				Success:    true,
				Text:       "An unstructured paragraph with no receipt lines at all.",
				Confidence: 65.0,
			}
			structurer.items = nil
		})

		It("should fall back to demo data", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(result.DemoMode).To(BeTrue())
			Expect(result.Items).To(HaveLen(4))
		})

		It("should echo the recognized text", func() {
			Expect(result.RawText).To(ContainSubstring("unstructured paragraph"))
		})

		It("should report zero confidence on the demo path", func() {
			Expect(result.OCRConfidence).To(Equal(0.0))
		})
	})

	When("the recognized text is very long", func() {
		BeforeEach(func() {
			extractor.result = &ExtractedText{
				Success:    true,
				Text:       strings.Repeat("x", 2000),
				Confidence: 50.0,
			}
		})

		It("should truncate the echoed raw text", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(result.RawText).To(HaveLen(500))
		})
	})

	When("the recognized text is long and multi-byte", func() {
		BeforeEach(func() {
			extractor.result = &ExtractedText{
				Success:    true,
				Text:       strings.Repeat("\u20ac", 400),
				Confidence: 50.0,
			}
		})

		It("should truncate on a rune boundary", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(len(result.RawText)).To(BeNumerically("<=", 500))
			Expect(utf8.ValidString(result.RawText)).To(BeTrue())
		})
	})

	Describe("Close", func() {
		It("closes the extractor", func() {
			p := NewPipeline(extractor)
			Expect(p.Close()).To(Succeed())
			Expect(extractor.closed).To(BeTrue())
		})
	})
})
