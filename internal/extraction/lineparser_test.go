package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseLine", func() {
	var (
		input string
		item  *LineItem
		ok    bool
	)

	JustBeforeEach(func() {
		item, ok = ParseLine(input)
	})

	When("parsing 'Name Quantity Price'", func() {
		BeforeEach(func() {
			input = "Milk 10 3.99"
		})

		It("should match", func() {
			Expect(ok).To(BeTrue())
		})

		It("should extract the fields", func() {
			Expect(item.Name).To(Equal("Milk"))
			Expect(item.Quantity).To(Equal(10))
			Expect(item.Price).To(Equal(3.99))
		})

		It("should categorize the item", func() {
			Expect(item.Category).To(Equal(CategoryDairy))
		})
	})

	When("parsing a price with a dollar sign", func() {
		BeforeEach(func() {
			input = "Bread White 2 $2.49"
		})

		It("should strip the dollar sign", func() {
			Expect(ok).To(BeTrue())
			Expect(item.Name).To(Equal("Bread White"))
			Expect(item.Price).To(Equal(2.49))
		})
	})

	When("parsing 'Name x Quantity @ Price'", func() {
		BeforeEach(func() {
			input = "Eggs x 12 @ 4.99"
		})

		It("should extract the fields", func() {
			Expect(ok).To(BeTrue())
			Expect(item.Name).To(Equal("Eggs"))
			Expect(item.Quantity).To(Equal(12))
			Expect(item.Price).To(Equal(4.99))
		})
	})

	When("parsing 'Quantity x Name @ Price'", func() {
		BeforeEach(func() {
			input = "10 x Rice @ 45.00"
		})

		It("should put the leading number in quantity, not name", func() {
			Expect(ok).To(BeTrue())
			Expect(item.Name).To(Equal("Rice"))
			Expect(item.Quantity).To(Equal(10))
			Expect(item.Price).To(Equal(45.00))
		})
	})

	When("parsing 'Name - Quantity - Price'", func() {
		BeforeEach(func() {
			input = "Tomatoes - 5 - 2.99"
		})

		It("should extract the fields", func() {
			Expect(ok).To(BeTrue())
			Expect(item.Name).To(Equal("Tomatoes"))
			Expect(item.Quantity).To(Equal(5))
			Expect(item.Price).To(Equal(2.99))
		})
	})

	When("parsing 'Name Qty: Quantity Price: Price'", func() {
		BeforeEach(func() {
			input = "Chicken Breast Qty: 2 Price: $8.50"
		})

		It("should extract the fields", func() {
			Expect(ok).To(BeTrue())
			Expect(item.Name).To(Equal("Chicken Breast"))
			Expect(item.Quantity).To(Equal(2))
			Expect(item.Price).To(Equal(8.50))
		})
	})

	When("parsing a line with surrounding whitespace", func() {
		BeforeEach(func() {
			input = "   Butter 1 5.25   "
		})

		It("should trim before matching", func() {
			Expect(ok).To(BeTrue())
			Expect(item.Name).To(Equal("Butter"))
		})
	})

	When("parsing a whole-number price", func() {
		BeforeEach(func() {
			input = "Water 6 12"
		})

		It("should accept it", func() {
			Expect(ok).To(BeTrue())
			Expect(item.Price).To(Equal(12.0))
		})
	})

	When("parsing a header line", func() {
		BeforeEach(func() {
			input = "Thank you for shopping"
		})

		It("should not match", func() {
			Expect(ok).To(BeFalse())
			Expect(item).To(BeNil())
		})
	})

	When("parsing an empty line", func() {
		BeforeEach(func() {
			input = "   "
		})

		It("should not match", func() {
			Expect(ok).To(BeFalse())
		})
	})

	When("parsing a bare total line", func() {
		BeforeEach(func() {
			input = "TOTAL"
		})

		It("should not match", func() {
			Expect(ok).To(BeFalse())
		})
	})
})

var _ = Describe("Categorize", func() {
	DescribeTable("maps item names to categories",
		func(name string, expected CategoryLabel) {
			Expect(Categorize(name)).To(Equal(expected))
		},
		Entry("milk", "Whole Milk 1L", CategoryDairy),
		Entry("eggs", "Eggs 12pk", CategoryDairy),
		Entry("bread", "Sourdough Bread", CategoryBakery),
		Entry("tomatoes", "Roma Tomatoes", CategoryProduce),
		Entry("chicken", "Chicken Thighs", CategoryMeat),
		Entry("juice", "Orange Juice", CategoryProduce),
		Entry("cola", "Cola 2L", CategoryBeverages),
		Entry("chips", "Potato Chips", CategoryProduce),
		Entry("chocolate", "Dark Chocolate Bar", CategorySnacks),
		Entry("canned goods", "Beans Can", CategoryPackaged),
		Entry("unrecognized", "Dish Soap", CategoryOther),
	)

	It("is case insensitive", func() {
		Expect(Categorize("CHEESE SLICES")).To(Equal(CategoryDairy))
	})

	It("prefers food identity over packaging words", func() {
		Expect(Categorize("Milk Jar")).To(Equal(CategoryDairy))
	})
})
