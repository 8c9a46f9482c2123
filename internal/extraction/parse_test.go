package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("parseItemsJSON", func() {
	var (
		jsonInput string
		items     []LineItem
		err       error
	)

	JustBeforeEach(func() {
		items, err = parseItemsJSON(jsonInput)
	})

	When("parsing a valid JSON array", func() {
		BeforeEach(func() {
			jsonInput = `[{"name": "Milk 1L", "quantity": 2, "price": 3.99, "category": "Dairy"}]`
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should parse one item", func() {
			Expect(items).To(HaveLen(1))
		})

		It("should parse the fields correctly", func() {
			Expect(items[0].Name).To(Equal("Milk 1L"))
			Expect(items[0].Quantity).To(Equal(2))
			Expect(items[0].Price).To(Equal(3.99))
			Expect(items[0].Category).To(Equal(CategoryDairy))
		})
	})

	When("parsing JSON with markdown code blocks", func() {
		BeforeEach(func() {
			jsonInput = "```json\n[{\"name\": \"Bread\", \"quantity\": 1, \"price\": 2.49, \"category\": \"Bakery\"}]\n```"
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should parse the item", func() {
			Expect(items).To(HaveLen(1))
			Expect(items[0].Name).To(Equal("Bread"))
		})
	})

	When("the array is wrapped in prose", func() {
		BeforeEach(func() {
			jsonInput = `Here are the items you asked for: [{"name": "Eggs", "quantity": 1, "price": 4.99, "category": "Dairy"}] Let me know if you need anything else.`
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("should salvage the embedded array", func() {
			Expect(items).To(HaveLen(1))
			Expect(items[0].Name).To(Equal("Eggs"))
		})
	})

	When("an object is missing the name key", func() {
		BeforeEach(func() {
			jsonInput = `[{"quantity": 2, "price": 1.00}, {"name": "Rice", "quantity": 1, "price": 5.00, "category": "Packaged"}]`
		})

		It("should drop the nameless object", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].Name).To(Equal("Rice"))
		})
	})

	When("fields are missing or have the wrong type", func() {
		BeforeEach(func() {
			jsonInput = `[{"name": "Mystery Item", "quantity": "three", "price": null}]`
		})

		It("should apply the defaults", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].Quantity).To(Equal(1))
			Expect(items[0].Price).To(Equal(0.0))
			Expect(items[0].Category).To(Equal(CategoryOther))
		})
	})

	When("numeric fields arrive as strings", func() {
		BeforeEach(func() {
			jsonInput = `[{"name": "Juice", "quantity": "3", "price": "2.50", "category": "Beverages"}]`
		})

		It("should coerce them", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(items[0].Quantity).To(Equal(3))
			Expect(items[0].Price).To(Equal(2.50))
		})
	})

	When("parsing an empty array", func() {
		BeforeEach(func() {
			jsonInput = `[]`
		})

		It("should return zero items without error", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(BeEmpty())
		})
	})

	When("the response contains no array at all", func() {
		BeforeEach(func() {
			jsonInput = `I could not find any items on this receipt.`
		})

		It("returns the error", func() {
			Expect(err).To(HaveOccurred())
		})
	})
})
