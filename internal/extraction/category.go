package extraction

import "strings"

// CategoryLabel is one of the fixed labels every line item normalizes into
type CategoryLabel string

const (
	CategoryDairy     CategoryLabel = "Dairy"
	CategoryBakery    CategoryLabel = "Bakery"
	CategoryProduce   CategoryLabel = "Produce"
	CategoryMeat      CategoryLabel = "Meat"
	CategoryBeverages CategoryLabel = "Beverages"
	CategorySnacks    CategoryLabel = "Snacks"
	CategoryPackaged  CategoryLabel = "Packaged"
	CategoryOther     CategoryLabel = "Other"
)

// categoryKeywords is checked in order; the first group with any keyword
// contained in the lowercased name wins. Food-identity keywords outrank
// packaging keywords, so "Milk Jar" lands in Dairy, not Packaged.
var categoryKeywords = []struct {
	label    CategoryLabel
	keywords []string
}{
	{CategoryDairy, []string{"milk", "cheese", "yogurt", "butter", "cream", "egg"}},
	{CategoryBakery, []string{"bread", "bun", "cake", "pastry", "cookie", "biscuit"}},
	{CategoryProduce, []string{"tomato", "potato", "onion", "carrot", "lettuce", "fruit",
		"apple", "banana", "orange", "vegetable", "veggie"}},
	{CategoryMeat, []string{"chicken", "beef", "pork", "fish", "meat", "sausage", "bacon"}},
	{CategoryBeverages, []string{"juice", "soda", "water", "coffee", "tea", "drink", "cola"}},
	{CategorySnacks, []string{"chips", "snack", "candy", "chocolate", "crisp"}},
	{CategoryPackaged, []string{"can", "jar", "box", "packet", "pack"}},
}

// Categorize maps a free-text item name to a category label by keyword
// containment. A name matching no group yields CategoryOther.
func Categorize(name string) CategoryLabel {
	nameLower := strings.ToLower(name)

	for _, group := range categoryKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(nameLower, keyword) {
				return group.label
			}
		}
	}
	return CategoryOther
}
