// Package valueobject contains domain value objects for the finance coach.
package valueobject

// MinSuggestionLength is the shortest trimmed description that triggers a suggestion.
const MinSuggestionLength = 4

// CategoryKeywords binds a canonical category name to lowercase description fragments.
type CategoryKeywords struct {
	CategoryName string
	Keywords     []string
}

// DefaultCategoryKeywords returns the keyword table in match priority order.
func DefaultCategoryKeywords() []CategoryKeywords {
	return []CategoryKeywords{
		{CategoryName: "Food & Dining", Keywords: []string{"restaurant", "cafe", "food", "zomato", "swiggy", "dinner", "lunch"}},
		{CategoryName: "Shopping", Keywords: []string{"amazon", "flipkart", "store", "mall", "shop"}},
		{CategoryName: "Transportation", Keywords: []string{"uber", "ola", "petrol", "fuel", "metro", "bus"}},
		{CategoryName: "Entertainment", Keywords: []string{"movie", "cinema", "netflix", "spotify", "game"}},
		{CategoryName: "Healthcare", Keywords: []string{"hospital", "pharmacy", "doctor", "medical", "clinic"}},
		{CategoryName: "Bills & Utilities", Keywords: []string{"electricity", "water", "gas", "internet", "phone"}},
		{CategoryName: "Education", Keywords: []string{"tuition", "school", "course", "college", "books"}},
	}
}
