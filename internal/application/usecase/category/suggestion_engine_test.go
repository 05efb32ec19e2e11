package category

import (
	"testing"

	"github.com/finance-tracker/coach/internal/domain/entity"
	"github.com/finance-tracker/coach/internal/domain/valueobject"
)

func expenseCatalog(exclude ...string) []*entity.Category {
	var categories []*entity.Category
	for _, c := range entity.DefaultCategories() {
		if c.Type != entity.CategoryTypeExpense {
			continue
		}
		skip := false
		for _, name := range exclude {
			if c.HasName(name) {
				skip = true
			}
		}
		if !skip {
			categories = append(categories, c)
		}
	}
	return categories
}

func TestSuggestionEngine_Suggest(t *testing.T) {
	engine := NewSuggestionEngine(nil)

	tests := []struct {
		name        string
		description string
		available   []*entity.Category
		want        string
	}{
		{name: "restaurant keyword", description: "Dinner at the cafe", available: expenseCatalog(), want: "Food & Dining"},
		{name: "case-insensitive", description: "NETFLIX subscription", available: expenseCatalog(), want: "Entertainment"},
		{name: "ride hailing", description: "Uber ride", available: expenseCatalog(), want: "Transportation"},
		{name: "utilities", description: "Gas bill", available: expenseCatalog(), want: "Bills & Utilities"},
		{name: "education", description: "College tuition fee", available: expenseCatalog(), want: "Education"},
		{name: "first table entry wins", description: "food shop", available: expenseCatalog(), want: "Food & Dining"},
		{name: "absent canonical category keeps scanning", description: "lunch at mall", available: expenseCatalog("Food & Dining"), want: "Shopping"},
		{name: "absent canonical category with no later match", description: "lunch break", available: expenseCatalog("Food & Dining"), want: ""},
		{name: "delivery app", description: "Dinner at Zomato tonight", available: expenseCatalog(), want: "Food & Dining"},
		{name: "below minimum length", description: "xk", available: expenseCatalog(), want: ""},
		{name: "no keyword", description: "random words", available: expenseCatalog(), want: ""},
		{name: "too short even with keyword", description: " bus ", available: expenseCatalog(), want: ""},
		{name: "empty description", description: "", available: expenseCatalog(), want: ""},
		{name: "empty catalog", description: "Amazon order", available: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Suggest(tt.description, tt.available)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("Suggest(%q) = %q, want no suggestion", tt.description, got.Name)
				}
				return
			}
			if got == nil {
				t.Fatalf("Suggest(%q) = nil, want %q", tt.description, tt.want)
			}
			if got.Name != tt.want {
				t.Errorf("Suggest(%q) = %q, want %q", tt.description, got.Name, tt.want)
			}
		})
	}
}

func TestSuggestionEngine_CustomTable(t *testing.T) {
	engine := NewSuggestionEngine([]valueobject.CategoryKeywords{
		{CategoryName: "Salary", Keywords: []string{" PAYROLL "}},
	})
	income := []*entity.Category{
		entity.NewCategory("Salary", entity.CategoryTypeIncome, "", ""),
	}

	got := engine.Suggest("ACME payroll March", income)
	if got == nil || got.Name != "Salary" {
		t.Fatalf("expected Salary, got %v", got)
	}
	if engine.Suggest("Dinner at the cafe", expenseCatalog()) != nil {
		t.Error("custom table must not fall back to default keywords")
	}
}
