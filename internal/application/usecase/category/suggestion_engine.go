package category

import (
	"strings"

	"github.com/finance-tracker/coach/internal/domain/entity"
	"github.com/finance-tracker/coach/internal/domain/valueobject"
)

// SuggestionEngine proposes a category from a free-text description.
// It is pure and safe for concurrent use.
type SuggestionEngine struct {
	keywords []valueobject.CategoryKeywords
}

// NewSuggestionEngine creates an engine over the given keyword table.
// A nil table falls back to the default table.
func NewSuggestionEngine(keywords []valueobject.CategoryKeywords) *SuggestionEngine {
	if keywords == nil {
		keywords = valueobject.DefaultCategoryKeywords()
	}
	normalized := make([]valueobject.CategoryKeywords, len(keywords))
	for i, entry := range keywords {
		fragments := make([]string, 0, len(entry.Keywords))
		for _, keyword := range entry.Keywords {
			if k := strings.ToLower(strings.TrimSpace(keyword)); k != "" {
				fragments = append(fragments, k)
			}
		}
		normalized[i] = valueobject.CategoryKeywords{CategoryName: entry.CategoryName, Keywords: fragments}
	}
	return &SuggestionEngine{keywords: normalized}
}

// Suggest returns the first category of available whose canonical name has a
// keyword contained in description, or nil when nothing matches.
func (e *SuggestionEngine) Suggest(description string, available []*entity.Category) *entity.Category {
	trimmed := strings.TrimSpace(description)
	if len([]rune(trimmed)) < valueobject.MinSuggestionLength {
		return nil
	}
	text := strings.ToLower(trimmed)

	for _, entry := range e.keywords {
		if !containsAny(text, entry.Keywords) {
			continue
		}
		// Canonical category may be absent from the offered set; keep scanning.
		for _, category := range available {
			if category != nil && category.HasName(entry.CategoryName) {
				return category
			}
		}
	}
	return nil
}

func containsAny(text string, fragments []string) bool {
	for _, fragment := range fragments {
		if strings.Contains(text, fragment) {
			return true
		}
	}
	return false
}
