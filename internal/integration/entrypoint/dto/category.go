package dto

import (
	"time"

	"github.com/finance-tracker/coach/internal/application/usecase/category"
)

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// SuggestCategoryResponse carries the suggestion; Category is null when nothing matched.
type SuggestCategoryResponse struct {
	Category *CategoryResponse `json:"category"`
}

// ToCategoryResponse converts a CategoryOutput to a CategoryResponse DTO.
func ToCategoryResponse(c *category.CategoryOutput) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Type:      string(c.Type),
		Icon:      c.Icon,
		Color:     c.Color,
		CreatedAt: c.CreatedAt,
	}
}

// ToCategoryListResponse converts category outputs to a list response.
func ToCategoryListResponse(categories []*category.CategoryOutput) CategoryListResponse {
	response := CategoryListResponse{
		Categories: make([]CategoryResponse, 0, len(categories)),
	}
	for _, c := range categories {
		response.Categories = append(response.Categories, ToCategoryResponse(c))
	}
	return response
}

// ToSuggestCategoryResponse converts a suggestion to its response.
func ToSuggestCategoryResponse(output *category.SuggestCategoryOutput) SuggestCategoryResponse {
	if output.Category == nil {
		return SuggestCategoryResponse{}
	}
	response := ToCategoryResponse(output.Category)
	return SuggestCategoryResponse{Category: &response}
}
