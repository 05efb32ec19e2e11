package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/coach/internal/application/usecase/category"
	"github.com/finance-tracker/coach/internal/domain/entity"
	"github.com/finance-tracker/coach/internal/integration/entrypoint/dto"
)

// CategoryController handles the read-only category catalog.
type CategoryController struct {
	listUseCase    *category.ListCategoriesUseCase
	suggestUseCase *category.SuggestCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	suggestUseCase *category.SuggestCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:    listUseCase,
		suggestUseCase: suggestUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	input := category.ListCategoriesInput{}
	if typeParam := ctx.Query("type"); typeParam != "" {
		categoryType := entity.CategoryType(typeParam)
		input.CategoryType = &categoryType
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// Suggest handles GET /categories/suggest requests.
func (c *CategoryController) Suggest(ctx *gin.Context) {
	input := category.SuggestCategoryInput{
		Description:  ctx.Query("description"),
		CategoryType: entity.CategoryType(ctx.DefaultQuery("type", string(entity.CategoryTypeExpense))),
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSuggestCategoryResponse(output))
}
