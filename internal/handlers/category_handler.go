package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/furoku/ultimate-todo-app/internal/models"
	"github.com/furoku/ultimate-todo-app/internal/repositories"
	"github.com/furoku/ultimate-todo-app/internal/services"
)

// CategoryHandler はカテゴリ関連のハンドラーを管理します。
type CategoryHandler struct {
	categoryService *services.CategoryService
	logger          zerolog.Logger
}

// NewCategoryHandler は新しいCategoryHandlerを作成します。
func NewCategoryHandler(categoryService *services.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, logger: logger}
}

// GetCategoriesHandler はカテゴリ一覧を名前順で返します。
func (h *CategoryHandler) GetCategoriesHandler(c *gin.Context) {
	categories, err := h.categoryService.GetCategories(c.Request.Context())
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to fetch categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategoryByIDHandler は所属するタスクを含めてカテゴリを返します。
func (h *CategoryHandler) GetCategoryByIDHandler(c *gin.Context) {
	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err, "Failed to fetch category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategoryHandler は新しいカテゴリを作成します。
func (h *CategoryHandler) CreateCategoryHandler(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind category payload")
		badRequest(c, bindErrorDetails(err))
		return
	}

	created, err := h.categoryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateCategoryHandler はカテゴリの名前と色を更新します。
func (h *CategoryHandler) UpdateCategoryHandler(c *gin.Context) {
	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind category payload")
		badRequest(c, bindErrorDetails(err))
		return
	}

	updated, err := h.categoryService.UpdateCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteCategoryHandler はカテゴリを削除します。所属していたタスクは未分類になります。
func (h *CategoryHandler) DeleteCategoryHandler(c *gin.Context) {
	if err := h.categoryService.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err, "Failed to delete category")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) handleError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, services.ErrInvalidCategory):
		badRequest(c, err.Error())
	case errors.Is(err, repositories.ErrDuplicateCategoryName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category with this name already exists"})
	case errors.Is(err, repositories.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
	default:
		h.logger.Error().
			Err(err).
			Str("category_id", c.Param("id")).
			Msg(message)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
