package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/furoku/ultimate-todo-app/internal/models"
	"github.com/furoku/ultimate-todo-app/internal/repositories"
)

// CategoryService はカテゴリ関連のビジネスロジックを扱います。
type CategoryService struct {
	categoryRepo *repositories.CategoryRepository
	todoRepo     *repositories.TodoRepository
	logger       zerolog.Logger
}

// NewCategoryService は新しいCategoryServiceを作成します。
func NewCategoryService(
	categoryRepo *repositories.CategoryRepository,
	todoRepo *repositories.TodoRepository,
	logger zerolog.Logger,
) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		todoRepo:     todoRepo,
		logger:       logger,
	}
}

// GetCategories はすべてのカテゴリを名前順で取得します。
func (s *CategoryService) GetCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}

// GetCategoryByID は所属するタスクを含めてカテゴリを取得します。
func (s *CategoryService) GetCategoryByID(ctx context.Context, id string) (*models.CategoryWithTodos, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	todos, err := s.todoRepo.FindByCategoryID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.CategoryWithTodos{Category: *category, Todos: todos}, nil
}

// CreateCategory は新しいカテゴリを作成します。
// 同じ名前のカテゴリが既にある場合は repositories.ErrDuplicateCategoryName を返します。
func (s *CategoryService) CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	if err := validateCategoryName(req.Name); err != nil {
		return nil, err
	}
	color := req.Color
	if color == "" {
		color = models.DefaultCategoryColor
	}
	if err := validateColor(color); err != nil {
		return nil, err
	}

	if err := s.ensureNameAvailable(ctx, req.Name, ""); err != nil {
		return nil, err
	}

	created, err := s.categoryRepo.Create(ctx, &models.Category{Name: req.Name, Color: color})
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("category_id", created.ID).
		Str("name", created.Name).
		Msg("created category")
	return created, nil
}

// UpdateCategory はカテゴリの名前と色を更新します。
// 名前の重複チェックでは自分自身を除外します。
func (s *CategoryService) UpdateCategory(ctx context.Context, id string, req models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := validateCategoryName(*req.Name); err != nil {
			return nil, err
		}
		if err := s.ensureNameAvailable(ctx, *req.Name, id); err != nil {
			return nil, err
		}
		category.Name = *req.Name
	}
	if req.Color != nil && *req.Color != "" {
		if err := validateColor(*req.Color); err != nil {
			return nil, err
		}
		category.Color = *req.Color
	}

	updated, err := s.categoryRepo.Update(ctx, category)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("category_id", updated.ID).
		Msg("updated category")
	return updated, nil
}

// DeleteCategory は所属するタスクを未分類に戻してからカテゴリを削除します。
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	detached, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.logger.Info().
		Str("category_id", id).
		Int64("detached_todos", detached).
		Msg("deleted category")
	return nil
}

func (s *CategoryService) ensureNameAvailable(ctx context.Context, name, excludeID string) error {
	_, err := s.categoryRepo.FindConflictingName(ctx, name, excludeID)
	switch {
	case err == nil:
		return repositories.ErrDuplicateCategoryName
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return nil
	default:
		return err
	}
}

func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCategory)
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidCategory, maxCategoryNameLength)
	}
	return nil
}

func validateColor(color string) error {
	if err := validate.Var(color, "hexcolor"); err != nil {
		return fmt.Errorf("%w: color must be a hex color", ErrInvalidCategory)
	}
	return nil
}
