package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/furoku/ultimate-todo-app/internal/models"
	"github.com/furoku/ultimate-todo-app/internal/repositories"
)

// TodoService はTodo関連のビジネスロジックを扱います。
type TodoService struct {
	todoRepo     *repositories.TodoRepository
	categoryRepo *repositories.CategoryRepository
	logger       zerolog.Logger
	now          Clock
}

// NewTodoService は新しいTodoServiceを作成します。
func NewTodoService(
	todoRepo *repositories.TodoRepository,
	categoryRepo *repositories.CategoryRepository,
	logger zerolog.Logger,
) *TodoService {
	return &TodoService{
		todoRepo:     todoRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
		now:          defaultClock,
	}
}

// WithClock は現在時刻の取得元を差し替えたTodoServiceを返します。
func (s *TodoService) WithClock(now Clock) *TodoService {
	cp := *s
	cp.now = now
	return &cp
}

// GetTodos はすべてのTodoをカテゴリ付きで取得します。
func (s *TodoService) GetTodos(ctx context.Context) ([]*models.Todo, error) {
	return s.todoRepo.FindAll(ctx)
}

// GetTodoByID は指定IDのTodoを取得します。
func (s *TodoService) GetTodoByID(ctx context.Context, id string) (*models.Todo, error) {
	return s.todoRepo.FindByID(ctx, id)
}

// CreateTodo は新しいTodoを作成します。
// status と priority が省略された場合はそれぞれ TODO と MEDIUM になります。
func (s *TodoService) CreateTodo(ctx context.Context, req models.CreateTodoRequest) (*models.Todo, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}

	todo := &models.Todo{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		CategoryID:  normalizeCategoryID(req.CategoryID),
	}
	if todo.Status == "" {
		todo.Status = models.StatusTodo
	}
	if todo.Priority == "" {
		todo.Priority = models.PriorityMedium
	}
	if err := validateEnums(todo.Status, todo.Priority); err != nil {
		return nil, err
	}
	if req.DueDate != nil {
		todo.DueDate = req.DueDate.TimePtr()
	}
	if todo.Status == models.StatusCompleted {
		now := s.stamp()
		todo.CompletedAt = &now
	}
	if err := s.ensureCategory(ctx, todo.CategoryID); err != nil {
		return nil, err
	}

	created, err := s.todoRepo.Create(ctx, todo)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("todo_id", created.ID).
		Msg("created todo")
	return created, nil
}

// UpdateTodo はリクエストで指定されたフィールドだけを更新します。
//
// completedAt は status から導出されます。
//   - status が COMPLETED で completedAt の指定がなければ現在時刻
//   - status が COMPLETED で completedAt の指定があればその値
//   - status が COMPLETED 以外なら null
//
// status が指定されない場合、completedAt は現在の status が COMPLETED のときだけ変更できます。
func (s *TodoService) UpdateTodo(ctx context.Context, id string, req models.UpdateTodoRequest) (*models.Todo, error) {
	todo, err := s.todoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title.Set {
		if req.Title.Null {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidTodo)
		}
		if err := validateTitle(req.Title.Value); err != nil {
			return nil, err
		}
		todo.Title = req.Title.Value
	}
	if req.Description.Set {
		todo.Description = req.Description.Ptr()
	}
	if req.Status.Set {
		if req.Status.Null || !req.Status.Value.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTodo, req.Status.Value)
		}
		todo.Status = req.Status.Value
	}
	if req.Priority.Set {
		if req.Priority.Null || !req.Priority.Value.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidTodo, req.Priority.Value)
		}
		todo.Priority = req.Priority.Value
	}
	if req.DueDate.Set {
		todo.DueDate = nil
		if d := req.DueDate.Ptr(); d != nil {
			todo.DueDate = d.TimePtr()
		}
	}
	if req.CategoryID.Set {
		todo.CategoryID = normalizeCategoryID(req.CategoryID.Ptr())
		if err := s.ensureCategory(ctx, todo.CategoryID); err != nil {
			return nil, err
		}
	}
	todo.CompletedAt = completedAtFor(todo, req, s.stamp())
	// レスポンスはリポジトリから読み直したカテゴリを使う
	todo.Category = nil

	updated, err := s.todoRepo.Update(ctx, todo)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("todo_id", updated.ID).
		Str("status", string(updated.Status)).
		Msg("updated todo")
	return updated, nil
}

// DeleteTodo はTodoを削除します。
func (s *TodoService) DeleteTodo(ctx context.Context, id string) error {
	if err := s.todoRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().
		Str("todo_id", id).
		Msg("deleted todo")
	return nil
}

// completedAtFor は更新後の todo (status 適用済み) に対する completedAt を決めます。
func completedAtFor(todo *models.Todo, req models.UpdateTodoRequest, now time.Time) *time.Time {
	if todo.Status != models.StatusCompleted {
		return nil
	}
	if req.CompletedAt.Set {
		if d := req.CompletedAt.Ptr(); d != nil && !d.IsZero() {
			return d.TimePtr()
		}
		return &now
	}
	if req.Status.Set || todo.CompletedAt == nil {
		return &now
	}
	return todo.CompletedAt
}

func (s *TodoService) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *TodoService) ensureCategory(ctx context.Context, categoryID *string) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.FindByID(ctx, *categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return fmt.Errorf("%w: category %s does not exist", ErrInvalidTodo, *categoryID)
		}
		return err
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidTodo)
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidTodo, maxTitleLength)
	}
	return nil
}

func validateEnums(status models.Status, priority models.Priority) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTodo, status)
	}
	if !priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidTodo, priority)
	}
	return nil
}

// normalizeCategoryID はフォームの「カテゴリなし」(空文字) をnilとして扱います。
func normalizeCategoryID(id *string) *string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	return id
}
