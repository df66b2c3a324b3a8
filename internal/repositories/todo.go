package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/furoku/ultimate-todo-app/internal/database"
	"github.com/furoku/ultimate-todo-app/internal/models"
)

// TodoRepository はtodosテーブルを操作するリポジトリです。
type TodoRepository struct {
	DB      *sql.DB
	dialect database.Dialect
	logger  zerolog.Logger
}

// NewTodoRepository は新しいTodoRepositoryインスタンスを作成します。
func NewTodoRepository(db *sql.DB, dialect database.Dialect, logger zerolog.Logger) *TodoRepository {
	return &TodoRepository{DB: db, dialect: dialect, logger: logger}
}

// カテゴリはLEFT JOINで一緒に取得する
const selectTodoQuery = `
SELECT t.id,
       t.title,
       t.description,
       t.status,
       t.priority,
       t.due_date,
       t.completed_at,
       t.category_id,
       t.created_at,
       t.updated_at,
       c.id,
       c.name,
       c.color,
       c.created_at,
       c.updated_at
FROM todos t
LEFT JOIN categories c ON c.id = t.category_id
`

// storeNow はストアが記録する現在時刻です。MySQLのDATETIME(3)に合わせてミリ秒に丸めます。
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Create は新しいTodoタスクをデータベースに挿入し、カテゴリ付きで返します。
// IDと作成・更新日時はここで採番されます。
func (r *TodoRepository) Create(ctx context.Context, t *models.Todo) (*models.Todo, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("could not generate todo id: %w", err)
	}
	now := storeNow()

	const insertTodoQuery = `
INSERT INTO todos (id,
                   title,
                   description,
                   status,
                   priority,
                   due_date,
                   completed_at,
                   category_id,
                   created_at,
                   updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err = r.DB.ExecContext(
		ctx,
		r.dialect.Rebind(insertTodoQuery),
		id.String(),
		t.Title,
		nullString(t.Description),
		string(t.Status),
		string(t.Priority),
		nullTime(t.DueDate),
		nullTime(t.CompletedAt),
		nullString(t.CategoryID),
		now,
		now,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, ErrCategoryNotFound
		}
		r.logger.Error().
			Err(err).
			Msg("failed to insert todo")
		return nil, fmt.Errorf("could not insert todo: %w", err)
	}
	r.logger.Debug().
		Str("todo_id", id.String()).
		Msg("inserted todo")

	return r.FindByID(ctx, id.String())
}

// FindAll はすべてのTodoタスクを作成日時の新しい順に取得します。
func (r *TodoRepository) FindAll(ctx context.Context) ([]*models.Todo, error) {
	query := selectTodoQuery + "ORDER BY t.created_at DESC, t.id DESC"
	return r.query(ctx, query)
}

// FindByCategoryID は指定したカテゴリに属するTodoタスクを取得します。
func (r *TodoRepository) FindByCategoryID(ctx context.Context, categoryID string) ([]*models.Todo, error) {
	query := selectTodoQuery + "WHERE t.category_id = ? ORDER BY t.created_at DESC, t.id DESC"
	return r.query(ctx, r.dialect.Rebind(query), categoryID)
}

// FindByID は指定されたIDのTodoタスクを取得します。
func (r *TodoRepository) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	query := r.dialect.Rebind(selectTodoQuery + "WHERE t.id = ?")

	t, err := scanTodo(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		r.logger.Error().
			Err(err).
			Str("todo_id", id).
			Msg("failed to select todo by id")
		return nil, fmt.Errorf("could not query todo: %w", err)
	}
	return t, nil
}

// Update は指定されたTodoタスクの可変フィールドをすべて書き込み、更新後の値を返します。
func (r *TodoRepository) Update(ctx context.Context, t *models.Todo) (*models.Todo, error) {
	const updateTodoQuery = `
UPDATE todos
SET title = ?,
    description = ?,
    status = ?,
    priority = ?,
    due_date = ?,
    completed_at = ?,
    category_id = ?,
    updated_at = ?
WHERE id = ?
`
	result, err := r.DB.ExecContext(
		ctx,
		r.dialect.Rebind(updateTodoQuery),
		t.Title,
		nullString(t.Description),
		string(t.Status),
		string(t.Priority),
		nullTime(t.DueDate),
		nullTime(t.CompletedAt),
		nullString(t.CategoryID),
		storeNow(),
		t.ID,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, ErrCategoryNotFound
		}
		r.logger.Error().
			Err(err).
			Str("todo_id", t.ID).
			Msg("failed to update todo")
		return nil, fmt.Errorf("could not update todo: %w", err)
	}

	// 更新された行数を確認
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrTodoNotFound
	}

	return r.FindByID(ctx, t.ID)
}

// Delete は指定されたIDのTodoタスクを削除します。
func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, r.dialect.Rebind("DELETE FROM todos WHERE id = ?"), id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("todo_id", id).
			Msg("failed to delete todo")
		return fmt.Errorf("could not delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

func (r *TodoRepository) query(ctx context.Context, query string, args ...any) ([]*models.Todo, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to query todos")
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	defer rows.Close()

	todos := make([]*models.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan todo")
			return nil, fmt.Errorf("could not scan todo: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}
	return todos, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*models.Todo, error) {
	var (
		t                          models.Todo
		status, priority           string
		description, categoryID    sql.NullString
		dueDate, completedAt       sql.NullTime
		catID, catName, catColor   sql.NullString
		catCreatedAt, catUpdatedAt sql.NullTime
	)
	err := row.Scan(
		&t.ID,
		&t.Title,
		&description,
		&status,
		&priority,
		&dueDate,
		&completedAt,
		&categoryID,
		&t.CreatedAt,
		&t.UpdatedAt,
		&catID,
		&catName,
		&catColor,
		&catCreatedAt,
		&catUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Status = models.Status(status)
	t.Priority = models.Priority(priority)
	t.Description = stringPtr(description)
	t.DueDate = timePtr(dueDate)
	t.CompletedAt = timePtr(completedAt)
	t.CategoryID = stringPtr(categoryID)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	if catID.Valid {
		t.Category = &models.Category{
			ID:        catID.String,
			Name:      catName.String,
			Color:     catColor.String,
			CreatedAt: catCreatedAt.Time.UTC(),
			UpdatedAt: catUpdatedAt.Time.UTC(),
		}
	}
	return &t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
