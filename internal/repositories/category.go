package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/furoku/ultimate-todo-app/internal/database"
	"github.com/furoku/ultimate-todo-app/internal/models"
)

// CategoryRepository はcategoriesテーブルを操作するリポジトリです。
type CategoryRepository struct {
	DB      *sql.DB
	dialect database.Dialect
	logger  zerolog.Logger
}

// NewCategoryRepository は新しいCategoryRepositoryインスタンスを作成します。
func NewCategoryRepository(db *sql.DB, dialect database.Dialect, logger zerolog.Logger) *CategoryRepository {
	return &CategoryRepository{DB: db, dialect: dialect, logger: logger}
}

const selectCategoryQuery = `
SELECT id,
       name,
       color,
       created_at,
       updated_at
FROM categories
`

// Create は新しいカテゴリを挿入します。
// 同名のカテゴリが存在する場合は ErrDuplicateCategoryName を返します。
func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("could not generate category id: %w", err)
	}
	now := storeNow()
	created := &models.Category{
		ID:        id.String(),
		Name:      c.Name,
		Color:     c.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}

	const insertCategoryQuery = `
INSERT INTO categories (id, name, color, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
`
	_, err = r.DB.ExecContext(
		ctx,
		r.dialect.Rebind(insertCategoryQuery),
		created.ID,
		created.Name,
		created.Color,
		created.CreatedAt,
		created.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateCategoryName
		}
		r.logger.Error().
			Err(err).
			Msg("failed to insert category")
		return nil, fmt.Errorf("could not insert category: %w", err)
	}
	r.logger.Debug().
		Str("category_id", created.ID).
		Msg("inserted category")
	return created, nil
}

// FindAll はすべてのカテゴリを名前の昇順で取得します。
func (r *CategoryRepository) FindAll(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.DB.QueryContext(ctx, selectCategoryQuery+"ORDER BY name ASC")
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to query categories")
		return nil, fmt.Errorf("could not query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*models.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan category")
			return nil, fmt.Errorf("could not scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// FindByID は指定されたIDのカテゴリを取得します。
func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	row := r.DB.QueryRowContext(ctx, r.dialect.Rebind(selectCategoryQuery+"WHERE id = ?"), id)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		r.logger.Error().
			Err(err).
			Str("category_id", id).
			Msg("failed to select category by id")
		return nil, fmt.Errorf("could not query category: %w", err)
	}
	return c, nil
}

// FindConflictingName は excludeID 以外で同じ名前を持つカテゴリを探します。
// 見つからなければ ErrCategoryNotFound を返します。名前は完全一致で比較します。
func (r *CategoryRepository) FindConflictingName(ctx context.Context, name, excludeID string) (*models.Category, error) {
	row := r.DB.QueryRowContext(
		ctx,
		r.dialect.Rebind(selectCategoryQuery+"WHERE name = ? AND id <> ?"),
		name,
		excludeID,
	)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		r.logger.Error().
			Err(err).
			Str("name", name).
			Msg("failed to select category by name")
		return nil, fmt.Errorf("could not query category: %w", err)
	}
	return c, nil
}

// Update はカテゴリの名前と色を書き込み、更新後の値を返します。
func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) (*models.Category, error) {
	const updateCategoryQuery = `
UPDATE categories
SET name = ?,
    color = ?,
    updated_at = ?
WHERE id = ?
`
	result, err := r.DB.ExecContext(
		ctx,
		r.dialect.Rebind(updateCategoryQuery),
		c.Name,
		c.Color,
		storeNow(),
		c.ID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateCategoryName
		}
		r.logger.Error().
			Err(err).
			Str("category_id", c.ID).
			Msg("failed to update category")
		return nil, fmt.Errorf("could not update category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrCategoryNotFound
	}
	return r.FindByID(ctx, c.ID)
}

// Delete はカテゴリを削除します。
//
// 外部キーのON DELETEに頼らず、同じトランザクション内で先に
// 依存するタスクの category_id を NULL に戻してから削除します。
// 削除対象が存在しない場合はロールバックして ErrCategoryNotFound を返します。
func (r *CategoryRepository) Delete(ctx context.Context, id string) (detached int64, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return 0, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(
		ctx,
		r.dialect.Rebind("UPDATE todos SET category_id = NULL, updated_at = ? WHERE category_id = ?"),
		storeNow(),
		id,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("category_id", id).
			Msg("failed to detach todos from category")
		return 0, fmt.Errorf("could not detach todos: %w", err)
	}
	detached, err = result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not get rows affected: %w", err)
	}

	result, err = tx.ExecContext(ctx, r.dialect.Rebind("DELETE FROM categories WHERE id = ?"), id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("category_id", id).
			Msg("failed to delete category")
		return 0, fmt.Errorf("could not delete category: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not get rows affected: %w", err)
	}
	if deleted == 0 {
		return 0, ErrCategoryNotFound
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return 0, fmt.Errorf("could not commit transaction: %w", err)
	}
	r.logger.Debug().
		Str("category_id", id).
		Int64("detached", detached).
		Msg("deleted category")
	return detached, nil
}

func scanCategory(row rowScanner) (*models.Category, error) {
	var c models.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}
