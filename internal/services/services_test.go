package services_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/furoku/ultimate-todo-app/internal/config"
	"github.com/furoku/ultimate-todo-app/internal/database"
	"github.com/furoku/ultimate-todo-app/internal/repositories"
	"github.com/furoku/ultimate-todo-app/internal/services"
)

type fixture struct {
	db              *sql.DB
	todoRepo        *repositories.TodoRepository
	categoryRepo    *repositories.CategoryRepository
	todoService     *services.TodoService
	categoryService *services.CategoryService
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	cfg := config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:", PingTimeout: 5 * time.Second}

	db, dialect, err := database.Open(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(ctx, db, dialect))

	todoRepo := repositories.NewTodoRepository(db, dialect, zerolog.Nop())
	categoryRepo := repositories.NewCategoryRepository(db, dialect, zerolog.Nop())
	return &fixture{
		db:              db,
		todoRepo:        todoRepo,
		categoryRepo:    categoryRepo,
		todoService:     services.NewTodoService(todoRepo, categoryRepo, zerolog.Nop()),
		categoryService: services.NewCategoryService(categoryRepo, todoRepo, zerolog.Nop()),
	}
}

func fixedClock(ts time.Time) services.Clock {
	return func() time.Time { return ts }
}
