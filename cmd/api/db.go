package main

import (
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/furoku/ultimate-todo-app/internal/database"
	"github.com/furoku/ultimate-todo-app/internal/repositories"
	"github.com/furoku/ultimate-todo-app/internal/services"
)

type databaseHandle struct {
	DB      *sql.DB
	Dialect database.Dialect
}

func (h *databaseHandle) Close() error {
	return h.DB.Close()
}

func (h *databaseHandle) services(logger zerolog.Logger) (*services.TodoService, *services.CategoryService) {
	todoRepo := repositories.NewTodoRepository(h.DB, h.Dialect, logger)
	categoryRepo := repositories.NewCategoryRepository(h.DB, h.Dialect, logger)
	return services.NewTodoService(todoRepo, categoryRepo, logger),
		services.NewCategoryService(categoryRepo, todoRepo, logger)
}
