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

// TodoHandler はTodo関連のハンドラーを管理します。
type TodoHandler struct {
	todoService *services.TodoService
	logger      zerolog.Logger
}

// NewTodoHandler は新しいTodoHandlerを作成します。
func NewTodoHandler(todoService *services.TodoService, logger zerolog.Logger) *TodoHandler {
	return &TodoHandler{todoService: todoService, logger: logger}
}

// GetTodosHandler はTodoリストを作成日時の新しい順に返します。
func (h *TodoHandler) GetTodosHandler(c *gin.Context) {
	todos, err := h.todoService.GetTodos(c.Request.Context())
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to fetch todos")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todos"})
		return
	}
	c.JSON(http.StatusOK, todos)
}

// GetTodoByIDHandler は指定IDのTodoを取得します。
func (h *TodoHandler) GetTodoByIDHandler(c *gin.Context) {
	todo, err := h.todoService.GetTodoByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err, "Failed to fetch todo")
		return
	}
	c.JSON(http.StatusOK, todo)
}

// CreateTodoHandler は新しいTodoを作成します。
func (h *TodoHandler) CreateTodoHandler(c *gin.Context) {
	var req models.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind todo payload")
		badRequest(c, bindErrorDetails(err))
		return
	}

	createdTodo, err := h.todoService.CreateTodo(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err, "Failed to create todo")
		return
	}
	c.JSON(http.StatusCreated, createdTodo)
}

// UpdateTodoHandler はTodoを部分更新します。
func (h *TodoHandler) UpdateTodoHandler(c *gin.Context) {
	var req models.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind todo payload")
		badRequest(c, bindErrorDetails(err))
		return
	}

	updatedTodo, err := h.todoService.UpdateTodo(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err, "Failed to update todo")
		return
	}
	c.JSON(http.StatusOK, updatedTodo)
}

// DeleteTodoHandler はTodoを削除します。
func (h *TodoHandler) DeleteTodoHandler(c *gin.Context) {
	if err := h.todoService.DeleteTodo(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err, "Failed to delete todo")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TodoHandler) handleError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, services.ErrInvalidTodo):
		badRequest(c, err.Error())
	case errors.Is(err, repositories.ErrCategoryNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category not found"})
	case errors.Is(err, repositories.ErrTodoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
	default:
		h.logger.Error().
			Err(err).
			Str("todo_id", c.Param("id")).
			Msg(message)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
