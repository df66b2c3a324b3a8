// Package routesはroutingを行います。
package routes

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/furoku/ultimate-todo-app/internal/config"
	"github.com/furoku/ultimate-todo-app/internal/database"
	"github.com/furoku/ultimate-todo-app/internal/handlers"
	"github.com/furoku/ultimate-todo-app/internal/repositories"
	"github.com/furoku/ultimate-todo-app/internal/services"
)

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(db *sql.DB, dialect database.Dialect, cfg config.HTTPConfig, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(logger), gin.Recovery())

	// CORS対策
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	// リポジトリ
	todoRepo := repositories.NewTodoRepository(db, dialect, logger)
	categoryRepo := repositories.NewCategoryRepository(db, dialect, logger)

	// サービス
	todoService := services.NewTodoService(todoRepo, categoryRepo, logger)
	categoryService := services.NewCategoryService(categoryRepo, todoRepo, logger)

	// ハンドラー
	todoHandler := handlers.NewTodoHandler(todoService, logger)
	categoryHandler := handlers.NewCategoryHandler(categoryService, logger)

	// ルーティング
	api := r.Group("/api")
	{
		api.GET("/hello", HelloHandler)
		api.GET("/dbcheck", DBCheckHandler(db))

		api.GET("/todos", todoHandler.GetTodosHandler)
		api.GET("/todos/:id", todoHandler.GetTodoByIDHandler)
		api.POST("/todos", todoHandler.CreateTodoHandler)
		api.PATCH("/todos/:id", todoHandler.UpdateTodoHandler)
		api.DELETE("/todos/:id", todoHandler.DeleteTodoHandler)

		api.GET("/categories", categoryHandler.GetCategoriesHandler)
		api.GET("/categories/:id", categoryHandler.GetCategoryByIDHandler)
		api.POST("/categories", categoryHandler.CreateCategoryHandler)
		api.PATCH("/categories/:id", categoryHandler.UpdateCategoryHandler)
		api.DELETE("/categories/:id", categoryHandler.DeleteCategoryHandler)
	}

	return r
}

func HelloHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from Go Backend!"})
}

// DBCheckHandler はデータベースへの疎通を確認します。
func DBCheckHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Database connection failed", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Database connection is healthy"})
	}
}
