package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/furoku/ultimate-todo-app/internal/config"
	"github.com/furoku/ultimate-todo-app/internal/database"
	"github.com/furoku/ultimate-todo-app/internal/models"
	"github.com/furoku/ultimate-todo-app/internal/repositories"
	"github.com/furoku/ultimate-todo-app/internal/routes"
)

// TestFrontendURL はテスト用ルーターのCORS許可オリジンです。
const TestFrontendURL = "http://localhost:3000"

// SetupTestDB はテスト用のインメモリSQLiteデータベースを用意し、マイグレーションを実行します。
// テストごとに独立したデータベースになるため、前処理での削除は不要です。
// データベースはテストの終了時に閉じられます。
func SetupTestDB(t *testing.T) (*sql.DB, *gin.Engine, *repositories.TodoRepository, *repositories.CategoryRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	logger := zerolog.Nop()
	cfg := config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		Path:        ":memory:",
		PingTimeout: 5 * time.Second,
	}

	db, dialect, err := database.Open(ctx, cfg, logger)
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(ctx, db, dialect), "Failed to migrate test database")

	router := routes.SetupRouter(db, dialect, config.HTTPConfig{FrontendURL: TestFrontendURL}, logger)
	todoRepo := repositories.NewTodoRepository(db, dialect, logger)
	categoryRepo := repositories.NewCategoryRepository(db, dialect, logger)

	return db, router, todoRepo, categoryRepo
}

// DoJSON はJSONボディ付きのリクエストをルーターに送り、レスポンスを返します。
// payload が string の場合はエンコードせずにそのまま送ります。
func DoJSON(t *testing.T, router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	switch p := payload.(type) {
	case nil:
	case string:
		// 壊れたJSONを送るために文字列はそのまま使う
		body.WriteString(p)
	default:
		b, err := json.Marshal(p)
		require.NoError(t, err)
		body.Write(b)
	}

	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

// CreateTestTodo はAPI経由でテスト用のTODOを作成します。
func CreateTestTodo(t *testing.T, router *gin.Engine, payload map[string]any) *models.Todo {
	t.Helper()
	resp := DoJSON(t, router, http.MethodPost, "/api/todos", payload)
	require.Equal(t, http.StatusCreated, resp.Code, "TODO作成に失敗しました: %s", resp.Body.String())

	var createdTodo models.Todo
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &createdTodo))
	return &createdTodo
}

// CreateTestCategory はAPI経由でテスト用のカテゴリを作成します。
func CreateTestCategory(t *testing.T, router *gin.Engine, name, color string) *models.Category {
	t.Helper()
	payload := map[string]any{"name": name}
	if color != "" {
		payload["color"] = color
	}
	resp := DoJSON(t, router, http.MethodPost, "/api/categories", payload)
	require.Equal(t, http.StatusCreated, resp.Code, "カテゴリ作成に失敗しました: %s", resp.Body.String())

	var created models.Category
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	return &created
}
