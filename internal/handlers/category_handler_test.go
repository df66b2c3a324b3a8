package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furoku/ultimate-todo-app/internal/models"
	"github.com/furoku/ultimate-todo-app/testutil"
)

func TestCreateCategory(t *testing.T) {
	db, r, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	// --- Test Case 1: 色を省略するとデフォルト色 ---
	created := testutil.CreateTestCategory(t, r, "仕事", "")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "仕事", created.Name)
	assert.Equal(t, "#6366F1", created.Color)

	// --- Test Case 2: 同名は400 ---
	w := testutil.DoJSON(t, r, http.MethodPost, "/api/categories", map[string]any{"name": "仕事"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category with this name already exists", decodeError(t, w.Body.Bytes())["error"])

	// --- Test Case 3: 別の名前なら成功 ---
	testutil.CreateTestCategory(t, r, "プライベート", "#10B981")

	// --- Test Case 4: 不正な色 ---
	w = testutil.DoJSON(t, r, http.MethodPost, "/api/categories", map[string]any{"name": "色", "color": "red"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w.Body.Bytes())["details"], "color: must be a hex color")

	// --- Test Case 5: 名前なし ---
	w = testutil.DoJSON(t, r, http.MethodPost, "/api/categories", map[string]any{"color": "#000000"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w.Body.Bytes())["details"], "name: required")
}

func TestGetCategories_OrderedByName(t *testing.T) {
	db, r, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.CreateTestCategory(t, r, "b-shopping", "")
	testutil.CreateTestCategory(t, r, "a-work", "")
	testutil.CreateTestCategory(t, r, "c-home", "")

	w := testutil.DoJSON(t, r, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var categories []models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 3)
	assert.Equal(t, "a-work", categories[0].Name)
	assert.Equal(t, "b-shopping", categories[1].Name)
	assert.Equal(t, "c-home", categories[2].Name)
}

func TestGetCategoryByID_IncludesTodos(t *testing.T) {
	db, r, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	cat := testutil.CreateTestCategory(t, r, "学習", "#F59E0B")
	testutil.CreateTestTodo(t, r, map[string]any{"title": "Go を読む", "categoryId": cat.ID})
	testutil.CreateTestTodo(t, r, map[string]any{"title": "関係ないタスク"})

	w := testutil.DoJSON(t, r, http.MethodGet, "/api/categories/"+cat.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var found models.CategoryWithTodos
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	assert.Equal(t, cat.ID, found.ID)
	assert.Equal(t, "学習", found.Name)
	require.Len(t, found.Todos, 1)
	assert.Equal(t, "Go を読む", found.Todos[0].Title)

	w = testutil.DoJSON(t, r, http.MethodGet, "/api/categories/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Category not found", decodeError(t, w.Body.Bytes())["error"])
}

func TestUpdateCategory(t *testing.T) {
	db, r, _, _ := testutil.SetupTestDB(t)
	defer db.Close()

	work := testutil.CreateTestCategory(t, r, "Work", "")
	testutil.CreateTestCategory(t, r, "Home", "")

	// --- Test Case 1: 自分と同じ名前へのリネームは許可 ---
	w := testutil.DoJSON(t, r, http.MethodPatch, "/api/categories/"+work.ID, map[string]any{"name": "Work", "color": "#EF4444"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Work", updated.Name)
	assert.Equal(t, "#EF4444", updated.Color)

	// --- Test Case 2: 他のカテゴリと同じ名前は400 ---
	w = testutil.DoJSON(t, r, http.MethodPatch, "/api/categories/"+work.ID, map[string]any{"name": "Home"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category with this name already exists", decodeError(t, w.Body.Bytes())["error"])

	// --- Test Case 3: 存在しないカテゴリは404 ---
	w = testutil.DoJSON(t, r, http.MethodPatch, "/api/categories/missing", map[string]any{"name": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// --- Test Case 4: 不正な色 ---
	w = testutil.DoJSON(t, r, http.MethodPatch, "/api/categories/"+work.ID, map[string]any{"color": "#GGGGGG"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCategory_DetachesTodos(t *testing.T) {
	db, r, todoRepo, _ := testutil.SetupTestDB(t)
	defer db.Close()

	cat := testutil.CreateTestCategory(t, r, "旅行", "")
	todo1 := testutil.CreateTestTodo(t, r, map[string]any{"title": "パスポート", "categoryId": cat.ID})
	todo2 := testutil.CreateTestTodo(t, r, map[string]any{"title": "宿の予約", "categoryId": cat.ID})

	w := testutil.DoJSON(t, r, http.MethodDelete, "/api/categories/"+cat.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// カテゴリ一覧から消えていること
	w = testutil.DoJSON(t, r, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var categories []models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.Empty(t, categories)

	// タスクは残り、未分類になっていること
	for _, id := range []string{todo1.ID, todo2.ID} {
		stored, err := todoRepo.FindByID(t.Context(), id)
		require.NoError(t, err)
		assert.Nil(t, stored.CategoryID)
		assert.Nil(t, stored.Category)
	}

	w = testutil.DoJSON(t, r, http.MethodDelete, "/api/categories/"+cat.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
