// Package client はTodo APIを呼び出すHTTPクライアントです。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/furoku/ultimate-todo-app/internal/models"
)

// APIError はAPIが2xx以外を返したときのエラーです。
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Details != "" {
		return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, msg, e.Details)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, msg)
}

// Client はTodo APIのクライアントです。
type Client struct {
	baseURL string
	client  *http.Client
}

// New は baseURL (例: http://localhost:8080) に向けたクライアントを作成します。
// timeout が0の場合はタイムアウトしません。
func New(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return &Client{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

// ListTodos は作成日時の新しい順にすべてのタスクを取得します。
func (c *Client) ListTodos(ctx context.Context) ([]*models.Todo, error) {
	var todos []*models.Todo
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// GetTodo はカテゴリ付きのタスクを1件取得します。
func (c *Client) GetTodo(ctx context.Context, id string) (*models.Todo, error) {
	var todo models.Todo
	if err := c.do(ctx, http.MethodGet, "/api/todos/"+url.PathEscape(id), nil, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// CreateTodo はタスクを作成し、作成されたタスクを返します。
func (c *Client) CreateTodo(ctx context.Context, req models.CreateTodoRequest) (*models.Todo, error) {
	var todo models.Todo
	if err := c.do(ctx, http.MethodPost, "/api/todos", req, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// UpdateTodo はタスクを部分更新し、更新後のタスクを返します。
func (c *Client) UpdateTodo(ctx context.Context, id string, req models.UpdateTodoRequest) (*models.Todo, error) {
	var todo models.Todo
	if err := c.do(ctx, http.MethodPatch, "/api/todos/"+url.PathEscape(id), req, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// DeleteTodo はタスクを削除します。
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/todos/"+url.PathEscape(id), nil, nil)
}

// ListCategories は名前順にすべてのカテゴリを取得します。
func (c *Client) ListCategories(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory は所属するタスクを含むカテゴリを1件取得します。
func (c *Client) GetCategory(ctx context.Context, id string) (*models.CategoryWithTodos, error) {
	var category models.CategoryWithTodos
	if err := c.do(ctx, http.MethodGet, "/api/categories/"+url.PathEscape(id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory はカテゴリを作成し、作成されたカテゴリを返します。
func (c *Client) CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := c.do(ctx, http.MethodPost, "/api/categories", req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory はカテゴリの名前と色を更新し、更新後のカテゴリを返します。
func (c *Client) UpdateCategory(ctx context.Context, id string, req models.UpdateCategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := c.do(ctx, http.MethodPatch, "/api/categories/"+url.PathEscape(id), req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory はカテゴリを削除します。所属していたタスクは未分類になります。
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload any, dest any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("could not encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readErrorResponse(resp)
	}
	if dest == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}
	return nil
}

func readErrorResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var payload struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Message = payload.Error
		apiErr.Details = payload.Details
	}
	return apiErr
}
