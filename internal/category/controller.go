// Package category はカテゴリ管理画面の状態を管理します。
package category

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/furoku/ultimate-todo-app/internal/client"
	"github.com/furoku/ultimate-todo-app/internal/models"
	"github.com/furoku/ultimate-todo-app/internal/notify"
)

// ErrBusy は同じ操作が実行中のときに返されます。
var ErrBusy = errors.New("operation already in progress")

// 通知メッセージ
const (
	MsgFetchFailed  = "カテゴリの取得に失敗しました。"
	MsgAdded        = "カテゴリを追加しました。"
	MsgAddFailed    = "カテゴリの追加に失敗しました。"
	MsgUpdated      = "カテゴリを更新しました。"
	MsgUpdateFailed = "カテゴリの更新に失敗しました。"
	MsgDeleted      = "カテゴリを削除しました。"
	MsgDeleteFailed = "カテゴリの削除に失敗しました。"
)

// API はコントローラが使うカテゴリAPIです。client.Client が満たします。
type API interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
	CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, req models.UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Controller はカテゴリ一覧を名前順に保持します。
type Controller struct {
	api      API
	notifier notify.Notifier
	logger   zerolog.Logger

	mu         sync.Mutex
	categories []*models.Category
	loading    bool
	inflight   map[string]struct{}
}

// NewController は新しいControllerを作成します。最初の Load が終わるまで Loading は true です。
func NewController(api API, notifier notify.Notifier, logger zerolog.Logger) *Controller {
	return &Controller{
		api:      api,
		notifier: notifier,
		logger:   logger,
		loading:  true,
		inflight: make(map[string]struct{}),
	}
}

// Loading は一覧を読み込み中かどうかを返します。
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Categories は保持している一覧のコピーを返します。
func (c *Controller) Categories() []*models.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.categories)
}

// Load はサーバーから一覧を取得して置き換えます。
func (c *Controller) Load(ctx context.Context) error {
	if !c.begin("load") {
		return ErrBusy
	}
	defer c.end("load")

	c.setLoading(true)
	defer c.setLoading(false)

	categories, err := c.api.ListCategories(ctx)
	if err != nil {
		c.fail(err, MsgFetchFailed)
		return err
	}

	c.mu.Lock()
	c.categories = categories
	c.mu.Unlock()
	return nil
}

// Add はカテゴリを作成し、名前順の位置に挿入します。
// サーバーがエラーメッセージを返した場合はそれを通知に使います。
func (c *Controller) Add(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	if !c.begin("add") {
		return nil, ErrBusy
	}
	defer c.end("add")

	created, err := c.api.CreateCategory(ctx, req)
	if err != nil {
		c.fail(err, serverMessage(err, MsgAddFailed))
		return nil, err
	}

	c.mu.Lock()
	c.categories = append(c.categories, created)
	c.sortLocked()
	c.mu.Unlock()
	notify.Success(c.notifier, MsgAdded)
	return created, nil
}

// Update はカテゴリを更新し、該当エントリをサーバーの結果で置き換えます。
func (c *Controller) Update(ctx context.Context, id string, req models.UpdateCategoryRequest) (*models.Category, error) {
	key := "update:" + id
	if !c.begin(key) {
		return nil, ErrBusy
	}
	defer c.end(key)

	updated, err := c.api.UpdateCategory(ctx, id, req)
	if err != nil {
		c.fail(err, serverMessage(err, MsgUpdateFailed))
		return nil, err
	}

	c.mu.Lock()
	for i, cat := range c.categories {
		if cat.ID == id {
			c.categories[i] = updated
		}
	}
	c.sortLocked()
	c.mu.Unlock()
	notify.Success(c.notifier, MsgUpdated)
	return updated, nil
}

// Remove はカテゴリを削除し、一覧から取り除きます。
func (c *Controller) Remove(ctx context.Context, id string) error {
	key := "remove:" + id
	if !c.begin(key) {
		return ErrBusy
	}
	defer c.end(key)

	if err := c.api.DeleteCategory(ctx, id); err != nil {
		c.fail(err, MsgDeleteFailed)
		return err
	}

	c.mu.Lock()
	c.categories = slices.DeleteFunc(c.categories, func(cat *models.Category) bool { return cat.ID == id })
	c.mu.Unlock()
	notify.Success(c.notifier, MsgDeleted)
	return nil
}

func (c *Controller) sortLocked() {
	slices.SortStableFunc(c.categories, func(a, b *models.Category) int {
		return cmp.Compare(a.Name, b.Name)
	})
}

func (c *Controller) begin(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.inflight[key]; ok {
		return false
	}
	c.inflight[key] = struct{}{}
	return true
}

func (c *Controller) end(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, key)
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = v
}

func (c *Controller) fail(err error, message string) {
	c.logger.Error().
		Err(err).
		Msg(message)
	notify.Error(c.notifier, message)
}

func serverMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
