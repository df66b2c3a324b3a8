// Package todo はタスク一覧画面の状態 (一覧、読み込み中フラグ、絞り込み) を管理します。
package todo

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/furoku/ultimate-todo-app/internal/models"
	"github.com/furoku/ultimate-todo-app/internal/notify"
)

// ErrBusy は同じ操作が実行中のときに返されます。
var ErrBusy = errors.New("operation already in progress")

// 通知メッセージ
const (
	MsgFetchFailed  = "タスクの取得に失敗しました。"
	MsgAdded        = "タスクを追加しました。"
	MsgAddFailed    = "タスクの追加に失敗しました。"
	MsgUpdated      = "タスクを更新しました。"
	MsgUpdateFailed = "タスクの更新に失敗しました。"
	MsgDeleted      = "タスクを削除しました。"
	MsgDeleteFailed = "タスクの削除に失敗しました。"
)

// API はコントローラが使うTodo APIです。client.Client が満たします。
type API interface {
	ListTodos(ctx context.Context) ([]*models.Todo, error)
	CreateTodo(ctx context.Context, req models.CreateTodoRequest) (*models.Todo, error)
	UpdateTodo(ctx context.Context, id string, req models.UpdateTodoRequest) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
}

// Controller はタスク一覧をメモリに保持し、APIの結果を反映します。
// 複数のゴルーチンから安全に使えます。
type Controller struct {
	api      API
	notifier notify.Notifier
	logger   zerolog.Logger

	mu       sync.Mutex
	todos    []*models.Todo
	loading  bool
	filter   Filter
	inflight map[string]struct{}
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

// Todos は保持している一覧のコピーを返します。
func (c *Controller) Todos() []*models.Todo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.todos)
}

// SetFilter は絞り込み条件を変更します。
func (c *Controller) SetFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
}

// Filter は現在の絞り込み条件を返します。
func (c *Controller) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Filtered は現在の絞り込み条件を適用した一覧を返します。
func (c *Controller) Filtered() []*models.Todo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter.Apply(c.todos)
}

// DueToday は今日が期限の未完了タスクを返します。
func (c *Controller) DueToday(now time.Time) []*models.Todo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return DueToday(c.todos, now)
}

// Important は優先度の高い未完了タスクを返します。
func (c *Controller) Important() []*models.Todo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Important(c.todos)
}

// Load はサーバーから一覧を取得して置き換えます。
// 失敗した場合は一覧を変更せずにエラー通知を出します。
func (c *Controller) Load(ctx context.Context) error {
	if !c.begin("load") {
		return ErrBusy
	}
	defer c.end("load")

	c.setLoading(true)
	defer c.setLoading(false)

	todos, err := c.api.ListTodos(ctx)
	if err != nil {
		c.fail(err, MsgFetchFailed)
		return err
	}

	c.mu.Lock()
	c.todos = todos
	c.mu.Unlock()
	c.logger.Debug().
		Int("count", len(todos)).
		Msg("loaded todos")
	return nil
}

// Add はタスクを作成し、成功したら一覧の先頭に追加します。
func (c *Controller) Add(ctx context.Context, req models.CreateTodoRequest) (*models.Todo, error) {
	if !c.begin("add") {
		return nil, ErrBusy
	}
	defer c.end("add")

	created, err := c.api.CreateTodo(ctx, req)
	if err != nil {
		c.fail(err, MsgAddFailed)
		return nil, err
	}

	c.mu.Lock()
	c.todos = append([]*models.Todo{created}, c.todos...)
	c.mu.Unlock()
	notify.Success(c.notifier, MsgAdded)
	return created, nil
}

// Update はタスクを更新し、一覧の該当エントリをサーバーの結果で置き換えます。
func (c *Controller) Update(ctx context.Context, id string, patch models.UpdateTodoRequest) (*models.Todo, error) {
	key := "update:" + id
	if !c.begin(key) {
		return nil, ErrBusy
	}
	defer c.end(key)

	updated, err := c.api.UpdateTodo(ctx, id, patch)
	if err != nil {
		c.fail(err, MsgUpdateFailed)
		return nil, err
	}

	c.mu.Lock()
	for i, t := range c.todos {
		if t.ID == id {
			c.todos[i] = updated
		}
	}
	c.mu.Unlock()
	notify.Success(c.notifier, MsgUpdated)
	return updated, nil
}

// Toggle はチェックボックスの操作と同じく、完了と未着手を切り替えます。
func (c *Controller) Toggle(ctx context.Context, id string) (*models.Todo, error) {
	next := models.StatusCompleted
	c.mu.Lock()
	for _, t := range c.todos {
		if t.ID == id && t.Status == models.StatusCompleted {
			next = models.StatusTodo
		}
	}
	c.mu.Unlock()
	return c.Update(ctx, id, models.UpdateTodoRequest{Status: models.Some(next)})
}

// Remove はタスクを削除し、成功したら一覧から取り除きます。
func (c *Controller) Remove(ctx context.Context, id string) error {
	key := "remove:" + id
	if !c.begin(key) {
		return ErrBusy
	}
	defer c.end(key)

	if err := c.api.DeleteTodo(ctx, id); err != nil {
		c.fail(err, MsgDeleteFailed)
		return err
	}

	c.mu.Lock()
	c.todos = slices.DeleteFunc(c.todos, func(t *models.Todo) bool { return t.ID == id })
	c.mu.Unlock()
	notify.Success(c.notifier, MsgDeleted)
	return nil
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
