package main

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furoku/ultimate-todo-app/internal/config"
	"github.com/furoku/ultimate-todo-app/testutil"
)

type cli struct {
	t      *testing.T
	apiURL string
}

func setupCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("ENV", config.EnvTest)
	t.Setenv("DB_DRIVER", config.DriverSQLite)
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "cli.db"))

	_, r, _, _ := testutil.SetupTestDB(t)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &cli{t: t, apiURL: srv.URL}
}

// run はコマンドを実行し、標準出力と標準エラーを返します。
func (c *cli) run(args ...string) (string, string, error) {
	c.t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append(args, "--api-url", c.apiURL, "--env-file", filepath.Join(c.t.TempDir(), "none.env")))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// idOf は一覧の出力から title の行のIDを取り出します。
func idOf(t *testing.T, out, title string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, title) {
			fields := strings.Fields(line)
			return fields[len(fields)-1]
		}
	}
	t.Fatalf("%q not found in output:\n%s", title, out)
	return ""
}

func TestCLI_Categories(t *testing.T) {
	c := setupCLI(t)

	out, errOut, err := c.run("categories", "add", "仕事", "--color", "#EF4444")
	require.NoError(t, err, errOut)
	assert.Contains(t, out, "仕事")
	assert.Contains(t, errOut, "カテゴリを追加しました。")
	workID := idOf(t, out, "仕事")

	// --- 同名は拒否され、サーバーのメッセージが通知される ---
	_, errOut, err = c.run("categories", "add", "仕事")
	require.Error(t, err)
	assert.Contains(t, errOut, "Category with this name already exists")

	_, _, err = c.run("categories", "add", "プライベート")
	require.NoError(t, err)

	out, _, err = c.run("categories", "list")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "プライベート"), strings.Index(out, "仕事"))

	out, errOut, err = c.run("categories", "update", workID, "--name", "業務")
	require.NoError(t, err, errOut)
	assert.Contains(t, out, "業務")

	_, errOut, err = c.run("categories", "delete", workID)
	require.NoError(t, err)
	assert.Contains(t, errOut, "カテゴリを削除しました。")

	_, _, err = c.run("categories", "update", workID)
	assert.ErrorContains(t, err, "nothing to update")
}

func TestCLI_Todos(t *testing.T) {
	c := setupCLI(t)

	_, errOut, err := c.run("todos", "add", "Project plan", "-p", "high", "--due", time.Now().Format(time.RFC3339))
	require.NoError(t, err, errOut)
	assert.Contains(t, errOut, "タスクを追加しました。")

	_, _, err = c.run("todos", "add", "Weekly sync", "-d", "talk about the project budget")
	require.NoError(t, err)
	_, _, err = c.run("todos", "add", "Buy milk", "-p", "low")
	require.NoError(t, err)

	// --- 絞り込みなし ---
	out, _, err := c.run("todos", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "すべて")
	assert.Contains(t, out, "Project plan")
	assert.Contains(t, out, "Weekly sync")
	assert.Contains(t, out, "Buy milk")
	// 新しい順
	assert.Less(t, strings.Index(out, "Buy milk"), strings.Index(out, "Project plan"))

	// --- 検索はタイトルと説明の両方 ---
	out, _, err = c.run("todos", "list", "--search", "PROJ")
	require.NoError(t, err)
	assert.Contains(t, out, "Project plan")
	assert.Contains(t, out, "Weekly sync")
	assert.NotContains(t, out, "Buy milk")

	// --- タブ ---
	out, _, err = c.run("todos", "list", "--view", "important")
	require.NoError(t, err)
	assert.Contains(t, out, "Project plan")
	assert.NotContains(t, out, "Weekly sync")

	out, _, err = c.run("todos", "list", "--view", "today")
	require.NoError(t, err)
	assert.Contains(t, out, "Project plan")
	assert.NotContains(t, out, "Buy milk")

	_, _, err = c.run("todos", "list", "--view", "someday")
	assert.ErrorContains(t, err, `unknown view "someday"`)

	// --- 完了にすると今日と重要から消える ---
	id := idOf(t, out, "Project plan")
	out, errOut, err = c.run("todos", "toggle", id)
	require.NoError(t, err, errOut)
	assert.Contains(t, out, "[x]")
	assert.Contains(t, errOut, "タスクを更新しました。")

	out, _, err = c.run("todos", "list", "--view", "important")
	require.NoError(t, err)
	assert.Contains(t, out, "タスクがありません。")

	out, _, err = c.run("todos", "list", "--status", "completed")
	require.NoError(t, err)
	assert.Contains(t, out, "Project plan")
	assert.NotContains(t, out, "Buy milk")

	// --- 部分更新 ---
	out, errOut, err = c.run("todos", "update", id, "--status", "IN_PROGRESS", "--title", "Project plan v2")
	require.NoError(t, err, errOut)
	assert.Contains(t, out, "Project plan v2")
	assert.Contains(t, out, "[ ]")

	_, _, err = c.run("todos", "update", id)
	assert.ErrorContains(t, err, "nothing to update")

	_, errOut, err = c.run("todos", "update", id, "--priority", "urgent")
	require.Error(t, err)
	assert.Contains(t, errOut, "タスクの更新に失敗しました。")

	// --- 削除 ---
	_, errOut, err = c.run("todos", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, errOut, "タスクを削除しました。")

	_, errOut, err = c.run("todos", "delete", id)
	require.Error(t, err)
	assert.Contains(t, errOut, "タスクの削除に失敗しました。")
}

func TestCLI_TodosDueTodayDateOnly(t *testing.T) {
	c := setupCLI(t)

	// UTCより西のタイムゾーンでも日付のみの期限は当日のまま
	edt := time.FixedZone("EDT", -4*60*60)
	orig := today
	today = func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, edt) }
	t.Cleanup(func() { today = orig })

	_, errOut, err := c.run("todos", "add", "Dentist", "--due", "2026-10-15")
	require.NoError(t, err, errOut)
	_, _, err = c.run("todos", "add", "Taxes", "--due", "2026-10-16")
	require.NoError(t, err)

	out, _, err := c.run("todos", "list", "--view", "today")
	require.NoError(t, err)
	assert.Contains(t, out, "Dentist")
	assert.Contains(t, out, "期限: 2026/10/15")
	assert.NotContains(t, out, "Taxes")
}

func TestCLI_Show(t *testing.T) {
	c := setupCLI(t)

	out, _, err := c.run("categories", "add", "仕事")
	require.NoError(t, err)
	catID := idOf(t, out, "仕事")

	out, errOut, err := c.run("todos", "add", "週次レポート", "-c", catID, "-d", "金曜まで")
	require.NoError(t, err, errOut)
	todoID := idOf(t, out, "週次レポート")

	out, _, err = c.run("todos", "show", todoID)
	require.NoError(t, err)
	assert.Contains(t, out, "週次レポート")
	assert.Contains(t, out, "#仕事")
	assert.Contains(t, out, "金曜まで")

	out, _, err = c.run("categories", "show", catID)
	require.NoError(t, err)
	assert.Contains(t, out, "仕事")
	assert.Contains(t, out, "週次レポート")

	// --- 存在しないID ---
	_, _, err = c.run("todos", "show", "missing")
	assert.ErrorContains(t, err, "Todo not found")

	_, _, err = c.run("categories", "show", "missing")
	assert.ErrorContains(t, err, "Category not found")

	// --- タスクが無いカテゴリ ---
	out, _, err = c.run("categories", "add", "趣味")
	require.NoError(t, err)
	out, _, err = c.run("categories", "show", idOf(t, out, "趣味"))
	require.NoError(t, err)
	assert.Contains(t, out, "このカテゴリのタスクはありません。")
}

func TestCLI_ClientCommandsWithoutDatabaseSettings(t *testing.T) {
	c := setupCLI(t)
	// APIだけを使うマシンには DB_* が無い
	for _, key := range []string{"DB_DRIVER", "DB_USER", "DATABASE_PATH"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	out, errOut, err := c.run("todos", "list")
	require.NoError(t, err, errOut)
	assert.Contains(t, out, "タスクがありません。")

	_, errOut, err = c.run("categories", "list")
	require.NoError(t, err, errOut)

	// データベースを使うコマンドは接続前に設定エラーになる
	_, _, err = c.run("migrate")
	assert.ErrorContains(t, err, "DB_USER is required for driver mysql")
}

func TestCLI_MigrateAndSeed(t *testing.T) {
	c := setupCLI(t)

	out, errOut, err := c.run("migrate")
	require.NoError(t, err, errOut)
	assert.Contains(t, out, "migrated (sqlite)")

	path := filepath.Join(t.TempDir(), "seed.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[categories]]
name = "仕事"

[[todos]]
title = "週次レポート"
category = "仕事"
`), 0o600))

	out, errOut, err = c.run("seed", path)
	require.NoError(t, err, errOut)
	assert.Contains(t, out, "categories: 1 created, 0 skipped; todos: 1 created")

	out, _, err = c.run("seed", path)
	require.NoError(t, err)
	assert.Contains(t, out, "categories: 0 created, 1 skipped; todos: 1 created")
}

func TestServe_GracefulShutdown(t *testing.T) {
	t.Setenv("ENV", config.EnvTest)
	t.Setenv("DB_DRIVER", config.DriverSQLite)
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "serve.db"))
	t.Setenv("HTTP_HOST", "127.0.0.1")
	t.Setenv("HTTP_PORT", "0")

	a := &app{envFiles: []string{filepath.Join(t.TempDir(), "none.env")}}
	require.NoError(t, a.init(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx, true) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
