package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_Notify(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	Success(c, "タスクを追加しました。")
	Error(c, "タスクの取得に失敗しました。")

	out := buf.String()
	assert.Contains(t, out, "成功")
	assert.Contains(t, out, "タスクを追加しました。")
	assert.Contains(t, out, "エラー")
	assert.Contains(t, out, "タスクの取得に失敗しました。")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestRecorder(t *testing.T) {
	var r Recorder
	_, ok := r.Last()
	assert.False(t, ok)

	Success(&r, "a")
	Error(&r, "b")

	got := r.Notifications()
	require.Len(t, got, 2)
	assert.Equal(t, Notification{Kind: KindSuccess, Title: TitleSuccess, Message: "a"}, got[0])

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, KindError, last.Kind)
	assert.Equal(t, "b", last.Message)
}
