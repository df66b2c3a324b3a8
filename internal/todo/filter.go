package todo

import (
	"strings"
	"time"

	"github.com/furoku/ultimate-todo-app/internal/models"
)

const (
	// AllStatuses はステータスで絞り込まないことを表します。
	AllStatuses models.Status = "ALL"
	// AllPriorities は優先度で絞り込まないことを表します。
	AllPriorities models.Priority = "ALL"
)

// Filter は一覧の絞り込み条件です。すべての条件を満たすタスクだけが残ります。
// ゼロ値は何も絞り込みません。
type Filter struct {
	Status   models.Status
	Priority models.Priority
	Search   string
}

// Match は todo が条件を満たすかどうかを返します。
// Search はタイトルまたは説明に対する大文字小文字を区別しない部分一致です。
func (f Filter) Match(todo *models.Todo) bool {
	if f.Status != "" && f.Status != AllStatuses && todo.Status != f.Status {
		return false
	}
	if f.Priority != "" && f.Priority != AllPriorities && todo.Priority != f.Priority {
		return false
	}
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(todo.Title), q) {
		return true
	}
	return todo.Description != nil && strings.Contains(strings.ToLower(*todo.Description), q)
}

// Apply は元の順序を保ったまま条件に合うタスクを返します。
func (f Filter) Apply(todos []*models.Todo) []*models.Todo {
	out := make([]*models.Todo, 0, len(todos))
	for _, t := range todos {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// DueToday は期限が now と同じ日付で、まだ完了していないタスクを返します。
// 日付の比較は DueDay で now のタイムゾーンの暦日にそろえて行います。
func DueToday(todos []*models.Todo, now time.Time) []*models.Todo {
	y, m, d := now.Date()
	out := make([]*models.Todo, 0)
	for _, t := range todos {
		if t.DueDate == nil || t.Status == models.StatusCompleted {
			continue
		}
		dy, dm, dd := DueDay(*t.DueDate, now.Location()).Date()
		if dy == y && dm == m && dd == d {
			out = append(out, t)
		}
	}
	return out
}

// DueDay は期限を loc の暦日 (0時) に変換します。
// UTCの0時ちょうどは "2006-01-02" のような日付のみの入力なので、タイムゾーンを変換せずにその日付を使います。
func DueDay(due time.Time, loc *time.Location) time.Time {
	u := due.UTC()
	if u.Equal(u.Truncate(24 * time.Hour)) {
		return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, loc)
	}
	l := due.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, loc)
}

// Important は優先度が HIGH で、まだ完了していないタスクを返します。
func Important(todos []*models.Todo) []*models.Todo {
	out := make([]*models.Todo, 0)
	for _, t := range todos {
		if t.Priority == models.PriorityHigh && t.Status != models.StatusCompleted {
			out = append(out, t)
		}
	}
	return out
}
