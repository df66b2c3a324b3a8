package todo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/furoku/ultimate-todo-app/internal/models"
)

func ptr[T any](v T) *T { return &v }

func sampleTodos() []*models.Todo {
	return []*models.Todo{
		{ID: "A", Title: "Project plan", Status: models.StatusTodo, Priority: models.PriorityHigh},
		{ID: "B", Title: "Buy milk", Status: models.StatusCompleted, Priority: models.PriorityLow},
		{ID: "C", Title: "Weekly sync", Description: ptr("talk about the PROJECT budget"), Status: models.StatusInProgress, Priority: models.PriorityMedium},
		{ID: "D", Title: "Gym", Description: ptr("leg day"), Status: models.StatusTodo, Priority: models.PriorityHigh},
	}
}

func ids(todos []*models.Todo) []string {
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.ID)
	}
	return out
}

func TestFilter_AllPassesEverythingInOrder(t *testing.T) {
	todos := sampleTodos()

	got := Filter{Status: AllStatuses, Priority: AllPriorities, Search: ""}.Apply(todos)
	assert.Equal(t, []string{"A", "B", "C", "D"}, ids(got))

	// ゼロ値も同じ
	assert.Equal(t, []string{"A", "B", "C", "D"}, ids(Filter{}.Apply(todos)))
}

func TestFilter_Status(t *testing.T) {
	todos := sampleTodos()[:3]

	got := Filter{Status: models.StatusCompleted, Priority: AllPriorities}.Apply(todos)
	assert.Equal(t, []string{"B"}, ids(got))
}

func TestFilter_Search(t *testing.T) {
	todos := sampleTodos()

	// タイトルと説明のどちらにも一致し、大文字小文字を区別しない
	assert.Equal(t, []string{"A", "C"}, ids(Filter{Search: "proj"}.Apply(todos)))
	assert.Equal(t, []string{"A", "C"}, ids(Filter{Search: "PROJ"}.Apply(todos)))
	assert.Empty(t, Filter{Search: "nothing"}.Apply(todos))
}

func TestFilter_Composed(t *testing.T) {
	todos := sampleTodos()

	got := Filter{Status: models.StatusTodo, Priority: models.PriorityHigh, Search: "leg"}.Apply(todos)
	assert.Equal(t, []string{"D"}, ids(got))

	got = Filter{Status: models.StatusTodo, Priority: models.PriorityLow}.Apply(todos)
	assert.Empty(t, got)
}

func TestDueToday(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	now := time.Date(2025, 7, 1, 10, 0, 0, 0, jst)

	todos := []*models.Todo{
		// JSTでは 7/1 09:00
		{ID: "today", Status: models.StatusTodo, DueDate: ptr(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))},
		{ID: "done", Status: models.StatusCompleted, DueDate: ptr(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))},
		{ID: "tomorrow", Status: models.StatusTodo, DueDate: ptr(time.Date(2025, 7, 1, 16, 0, 0, 0, time.UTC))},
		{ID: "none", Status: models.StatusTodo},
	}

	assert.Equal(t, []string{"today"}, ids(DueToday(todos, now)))
}

func TestImportant(t *testing.T) {
	todos := sampleTodos()
	todos = append(todos, &models.Todo{ID: "E", Status: models.StatusCompleted, Priority: models.PriorityHigh})

	assert.Equal(t, []string{"A", "D"}, ids(Important(todos)))
}

func TestDueToday_DateOnlyWestOfUTC(t *testing.T) {
	edt := time.FixedZone("EDT", -4*60*60)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, edt)

	dateOnly, err := models.ParseDate("2026-10-15")
	assert.NoError(t, err)

	todos := []*models.Todo{
		// 日付のみの入力はUTCの0時として保存される
		{ID: "date-only", Status: models.StatusTodo, DueDate: ptr(dateOnly.Time)},
		// EDTでは 10/14 23:00
		{ID: "yesterday", Status: models.StatusTodo, DueDate: ptr(time.Date(2026, 10, 15, 3, 0, 0, 0, time.UTC))},
		// EDTでは 10/15 20:00
		{ID: "evening", Status: models.StatusTodo, DueDate: ptr(time.Date(2026, 10, 16, 0, 0, 0, 1, time.UTC))},
	}

	assert.Equal(t, []string{"date-only", "evening"}, ids(DueToday(todos, now)))
}

func TestDueDay(t *testing.T) {
	edt := time.FixedZone("EDT", -4*60*60)
	jst := time.FixedZone("JST", 9*60*60)

	dateOnly := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, edt), DueDay(dateOnly, edt))
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, jst), DueDay(dateOnly, jst))

	withTime := time.Date(2026, 10, 15, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, edt), DueDay(withTime, edt))
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, jst), DueDay(withTime, jst))
}
