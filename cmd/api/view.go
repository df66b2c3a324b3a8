package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/furoku/ultimate-todo-app/internal/models"
	"github.com/furoku/ultimate-todo-app/internal/todo"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ec9b0"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666"))
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("#999"))
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#999"))
)

var statusLabels = map[models.Status]string{
	models.StatusTodo:       "未着手",
	models.StatusInProgress: "進行中",
	models.StatusCompleted:  "完了",
}

var priorityStyles = map[models.Priority]lipgloss.Style{
	models.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("#d73a4a")),
	models.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
	models.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
}

var priorityLabels = map[models.Priority]string{
	models.PriorityHigh:   "高",
	models.PriorityMedium: "中",
	models.PriorityLow:    "低",
}

func renderTodoList(w io.Writer, todos []*models.Todo, loading bool) {
	fmt.Fprintln(w, headerStyle.Render("タスク一覧"))
	switch {
	case loading:
		fmt.Fprintln(w, mutedStyle.Render("読み込み中..."))
		return
	case len(todos) == 0:
		fmt.Fprintln(w, mutedStyle.Render("タスクがありません。新しいタスクを追加してください。"))
		return
	}
	for _, t := range todos {
		renderTodo(w, t)
	}
}

func renderTodo(w io.Writer, t *models.Todo) {
	check := "[ ]"
	title := t.Title
	if t.Status == models.StatusCompleted {
		check = "[x]"
		title = doneStyle.Render(title)
	}

	parts := []string{
		check,
		title,
		"(" + statusLabels[t.Status] + ")",
		priorityStyles[t.Priority].Render("優先度:" + priorityLabels[t.Priority]),
	}
	if t.Category != nil {
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(t.Category.Color)).Render("#"+t.Category.Name))
	}
	if t.DueDate != nil {
		parts = append(parts, "期限: "+todo.DueDay(*t.DueDate, today().Location()).Format("2006/01/02"))
	}
	fmt.Fprintf(w, "%s  %s\n", strings.Join(parts, " "), idStyle.Render(t.ID))

	if t.Description != nil && *t.Description != "" {
		fmt.Fprintln(w, "    "+mutedStyle.Render(*t.Description))
	}
}

func renderCategoryList(w io.Writer, categories []*models.Category) {
	fmt.Fprintln(w, headerStyle.Render("カテゴリ一覧"))
	if len(categories) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("カテゴリがありません。"))
		return
	}
	for _, c := range categories {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("■")
		fmt.Fprintf(w, "%s %s %s  %s\n", swatch, c.Name, mutedStyle.Render(c.Color), idStyle.Render(c.ID))
	}
}

// renderCategory はカテゴリの見出しと所属するタスクを表示します。
func renderCategory(w io.Writer, c *models.CategoryWithTodos) {
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("■")
	fmt.Fprintf(w, "%s %s %s  %s\n", swatch, headerStyle.Render(c.Name), mutedStyle.Render(c.Color), idStyle.Render(c.ID))
	if len(c.Todos) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("このカテゴリのタスクはありません。"))
		return
	}
	for _, t := range c.Todos {
		renderTodo(w, t)
	}
}

func parseDateFlag(s string) (*models.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// today はタスクの期限を比較する基準の現在時刻です。
var today = time.Now
