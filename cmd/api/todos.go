package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/furoku/ultimate-todo-app/internal/models"
	"github.com/furoku/ultimate-todo-app/internal/tabs"
	"github.com/furoku/ultimate-todo-app/internal/todo"
)

const (
	viewAll       = "all"
	viewToday     = "today"
	viewImportant = "important"
)

func newTodosCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "todos",
		Aliases: []string{"todo"},
		Short:   "タスクを管理します",
	}
	cmd.AddCommand(
		newTodosListCmd(a),
		newTodosShowCmd(a),
		newTodosAddCmd(a),
		newTodosUpdateCmd(a),
		newTodosToggleCmd(a),
		newTodosDeleteCmd(a),
	)
	return cmd
}

func (a *app) todoController(cmd *cobra.Command) *todo.Controller {
	return todo.NewController(a.client(), a.notifier(cmd.ErrOrStderr()), a.logger)
}

func newTodosListCmd(a *app) *cobra.Command {
	var (
		status   string
		priority string
		search   string
		view     string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "タスク一覧を表示します",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.todoController(cmd)
			if err := c.Load(cmd.Context()); err != nil {
				return err
			}
			c.SetFilter(todo.Filter{
				Status:   models.Status(strings.ToUpper(status)),
				Priority: models.Priority(strings.ToUpper(priority)),
				Search:   search,
			})

			current := viewAll
			tb := tabs.Tabs{
				BaseID:        "todos",
				Value:         current,
				OnValueChange: func(v string) { current = v },
				Items: []tabs.Item{
					{Value: viewAll, Label: "すべて"},
					{Value: viewToday, Label: "今日"},
					{Value: viewImportant, Label: "重要"},
				},
			}
			if !tb.Click(view) {
				return fmt.Errorf("unknown view %q (all, today, important)", view)
			}
			tb.Value = current

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, tabs.Render(tb))
			panel, _ := tb.VisiblePanel()
			switch panel.Value {
			case viewToday:
				renderTodoList(out, c.DueToday(today()), c.Loading())
			case viewImportant:
				renderTodoList(out, c.Important(), c.Loading())
			default:
				renderTodoList(out, c.Filtered(), c.Loading())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", string(todo.AllStatuses), "ステータスで絞り込む (ALL, TODO, IN_PROGRESS, COMPLETED)")
	cmd.Flags().StringVar(&priority, "priority", string(todo.AllPriorities), "優先度で絞り込む (ALL, LOW, MEDIUM, HIGH)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "タイトルと説明を検索する")
	cmd.Flags().StringVar(&view, "view", viewAll, "表示するタブ (all, today, important)")
	return cmd
}

func newTodosShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "タスクを1件表示します",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.client().GetTodo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderTodo(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

func newTodosAddCmd(a *app) *cobra.Command {
	var (
		description string
		status      string
		priority    string
		due         string
		categoryID  string
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "タスクを追加します",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.CreateTodoRequest{
				Title:    args[0],
				Status:   models.Status(strings.ToUpper(status)),
				Priority: models.Priority(strings.ToUpper(priority)),
			}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			dueDate, err := parseDateFlag(due)
			if err != nil {
				return err
			}
			req.DueDate = dueDate
			if categoryID != "" {
				req.CategoryID = &categoryID
			}

			created, err := a.todoController(cmd).Add(cmd.Context(), req)
			if err != nil {
				return err
			}
			renderTodo(cmd.OutOrStdout(), created)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "説明")
	cmd.Flags().StringVar(&status, "status", "", "ステータス (TODO, IN_PROGRESS, COMPLETED)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "優先度 (LOW, MEDIUM, HIGH)")
	cmd.Flags().StringVar(&due, "due", "", "期限 (2006-01-02)")
	cmd.Flags().StringVarP(&categoryID, "category", "c", "", "カテゴリID")
	return cmd
}

func newTodosUpdateCmd(a *app) *cobra.Command {
	var (
		title       string
		description string
		status      string
		priority    string
		due         string
		completedAt string
		categoryID  string
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "タスクを更新します。指定したフラグの項目だけが変わります",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req models.UpdateTodoRequest
			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = models.Some(title)
			}
			if flags.Changed("description") {
				req.Description = optionalString(description)
			}
			if flags.Changed("status") {
				req.Status = models.Some(models.Status(strings.ToUpper(status)))
			}
			if flags.Changed("priority") {
				req.Priority = models.Some(models.Priority(strings.ToUpper(priority)))
			}
			if flags.Changed("due") {
				d, err := optionalDate(due)
				if err != nil {
					return err
				}
				req.DueDate = d
			}
			if flags.Changed("completed-at") {
				d, err := optionalDate(completedAt)
				if err != nil {
					return err
				}
				req.CompletedAt = d
			}
			if flags.Changed("category") {
				req.CategoryID = optionalString(categoryID)
			}
			if req.Empty() {
				return fmt.Errorf("nothing to update")
			}

			updated, err := a.todoController(cmd).Update(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			renderTodo(cmd.OutOrStdout(), updated)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "タイトル")
	cmd.Flags().StringVarP(&description, "description", "d", "", "説明 (空文字で削除)")
	cmd.Flags().StringVar(&status, "status", "", "ステータス (TODO, IN_PROGRESS, COMPLETED)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "優先度 (LOW, MEDIUM, HIGH)")
	cmd.Flags().StringVar(&due, "due", "", "期限 (空文字で削除)")
	cmd.Flags().StringVar(&completedAt, "completed-at", "", "完了日時 (status が COMPLETED のときだけ有効)")
	cmd.Flags().StringVarP(&categoryID, "category", "c", "", "カテゴリID (空文字で未分類)")
	return cmd
}

func newTodosToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "完了と未着手を切り替えます",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.todoController(cmd)
			if err := c.Load(cmd.Context()); err != nil {
				return err
			}
			updated, err := c.Toggle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderTodo(cmd.OutOrStdout(), updated)
			return nil
		},
	}
}

func newTodosDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "タスクを削除します",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.todoController(cmd).Remove(cmd.Context(), args[0])
		},
	}
}

// optionalString は空文字を null として送ります。
func optionalString(s string) models.Optional[string] {
	if s == "" {
		return models.Null[string]()
	}
	return models.Some(s)
}

func optionalDate(s string) (models.Optional[models.Date], error) {
	d, err := parseDateFlag(s)
	if err != nil {
		return models.Optional[models.Date]{}, err
	}
	if d == nil {
		return models.Null[models.Date](), nil
	}
	return models.Some(*d), nil
}
