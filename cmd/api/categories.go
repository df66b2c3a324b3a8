package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/furoku/ultimate-todo-app/internal/category"
	"github.com/furoku/ultimate-todo-app/internal/models"
)

func newCategoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "カテゴリを管理します",
	}
	cmd.AddCommand(
		newCategoriesListCmd(a),
		newCategoriesShowCmd(a),
		newCategoriesAddCmd(a),
		newCategoriesUpdateCmd(a),
		newCategoriesDeleteCmd(a),
	)
	return cmd
}

func (a *app) categoryController(cmd *cobra.Command) *category.Controller {
	return category.NewController(a.client(), a.notifier(cmd.ErrOrStderr()), a.logger)
}

func newCategoriesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "カテゴリ一覧を名前順に表示します",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.categoryController(cmd)
			if err := c.Load(cmd.Context()); err != nil {
				return err
			}
			renderCategoryList(cmd.OutOrStdout(), c.Categories())
			return nil
		},
	}
}

func newCategoriesShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "カテゴリと所属するタスクを表示します",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client().GetCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderCategory(cmd.OutOrStdout(), c)
			return nil
		},
	}
}

func newCategoriesAddCmd(a *app) *cobra.Command {
	var color string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "カテゴリを追加します",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := a.categoryController(cmd).Add(cmd.Context(), models.CreateCategoryRequest{Name: args[0], Color: color})
			if err != nil {
				return err
			}
			renderCategoryList(cmd.OutOrStdout(), []*models.Category{created})
			return nil
		},
	}
	cmd.Flags().StringVar(&color, "color", "", "色 (#RRGGBB、省略時は "+models.DefaultCategoryColor+")")
	return cmd
}

func newCategoriesUpdateCmd(a *app) *cobra.Command {
	var name, color string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "カテゴリの名前と色を変更します",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req models.UpdateCategoryRequest
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("color") {
				req.Color = &color
			}
			if req.Name == nil && req.Color == nil {
				return fmt.Errorf("nothing to update")
			}
			updated, err := a.categoryController(cmd).Update(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			renderCategoryList(cmd.OutOrStdout(), []*models.Category{updated})
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "新しい名前")
	cmd.Flags().StringVar(&color, "color", "", "新しい色 (#RRGGBB)")
	return cmd
}

func newCategoriesDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "カテゴリを削除します。所属していたタスクは未分類になります",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.categoryController(cmd).Remove(cmd.Context(), args[0])
		},
	}
}
