package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/furoku/ultimate-todo-app/internal/seed"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.toml>",
		Short: "TOMLファイルからカテゴリとタスクを投入します",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}

			h, err := a.openDB(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer h.Close()

			todoService, categoryService := h.services(a.logger)
			res, err := seed.NewSeeder(todoService, categoryService, a.logger).Apply(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "categories: %d created, %d skipped; todos: %d created\n",
				res.CategoriesCreated, res.CategoriesSkipped, res.TodosCreated)
			return nil
		},
	}
}
