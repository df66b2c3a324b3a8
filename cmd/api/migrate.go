package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "categories と todos のテーブルを作成します",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.openDB(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer h.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "migrated (%s)\n", h.Dialect)
			return nil
		},
	}
}
