package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"texbake/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently processed archives",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer func() { _ = store.Close() }()

			records, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No archives processed yet")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				detail := record.Material
				if record.Status == history.StatusFailed {
					detail = record.ErrorMessage
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", record.ID),
					record.StartedAt.Local().Format(time.DateTime),
					filepath.Base(record.Archive),
					string(record.Status),
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Started", "Archive", "Status", "Detail"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of records to show")
	return cmd
}
