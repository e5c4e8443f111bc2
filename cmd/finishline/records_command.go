package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"finishline/internal/config"
	"finishline/internal/records"
)

func newRecordsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "records",
		Short: "List recorded finishes in completion order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *records.Store) error {
				list, err := store.Load(cmd.Context())
				if err != nil {
					return err
				}

				if asJSON {
					return writeJSON(cmd, list.Items())
				}

				out := cmd.OutOrStdout()
				items := list.Items()
				if len(items) == 0 {
					fmt.Fprintln(out, "No finishes recorded.")
					return nil
				}

				rows := make([][]string, 0, len(items))
				for i, record := range items {
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						record.Participant,
						strconv.Itoa(record.Position),
						record.RecordedAt.Local().Format(time.TimeOnly),
					})
				}

				headers := []string{"#", "Participant", "Position", "Recorded"}
				if isatty.IsTerminal(os.Stdout.Fd()) {
					fmt.Fprintln(out, renderTable(headers, rows, 0, 2))
					return nil
				}
				for _, row := range rows {
					fmt.Fprintln(out, strings.Join(row, "\t"))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit records as JSON")
	return cmd
}
