package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"finishline/internal/notices"
)

func newResetCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear every recorded finish and erase persisted state",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			deps, err := ctx.openSession(cmd.Context(), notices.ConsolePresenter{Out: out}, nil)
			if err != nil {
				return err
			}
			defer deps.releaser()

			count := len(deps.session.Records())
			if !force {
				fmt.Fprintf(out, "This erases %d recorded finishes. Continue? [y/N] ", count)
				reader := bufio.NewReader(cmd.InOrStdin())
				answer, _ := reader.ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
			}

			deps.session.Reset(cmd.Context())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")
	return cmd
}
