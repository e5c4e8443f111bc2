package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"finishline/internal/notices"
	"finishline/internal/session"
)

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <payload>...",
		Short: "Submit scan payloads without an interactive session",
		Long: "Submit one or more payloads in order, exactly as if they had been " +
			"scanned. Useful for bench testing a label sheet before race day.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			deps, err := ctx.openSession(cmd.Context(), notices.ConsolePresenter{Out: out}, nil)
			if err != nil {
				return err
			}
			defer deps.releaser()

			for _, payload := range args {
				outcome := deps.session.Submit(cmd.Context(), payload)
				fmt.Fprintf(out, "%q -> %s\n", payload, describeOutcome(outcome))
			}

			if pending, ok := deps.session.Pending(); ok {
				fmt.Fprintf(out, "Note: %s is awaiting a finish token; the pending state is discarded when the command exits.\n", pending)
			}
			return nil
		},
	}
}

func describeOutcome(o session.Outcome) string {
	switch o.Kind {
	case session.OutcomeAccepted:
		return "accepted, awaiting finish token"
	case session.OutcomeRecorded:
		return fmt.Sprintf("recorded at position %d", o.Record.Position)
	case session.OutcomeRejectedParticipant:
		return "rejected: not a bib tag"
	case session.OutcomeRejectedDuplicateParticipant:
		return "rejected: participant already recorded"
	case session.OutcomeRejectedFinish:
		return "rejected: finish token must be a number"
	case session.OutcomeIgnoredDuplicateFinish:
		return "ignored: position already taken"
	default:
		return string(o.Kind)
	}
}
