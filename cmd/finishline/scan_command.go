package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"finishline/internal/haptics"
	"finishline/internal/notices"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var noBell bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run an interactive scan session",
		Long: strings.TrimSpace(`
Run an interactive scan session. Scan a participant bib tag, then the numeric
finish-position token; each valid pair is recorded and persisted immediately.
Payloads are read one per line, which matches a barcode scanner in
keyboard-wedge mode. Type "status" to see the machine state, "quit" or EOF to
close the session.
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var feedback haptics.Feedback = haptics.Noop{}
			if cfg.Haptics.Enabled && !noBell && isatty.IsTerminal(os.Stdout.Fd()) {
				feedback = haptics.TerminalBell{Out: out}
			}

			deps, err := ctx.openSession(cmd.Context(), notices.ConsolePresenter{Out: out}, feedback)
			if err != nil {
				return err
			}
			defer deps.releaser()

			fmt.Fprintf(out, "Scan session ready (bib prefix %q, %d finishes on record).\n",
				cfg.Scanning.BibPrefix, len(deps.session.Records()))
			fmt.Fprintln(out, "Scan a bib tag, then its finish token. Type \"quit\" to stop.")

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				payload := strings.TrimSpace(scanner.Text())
				if payload == "" {
					continue
				}
				if payload == "quit" || payload == "exit" {
					break
				}
				if payload == "status" {
					printScanStatus(out, deps)
					continue
				}
				deps.session.Submit(cmd.Context(), payload)
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read scan input: %w", err)
			}

			if pending, ok := deps.session.Pending(); ok {
				fmt.Fprintf(out, "Warning: %s is still awaiting a finish token and was not recorded.\n", pending)
			}
			fmt.Fprintf(out, "Session closed with %d finishes on record.\n", len(deps.session.Records()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noBell, "no-bell", false, "Disable the terminal-bell confirmation pulse")
	return cmd
}

func printScanStatus(out io.Writer, deps *sessionDeps) {
	if pending, ok := deps.session.Pending(); ok {
		fmt.Fprintf(out, "Awaiting finish token for %s.\n", pending)
	} else {
		fmt.Fprintln(out, "Idle; scan a bib tag.")
	}
	if notice, ok := deps.surface.Current(); ok {
		fmt.Fprintf(out, "Notice: %s\n", notice.Message)
	}
	fmt.Fprintf(out, "%d finishes on record.\n", len(deps.session.Records()))
}
