package shell

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"transcribe-mate/cmd/tmate/cmd/shared"
	"transcribe-mate/internal/app/clipboard"
	"transcribe-mate/internal/app/session"
)

// Cmd represents the shell command
var Cmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive transcription session",
	Long: `Start an interactive session.

Record, upload or paste to get a transcript, clean it with an optional
instruction, toggle between the original and cleaned versions and copy
either to the clipboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, logger, err := shared.Session(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer ctrl.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		display := session.NewDisplay(clipboard.NewSystem())
		detach := display.Attach(ctrl)
		defer detach()

		return New(ctrl, display, cmd.OutOrStdout(), shared.Spinner(cmd)).Run(ctx, cmd.InOrStdin())
	},
}
