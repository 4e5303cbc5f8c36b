package record

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"transcribe-mate/cmd/tmate/cmd/shared"
	"transcribe-mate/internal/app/ui"
)

// Cmd represents the record command
var Cmd = &cobra.Command{
	Use:   "record",
	Short: "Record from the microphone until Enter, then print the transcript",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, logger, err := shared.Session(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer ctrl.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := ctrl.StartRecording(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "🎙  Recording... press Enter to stop")

		enter := make(chan struct{})
		go func() {
			bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			close(enter)
		}()

		select {
		case <-enter:
		case <-ctx.Done():
			return ctx.Err()
		}

		err = ui.Run(shared.Spinner(cmd), "Transcribing", func() error {
			return ctrl.StopRecording(ctx)
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), ctrl.Snapshot().Transcript)
		return nil
	},
}
