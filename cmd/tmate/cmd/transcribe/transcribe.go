package transcribe

import (
	"fmt"

	"github.com/spf13/cobra"
	"transcribe-mate/cmd/tmate/cmd/shared"
	"transcribe-mate/internal/app/ui"
)

var cleanAfter bool
var instruction string

func init() {
	Cmd.Flags().BoolVarP(&cleanAfter, "clean", "c", false, "clean the transcript and print the cleaned version")
	Cmd.Flags().StringVar(&instruction, "prompt", "", "cleaning instruction (default: the backend's)")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe an audio file and print the transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, logger, err := shared.Session(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer ctrl.Close()

		spinner := shared.Spinner(cmd)
		ctx := cmd.Context()

		err = ui.Run(spinner, "Transcribing", func() error {
			return ctrl.UploadFile(ctx, args[0])
		})
		if err != nil {
			return err
		}

		if cleanAfter {
			err = ui.Run(spinner, "Cleaning", func() error {
				return ctrl.Clean(ctx, instruction)
			})
			if err != nil {
				return fmt.Errorf("%s: %w", ctrl.Snapshot().Err, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ctrl.Snapshot().Cleaned)
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), ctrl.Snapshot().Transcript)
		return nil
	},
}
