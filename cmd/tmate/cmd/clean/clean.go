package clean

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"transcribe-mate/cmd/tmate/cmd/shared"
	"transcribe-mate/internal/app/ui"
)

var text string
var instruction string

func init() {
	Cmd.Flags().StringVarP(&text, "text", "t", "", "transcript to clean (default: read stdin)")
	Cmd.Flags().StringVar(&instruction, "prompt", "", "cleaning instruction (default: the backend's)")
}

// Cmd represents the clean command
var Cmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean a pasted transcript",
	Long: `Clean a transcript with the backend's LLM.

The text comes from --text or stdin, e.g.
  pbpaste | tmate clean --prompt "Format as bullet points"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := text
		if !cmd.Flags().Changed("text") {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			input = string(data)
		}

		ctrl, logger, err := shared.Session(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer ctrl.Close()

		ctx := cmd.Context()
		if err := ctrl.Paste(ctx, input); err != nil {
			return err
		}

		err = ui.Run(shared.Spinner(cmd), "Cleaning", func() error {
			return ctrl.Clean(ctx, instruction)
		})
		if err != nil {
			return fmt.Errorf("%s: %w", ctrl.Snapshot().Err, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ctrl.Snapshot().Cleaned)
		return nil
	},
}
