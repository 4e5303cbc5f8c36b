package prompt

import (
	"fmt"

	"github.com/spf13/cobra"
	"transcribe-mate/cmd/tmate/cmd/shared"
)

// Cmd represents the prompt command
var Cmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the backend's default cleaning instruction",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.ClientConfig(cmd)
		if err != nil {
			return err
		}

		text, err := shared.NewClient(cfg).SystemPrompt(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}
