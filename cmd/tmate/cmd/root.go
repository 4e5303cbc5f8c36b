package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"transcribe-mate/cmd/tmate/cmd/clean"
	"transcribe-mate/cmd/tmate/cmd/prompt"
	"transcribe-mate/cmd/tmate/cmd/record"
	"transcribe-mate/cmd/tmate/cmd/serve"
	"transcribe-mate/cmd/tmate/cmd/shared"
	"transcribe-mate/cmd/tmate/cmd/shell"
	"transcribe-mate/cmd/tmate/cmd/transcribe"
	"transcribe-mate/cmd/tmate/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tmate",
	Short: "Record, transcribe and clean up speech from the terminal",
	Long: `tmate turns speech into clean text.

- Record from the microphone, upload an audio file or paste text
- The backend transcribes audio with Whisper (OpenAI or whisper.cpp)
- Optionally clean the transcript with an LLM, using a custom instruction
- Copy either version to the clipboard`,
	TraverseChildren: true,
	SilenceUsage:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(record.Cmd)
	rootCmd.AddCommand(clean.Cmd)
	rootCmd.AddCommand(prompt.Cmd)
	rootCmd.AddCommand(shell.Cmd)
	rootCmd.AddCommand(version.Cmd)

	shared.BindPersistentFlags(rootCmd)
}
