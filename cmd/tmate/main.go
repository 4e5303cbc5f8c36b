package main

import (
	"fmt"
	"os"

	"transcribe-mate/cmd/tmate/cmd"
	"transcribe-mate/internal/config"
)

func main() {
	// Missing keys only matter to `serve`, which checks them itself
	if _, err := config.InitializeConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Configuration Warning: %v\n", err)
	}

	cmd.Execute()
}
