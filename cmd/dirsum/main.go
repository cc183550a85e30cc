package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dirsum/cmd/dirsum/commands"
	"github.com/arthur-debert/dirsum/pkg/style"
	"github.com/arthur-debert/dirsum/pkg/ui"
)

func main() {
	rootCmd := commands.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Outcome errors only carry the exit code; the command already
		// rendered its report.
		if !commands.IsOutcome(err) {
			var renderer style.Renderer = style.NewPlainRenderer()
			if ui.DetectFormat(os.Stderr) == ui.FormatTerminal {
				renderer = style.NewTerminalRenderer()
			}
			fmt.Fprintln(os.Stderr, renderer.RenderError(err))
		}
		os.Exit(commands.ExitCode(err))
	}
}
