package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dirsum/pkg/algo"
	"github.com/arthur-debert/dirsum/pkg/config"
	"github.com/arthur-debert/dirsum/pkg/style"
	"github.com/arthur-debert/dirsum/pkg/ui"
)

func newAlgosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "algos",
		Short:   MsgAlgosShort,
		Long:    MsgAlgosLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd, settings.Output)
			if err != nil {
				return err
			}

			var entries []string
			var defaultEntry string
			for _, name := range algo.Names() {
				a, err := algo.Lookup(name)
				if err != nil {
					return err
				}
				entry := fmt.Sprintf("%s (%d-byte digest)", name, a.Size())
				if name == algo.DefaultName {
					defaultEntry = entry
				}
				entries = append(entries, entry)
			}

			var renderer style.Renderer = style.NewPlainRenderer()
			if format == ui.FormatTerminal {
				renderer = style.NewTerminalRenderer()
			}
			emit(cmd, renderer.RenderAlgorithmList(entries, defaultEntry))
			return nil
		},
	}

	return cmd
}
