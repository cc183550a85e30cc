package commands

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/dirsum/pkg/config"
	"github.com/arthur-debert/dirsum/pkg/core"
	"github.com/arthur-debert/dirsum/pkg/display"
)

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "diff <old-manifest> <new-manifest>",
		Short:   MsgDiffShort,
		Long:    MsgDiffLong,
		Example: MsgDiffExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd, settings.Output)
			if err != nil {
				return err
			}

			res, err := core.DiffManifests(core.DiffManifestsOptions{
				PrevPath: args[0],
				CurrPath: args[1],
			})
			if err != nil {
				return err
			}

			view := display.NewDiffView(args[0], args[1], res)
			if format.IsMachine() {
				out, err := display.RenderMachine(format, view)
				if err != nil {
					return err
				}
				emit(cmd, out)
			} else {
				emit(cmd, display.ForFormat(format).RenderDiff(view))
			}

			return outcomeErr(res.Outcome)
		},
	}

	return cmd
}
