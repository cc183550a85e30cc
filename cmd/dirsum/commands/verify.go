package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dirsum/pkg/config"
	"github.com/arthur-debert/dirsum/pkg/core"
	"github.com/arthur-debert/dirsum/pkg/display"
	"github.com/arthur-debert/dirsum/pkg/treehash"
)

func newVerifyCmd() *cobra.Command {
	var (
		manifestPath string
		blockKiB     int
		jobs         int
		exclude      []string
		keepGoing    bool
		skipSpecial  bool
		noProgress   bool
	)

	cmd := &cobra.Command{
		Use:     "verify <path>",
		Short:   MsgVerifyShort,
		Long:    MsgVerifyLong,
		Example: MsgVerifyExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			// The algorithm always comes from the stored manifest, so
			// only the scan mechanics are overridable here.
			sc := settings.Scan
			flags := cmd.Flags()
			if flags.Changed("block-size") {
				sc.BlockSize = blockKiB
			}
			if flags.Changed("jobs") {
				sc.Jobs = jobs
			}
			if flags.Changed("exclude") {
				sc.Exclude = exclude
			}
			if flags.Changed("keep-going") {
				sc.KeepGoing = keepGoing
			}
			if flags.Changed("skip-special") {
				sc.SkipSpecial = skipSpecial
			}

			format, err := outputFormat(cmd, settings.Output)
			if err != nil {
				return err
			}

			stats := treehash.NewStats()
			progress := display.NewProgress(os.Stderr, stats)
			if progressWanted(format, settings.Output, noProgress) {
				progress.Start()
			}
			defer progress.Stop()

			res, err := core.VerifyTree(core.VerifyTreeOptions{
				Path:         args[0],
				ManifestPath: manifestPath,
				BlockSize:    sc.BlockSizeBytes(),
				Jobs:         sc.Jobs,
				KeepGoing:    sc.KeepGoing,
				SkipSpecial:  sc.SkipSpecial,
				Exclude:      sc.Exclude,
				Stats:        stats,
			})
			progress.Stop()
			if err != nil {
				return err
			}

			view := display.NewVerifyView(args[0], manifestPath, res)
			if format.IsMachine() {
				out, err := display.RenderMachine(format, view)
				if err != nil {
					return err
				}
				emit(cmd, out)
			} else {
				emit(cmd, display.ForFormat(format).RenderVerify(view))
			}

			return outcomeErr(res.Outcome)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", MsgFlagManifest)
	_ = cmd.MarkFlagRequired("manifest")
	cmd.Flags().IntVarP(&blockKiB, "block-size", "b", 128, MsgFlagBlockSize)
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, MsgFlagJobs)
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, MsgFlagExclude)
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, MsgFlagKeepGoing)
	cmd.Flags().BoolVar(&skipSpecial, "skip-special", true, MsgFlagSkipSpecial)
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, MsgFlagNoProgress)

	return cmd
}
