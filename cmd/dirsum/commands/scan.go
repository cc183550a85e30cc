package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dirsum/pkg/algo"
	"github.com/arthur-debert/dirsum/pkg/config"
	"github.com/arthur-debert/dirsum/pkg/core"
	"github.com/arthur-debert/dirsum/pkg/display"
	"github.com/arthur-debert/dirsum/pkg/treehash"
)

func newScanCmd() *cobra.Command {
	var (
		manifestOut string
		algorithm   string
		blockKiB    int
		jobs        int
		exclude     []string
		keepGoing   bool
		skipSpecial bool
		noProgress  bool
		priorPath   string
		trustMTime  bool
	)

	cmd := &cobra.Command{
		Use:     "scan <path>",
		Short:   MsgScanShort,
		Long:    MsgScanLong,
		Example: MsgScanExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			// Explicit flags win over the configured defaults.
			sc := settings.Scan
			flags := cmd.Flags()
			if flags.Changed("algorithm") {
				sc.Algorithm = algorithm
			}
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
			if flags.Changed("trust-mtime") {
				sc.TrustMTime = trustMTime
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

			res, err := core.ScanTree(core.ScanTreeOptions{
				Path:        args[0],
				Algorithm:   sc.Algorithm,
				BlockSize:   sc.BlockSizeBytes(),
				Jobs:        sc.Jobs,
				KeepGoing:   sc.KeepGoing,
				SkipSpecial: sc.SkipSpecial,
				Exclude:     sc.Exclude,
				ManifestOut: manifestOut,
				PriorPath:   priorPath,
				TrustMTime:  sc.TrustMTime,
				Stats:       stats,
			})
			// Clear the progress line before printing anything.
			progress.Stop()
			if err != nil {
				return err
			}

			view := display.NewScanView(args[0], res, manifestOut)
			if format.IsMachine() {
				out, err := display.RenderMachine(format, view)
				if err != nil {
					return err
				}
				emit(cmd, out)
			} else {
				emit(cmd, display.ForFormat(format).RenderScan(view))
			}

			return outcomeErr(res.Outcome)
		},
	}

	cmd.Flags().StringVarP(&manifestOut, "output", "o", "", MsgFlagManifestOut)
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", algo.DefaultName, MsgFlagAlgorithm)
	cmd.Flags().IntVarP(&blockKiB, "block-size", "b", 128, MsgFlagBlockSize)
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, MsgFlagJobs)
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, MsgFlagExclude)
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, MsgFlagKeepGoing)
	cmd.Flags().BoolVar(&skipSpecial, "skip-special", true, MsgFlagSkipSpecial)
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, MsgFlagNoProgress)
	cmd.Flags().StringVar(&priorPath, "prior", "", MsgFlagPrior)
	cmd.Flags().BoolVar(&trustMTime, "trust-mtime", false, MsgFlagTrustMTime)

	return cmd
}
