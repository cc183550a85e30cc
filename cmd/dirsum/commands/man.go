package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dirsum/internal/version"
)

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		Long:    MsgManLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			header := &doc.GenManHeader{
				Title:   "DIRSUM",
				Section: "1",
				Source:  "dirsum " + version.Version,
				Manual:  "dirsum manual",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return err
			}
			emit(cmd, fmt.Sprintf(MsgManWrittenFormat, dir))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", MsgFlagManDir)

	return cmd
}
