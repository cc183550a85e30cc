package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dirsum/pkg/config"
	"github.com/arthur-debert/dirsum/pkg/errors"
	"github.com/arthur-debert/dirsum/pkg/paths"
)

func newGenConfigCmd() *cobra.Command {
	var (
		write     bool
		effective bool
	)

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if effective {
				settings, err := config.Load()
				if err != nil {
					return err
				}
				out, err := config.EffectiveConfig(settings)
				if err != nil {
					return err
				}
				emit(cmd, out)
				return nil
			}

			content := config.GenerateConfigContent()
			if !write {
				emit(cmd, content)
				return nil
			}

			target := filepath.Join(paths.ConfigDir(), "dirsum.toml")
			if _, err := os.Stat(target); err == nil {
				return errors.Newf(errors.ErrInvalidInput, MsgErrConfigExists, target)
			}
			if err := os.MkdirAll(paths.ConfigDir(), 0o755); err != nil {
				return errors.Wrap(err, errors.ErrConfigLoad, "creating config directory")
			}
			if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
				return errors.Wrap(err, errors.ErrConfigLoad, "writing config file")
			}
			emit(cmd, fmt.Sprintf(MsgWroteConfigFormat, target))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)
	cmd.MarkFlagsMutuallyExclusive("write", "effective")

	return cmd
}
