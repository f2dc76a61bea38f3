package commands

import (
	"github.com/spf13/cobra"

	"github.com/cloudai-x/cwkit/pkg/config"
	"github.com/cloudai-x/cwkit/pkg/install"
	"github.com/cloudai-x/cwkit/pkg/paths"
	"github.com/cloudai-x/cwkit/pkg/report"
)

func newStatusCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.UserConfigFilePath())
			if err != nil {
				return err
			}

			p, err := paths.New(install.ResolveTarget(target, cfg))
			if err != nil {
				return err
			}

			report.Render(report.Summarize(p.Target()), cmd.OutOrStdout(), report.FormatAuto)
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", MsgFlagTarget)

	return cmd
}
