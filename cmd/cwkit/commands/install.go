package commands

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cloudai-x/cwkit/pkg/config"
	"github.com/cloudai-x/cwkit/pkg/install"
	"github.com/cloudai-x/cwkit/pkg/paths"
	"github.com/cloudai-x/cwkit/pkg/report"
)

func newInstallCmd() *cobra.Command {
	var (
		target      string
		timeoutSecs int
	)

	cmd := &cobra.Command{
		Use:     "install [owner/name]",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.UserConfigFilePath())
			if err != nil {
				return err
			}

			opts := install.Options{Target: target}
			if len(args) > 0 {
				opts.Locator = args[0]
			}
			if timeoutSecs > 0 {
				opts.Timeout = time.Duration(timeoutSecs) * time.Second
			}

			log.Info().
				Str("bundle", opts.Locator).
				Str("target", target).
				Msg("Installing workflow bundle")

			result, err := install.Install(cfg, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.Metadata != nil && result.Metadata.Name != "" {
				fmt.Fprintf(out, MsgInstalledBundleFormat, formatBold(result.Metadata.Name), result.Locator)
			} else {
				fmt.Fprintf(out, MsgInstalledFormat, formatBold(result.Locator.String()))
			}
			fmt.Fprintf(out, MsgStatsFormat, result.Stats.Added, result.Stats.Skipped)

			report.Render(result.Summary, out, report.FormatAuto)
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", MsgFlagTarget)
	cmd.Flags().IntVar(&timeoutSecs, "timeout", 0, MsgFlagTimeout)

	return cmd
}
