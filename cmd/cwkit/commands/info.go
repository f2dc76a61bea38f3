package commands

import (
	"fmt"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/cloudai-x/cwkit/pkg/config"
	"github.com/cloudai-x/cwkit/pkg/install"
	"github.com/cloudai-x/cwkit/pkg/paths"
)

func newInfoCmd() *cobra.Command {
	var (
		target      string
		timeoutSecs int
	)

	cmd := &cobra.Command{
		Use:     "info [owner/name]",
		Short:   MsgInfoShort,
		Long:    MsgInfoLong,
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

			preview, err := install.Inspect(cfg, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if preview.Metadata != nil && preview.Metadata.Name != "" {
				fmt.Fprintf(out, "%s (%s)\n", formatBold(preview.Metadata.Name), preview.Locator)
				if preview.Metadata.Description != "" {
					fmt.Fprintf(out, "%s\n", preview.Metadata.Description)
				}
				fmt.Fprintln(out)
			} else {
				fmt.Fprintf(out, "%s\n\n", formatBold(preview.Locator.String()))
			}

			if preview.Readme == "" {
				fmt.Fprint(out, MsgNoReadme)
				return nil
			}
			fmt.Fprint(out, renderMarkdown(preview.Readme))
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", MsgFlagTarget)
	cmd.Flags().IntVar(&timeoutSecs, "timeout", 0, MsgFlagTimeout)

	return cmd
}

// renderMarkdown converts markdown to terminal output via glamour,
// falling back to the raw text if rendering fails.
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
