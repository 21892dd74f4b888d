package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/postcard/pkg/commands/options"
	"tableflip.dev/postcard/pkg/logging"
	"tableflip.dev/postcard/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	po := &options.PresetOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive editor",
		Example: `
postcard ui
postcard ui --theme dark
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			// The editor owns the terminal; log output would tear the screen.
			s, cfg, closer, err := openSession(ctx, logging.Discard())
			if err != nil {
				return output.HandleError(err)
			}
			defer closer()
			r := ui.UI{Session: s, Theme: po.ResolveTheme(cfg.Theme)}
			return output.HandleError(r.Do(ctx))
		},
	}

	options.AddThemeArgs(cmd, po)

	topLevel.AddCommand(cmd)
}
