package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tableflip.dev/postcard/pkg/commands/options"
	"tableflip.dev/postcard/pkg/logging"
	"tableflip.dev/postcard/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	po := &options.PresetOptions{}

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the live template to an assistant over MCP",
		Long: `Start a Model Context Protocol server on stdin and stdout. It exposes the
outline, validation, import, structural edits, settings and undo/redo of the
live template. Logs go to stderr.`,
		Example: `
postcard mcp
postcard mcp --theme dark -v
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			log := logging.New(verbose)
			s, cfg, closer, err := openSession(ctx, log)
			if err != nil {
				return output.HandleError(err)
			}
			defer closer()

			r := mcp.Runner{
				Session: s,
				Theme:   po.ResolveTheme(cfg.Theme),
				Limits:  limits(cfg),
				Version: AppVersion,
				Log:     log,
				In:      cmd.InOrStdin(),
				Out:     cmd.OutOrStdout(),
			}
			return output.HandleError(r.Do(ctx))
		},
	}

	options.AddThemeArgs(cmd, po)

	topLevel.AddCommand(cmd)
}
