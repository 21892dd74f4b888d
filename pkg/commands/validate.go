package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tableflip.dev/postcard/pkg/commands/options"
	"tableflip.dev/postcard/pkg/logging"
	"tableflip.dev/postcard/pkg/runner/validate"
	"tableflip.dev/postcard/pkg/store"
)

func addValidate(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	wo := &options.WatchOptions{}

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a template file without importing it",
		Example: `
postcard validate welcome.json
postcard validate welcome.json --watch
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output.JSON = oo.JSON
			cfg, err := store.LoadConfig()
			if err != nil {
				return output.HandleError(err)
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			r := validate.Validate{
				Path:   args[0],
				Limits: limits(cfg),
				Watch:  wo.Watch,
				JSON:   oo.JSON,
				Log:    logging.New(verbose),
			}
			return output.HandleError(r.Do(ctx))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddWatchArgs(cmd, wo)

	topLevel.AddCommand(cmd)
}
