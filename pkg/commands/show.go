package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/postcard/pkg/app"
	"tableflip.dev/postcard/pkg/commands/options"
	"tableflip.dev/postcard/pkg/runner/show"
	"tableflip.dev/postcard/pkg/store"
)

func addShow(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the outline of the live template",
		Example: `
postcard show
postcard show --show-id
postcard show --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output.JSON = oo.JSON
			return withSession(func(ctx context.Context, s *app.Session, _ *store.FileConfig) error {
				r := show.Show{Session: s, ShowID: oo.ShowID, JSON: oo.JSON, Print: oo.Print}
				return r.Do(ctx)
			})
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}
