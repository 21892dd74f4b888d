package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/postcard/pkg/app"
	"tableflip.dev/postcard/pkg/commands/options"
	"tableflip.dev/postcard/pkg/runner/library"
	"tableflip.dev/postcard/pkg/store"
)

func addSave(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the live template into the library",
		Example: `
postcard save "weekly digest"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(ctx context.Context, s *app.Session, _ *store.FileConfig) error {
				r := library.Save{Session: s, Name: args[0]}
				return r.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addLibrary(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "library",
		Aliases: []string{"ls"},
		Short:   "List saved templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output.JSON = oo.JSON
			return withSession(func(ctx context.Context, s *app.Session, _ *store.FileConfig) error {
				r := library.List{Session: s, JSON: oo.JSON, Print: oo.Print}
				return r.Do(ctx)
			})
		},
	}
	options.AddOutputArg(cmd, oo)

	delConfirm := &options.ConfirmOptions{}
	del := &cobra.Command{
		Use:               "delete <name>",
		Short:             "Delete a saved template",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: libraryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := delConfirm.Confirm(cmd, "Delete "+args[0]); err != nil {
				return err
			}
			return withSession(func(ctx context.Context, s *app.Session, _ *store.FileConfig) error {
				r := library.Delete{Session: s, Name: args[0]}
				return r.Do(ctx)
			})
		},
	}
	options.AddConfirmArgs(del, delConfirm)
	cmd.AddCommand(del)

	topLevel.AddCommand(cmd)
}

func addOpen(topLevel *cobra.Command) {
	io := &options.ImportOptions{}

	cmd := &cobra.Command{
		Use:               "open <name>",
		Short:             "Load a saved template into the live template",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: libraryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := importOptions(io)
			if err != nil {
				return err
			}
			return withSession(func(ctx context.Context, s *app.Session, _ *store.FileConfig) error {
				r := library.Open{Session: s, Name: args[0], Options: opts}
				return r.Do(ctx)
			})
		},
	}

	options.AddImportArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addClear(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every block from the live template",
		Example: `
postcard clear
postcard clear --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := co.Confirm(cmd, "Clear the live template"); err != nil {
				return err
			}
			return withSession(func(ctx context.Context, s *app.Session, _ *store.FileConfig) error {
				r := library.Clear{Session: s}
				return r.Do(ctx)
			})
		},
	}

	options.AddConfirmArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
