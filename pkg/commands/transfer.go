package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/postcard/pkg/app"
	"tableflip.dev/postcard/pkg/commands/options"
	"tableflip.dev/postcard/pkg/runner/transfer"
	"tableflip.dev/postcard/pkg/store"
)

func importOptions(io *options.ImportOptions) (app.ImportOptions, error) {
	mode, err := app.ParseImportMode(io.Mode)
	if err != nil {
		return app.ImportOptions{}, err
	}
	return app.ImportOptions{Mode: mode, IncludeGeneral: io.IncludeGeneral}, nil
}

func addImport(topLevel *cobra.Command) {
	io := &options.ImportOptions{}

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Load a template file into the live template",
		Long: `Load a JSON or YAML template. The file is migrated, validated and sanitized
first; when anything is wrong the live template is left untouched and every
issue is listed.`,
		Example: `
postcard import welcome.json
postcard import footer.yaml --mode append
cat card.json | postcard import -
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := importOptions(io)
			if err != nil {
				return err
			}
			return withSession(func(ctx context.Context, s *app.Session, _ *store.FileConfig) error {
				r := transfer.Import{Session: s, Path: args[0], Options: opts, Stdin: cmd.InOrStdin()}
				return r.Do(ctx)
			})
		},
	}

	options.AddImportArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command) {
	eo := &options.ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the live template as JSON or YAML",
		Example: `
postcard export > card.json
postcard export --format yaml --out card.yaml
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return eo.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(ctx context.Context, s *app.Session, _ *store.FileConfig) error {
				r := transfer.Export{Session: s, Format: eo.Format, Path: eo.Out, Stdout: cmd.OutOrStdout()}
				return r.Do(ctx)
			})
		},
	}

	options.AddExportArgs(cmd, eo)

	topLevel.AddCommand(cmd)
}
