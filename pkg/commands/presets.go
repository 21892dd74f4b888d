package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/postcard/pkg/commands/options"
	"tableflip.dev/postcard/pkg/runner/presets"
	"tableflip.dev/postcard/pkg/store"
)

func addPresets(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	po := &options.PresetOptions{}

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the blocks that can be added",
		Example: `
postcard presets
postcard presets --theme dark --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output.JSON = oo.JSON
			cfg, err := store.LoadConfig()
			if err != nil {
				return output.HandleError(err)
			}
			r := presets.Presets{Theme: po.ResolveTheme(cfg.Theme), JSON: oo.JSON, Print: oo.Print}
			return output.HandleError(r.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, oo)
	options.AddThemeArgs(cmd, po)

	topLevel.AddCommand(cmd)
}
