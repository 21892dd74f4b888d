package options

import (
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"tableflip.dev/postcard/pkg/catalog"
)

// PresetOptions
type PresetOptions struct {
	Theme string
	Label string
}

func AddThemeArgs(cmd *cobra.Command, o *PresetOptions) {
	cmd.Flags().VarP(newEnum(&o.Theme, "", "light", "dark"), "theme", "t",
		"Palette for presets. Defaults to the terminal background.")
}

func AddLabelArgs(cmd *cobra.Command, o *PresetOptions) {
	cmd.Flags().StringVarP(&o.Label, "label", "l", "",
		"Label for the new block.")
}

// ResolveTheme picks the flag, then the configured theme, then whatever
// matches the terminal background.
func (o *PresetOptions) ResolveTheme(configured string) catalog.Theme {
	switch {
	case o.Theme != "":
		return catalog.ParseTheme(o.Theme)
	case configured != "":
		return catalog.ParseTheme(configured)
	case termenv.HasDarkBackground():
		return catalog.ThemeDark
	}
	return catalog.ThemeLight
}
