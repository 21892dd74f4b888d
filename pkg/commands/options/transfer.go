package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ImportOptions
type ImportOptions struct {
	Mode           string
	IncludeGeneral bool
}

func AddImportArgs(cmd *cobra.Command, o *ImportOptions) {
	cmd.Flags().VarP(newEnum(&o.Mode, "replace", "replace", "append"), "mode", "m",
		"How the template meets the current one.")
	cmd.Flags().BoolVar(&o.IncludeGeneral, "include-general", false,
		"Also take the page settings when appending.")
}

// ExportOptions
type ExportOptions struct {
	Format string
	Out    string
}

func AddExportArgs(cmd *cobra.Command, o *ExportOptions) {
	cmd.Flags().StringVarP(&o.Format, "format", "f", "json",
		`Output format. One of "json" or "yaml".`)
	cmd.Flags().StringVarP(&o.Out, "out", "o", "",
		"Write to a file instead of stdout.")
}

func (o *ExportOptions) Validate() error {
	switch strings.ToLower(o.Format) {
	case "json", "yaml", "yml":
		return nil
	}
	return fmt.Errorf("unknown format %q", o.Format)
}
