package options

import (
	"github.com/spf13/cobra"
)

// TargetOptions point a command at a node of the template.
type TargetOptions struct {
	ID string
	At int
}

func AddTargetArgs(cmd *cobra.Command, o *TargetOptions, usage string) {
	cmd.Flags().StringVar(&o.ID, "id", "", usage)
}

func AddAtArgs(cmd *cobra.Command, o *TargetOptions) {
	cmd.Flags().IntVar(&o.At, "at", -1,
		"Position among the siblings, -1 appends.")
}
