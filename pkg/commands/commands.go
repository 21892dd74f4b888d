package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/postcard/pkg/commands/options"
)

var (
	output  = &options.OutputOptions{}
	verbose bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "postcard",
		Short: base.Wrap80("Build email templates out of blocks, rows, cells and atoms."),
		Long: base.Wrap80("postcard edits a local email template. Every command works on the " +
			"live template stored under the configured path; import, export and the library " +
			"move templates in and out of it."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addShow(topLevel)
	addValidate(topLevel)
	addImport(topLevel)
	addExport(topLevel)
	addAdd(topLevel)
	addRemove(topLevel)
	addDuplicate(topLevel)
	addMove(topLevel)
	addSet(topLevel)
	addPresets(topLevel)
	addSave(topLevel)
	addLibrary(topLevel)
	addOpen(topLevel)
	addClear(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
