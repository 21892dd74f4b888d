package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/postcard/pkg/app"
	"tableflip.dev/postcard/pkg/catalog"
	"tableflip.dev/postcard/pkg/commands/options"
	"tableflip.dev/postcard/pkg/model"
	"tableflip.dev/postcard/pkg/runner/edit"
	"tableflip.dev/postcard/pkg/store"
)

func atomTypes() []string {
	out := make([]string, 0, len(model.AllAtomTypes()))
	for _, t := range model.AllAtomTypes() {
		out = append(out, string(t))
	}
	return out
}

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a block, row, cell or atom",
		Example: `
postcard add block header --theme dark
postcard add row --id <block or cell id>
postcard add cell --id <row id> --at 0
postcard add atom button --id <cell id>
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addBlock(cmd)
	addChild(cmd, edit.KindRow, "Add a row to a block, or a nested row to a cell", "block or cell id")
	addChild(cmd, edit.KindCell, "Add a cell to a row", "row id")
	addAtom(cmd)

	topLevel.AddCommand(cmd)
}

func addBlock(parent *cobra.Command) {
	po := &options.PresetOptions{}
	to := &options.TargetOptions{}

	cmd := &cobra.Command{
		Use:       "block <preset>",
		Short:     "Add a block from the preset catalog",
		Long:      "Add a block from the preset catalog. Presets: " + strings.Join(catalog.Names(), ", ") + ".",
		Args:      cobra.ExactValidArgs(1),
		ValidArgs: catalog.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(ctx context.Context, s *app.Session, cfg *store.FileConfig) error {
				r := edit.Add{
					Session: s,
					Kind:    edit.KindBlock,
					Preset:  args[0],
					Theme:   po.ResolveTheme(cfg.Theme),
					Label:   po.Label,
					At:      to.At,
				}
				return r.Do(ctx)
			})
		},
	}

	options.AddThemeArgs(cmd, po)
	options.AddLabelArgs(cmd, po)
	options.AddAtArgs(cmd, to)

	parent.AddCommand(cmd)
}

func addChild(parent *cobra.Command, kind edit.Kind, short, idUsage string) {
	to := &options.TargetOptions{}

	cmd := &cobra.Command{
		Use:   string(kind),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(ctx context.Context, s *app.Session, _ *store.FileConfig) error {
				r := edit.Add{Session: s, Kind: kind, ParentID: to.ID, At: to.At}
				return r.Do(ctx)
			})
		},
	}

	options.AddTargetArgs(cmd, to, idUsage)
	options.AddAtArgs(cmd, to)
	_ = cmd.MarkFlagRequired("id")

	parent.AddCommand(cmd)
}

func addAtom(parent *cobra.Command) {
	to := &options.TargetOptions{}

	cmd := &cobra.Command{
		Use:       "atom <type>",
		Short:     "Add an atom to a cell",
		Long:      "Add an atom to a cell. Types: " + strings.Join(atomTypes(), ", ") + ".",
		Args:      cobra.ExactValidArgs(1),
		ValidArgs: atomTypes(),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := model.ParseAtomType(args[0])
			if err != nil {
				return err
			}
			return withSession(func(ctx context.Context, s *app.Session, _ *store.FileConfig) error {
				r := edit.Add{Session: s, Kind: edit.KindAtom, ParentID: to.ID, AtomType: t, At: to.At}
				return r.Do(ctx)
			})
		},
	}

	options.AddTargetArgs(cmd, to, "cell id")
	options.AddAtArgs(cmd, to)
	_ = cmd.MarkFlagRequired("id")

	parent.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a block, row, cell or atom",
		Example: `
postcard show --show-id
postcard remove <id>
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(ctx context.Context, s *app.Session, _ *store.FileConfig) error {
				r := edit.Remove{Session: s, ID: args[0]}
				return r.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addDuplicate(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "duplicate <id>",
		Aliases: []string{"dup"},
		Short:   "Copy a node next to itself",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(ctx context.Context, s *app.Session, _ *store.FileConfig) error {
				r := edit.Duplicate{Session: s, ID: args[0]}
				return r.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addMove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "move <id> <index|last>",
		Short: "Move a node to another position among its siblings",
		Example: `
postcard move <block id> 0
postcard move <atom id> last
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to := -1
			if args[1] != "last" {
				var err error
				if to, err = strconv.Atoi(args[1]); err != nil || to < 0 {
					return fmt.Errorf("index %q is not a position", args[1])
				}
			}
			return withSession(func(ctx context.Context, s *app.Session, _ *store.FileConfig) error {
				r := edit.Move{Session: s, ID: args[0], To: to}
				return r.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addSet(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: `Change one setting. Keys take one of the forms

  v2-settings::<block|row|cell|atom>::<id>::<field>
  v2-settings::<atom id>::<field>
  v2-general::<field>

Nested fields are written with more segments, such as spacing::padding or
items::0::text.`,
		Example: `
postcard set v2-general::previewText "Our spring sale starts today"
postcard set v2-settings::cell::<id>::verticalAlign middle
postcard set v2-settings::row::<id>::spacing::padding "[8,16,8,16]"
postcard set v2-settings::<atom id>::color "#ff0000"
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(func(ctx context.Context, s *app.Session, _ *store.FileConfig) error {
				r := edit.Set{Session: s, Key: args[0], Value: args[1]}
				return r.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
