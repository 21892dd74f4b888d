package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/postcard/pkg/app"
	"tableflip.dev/postcard/pkg/catalog"
	"tableflip.dev/postcard/pkg/model"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerOutlineTool(srv, svc)
	registerValidateTool(srv, svc)
	registerImportTool(srv, svc)
	registerAddTool(srv, svc)
	registerRemoveTool(srv, svc)
	registerDuplicateTool(srv, svc)
	registerMoveTool(srv, svc)
	registerSetTool(srv, svc)
	registerHistoryTools(srv, svc)
}

func atomTypes() []string {
	out := make([]string, 0, len(model.AllAtomTypes()))
	for _, t := range model.AllAtomTypes() {
		out = append(out, string(t))
	}
	return out
}

func registerOutlineTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_outline",
		mcp.WithDescription("Show the blocks, rows, cells and atoms of the live template with their ids."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		outline, err := svc.Outline(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(outline)
	})
}

func registerValidateTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"validate_template",
		mcp.WithDescription("Check an exported template without importing it. Returns every issue with its path."),
		mcp.WithString("template",
			mcp.Required(),
			mcp.Description("Template JSON in export format version 2."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := request.RequireString("template")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(svc.Validate(ctx, raw))
	})
}

func registerImportTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"import_template",
		mcp.WithDescription("Import a template into the live one. Nothing changes when it is invalid."),
		mcp.WithString("template",
			mcp.Required(),
			mcp.Description("Template JSON in export format version 2."),
		),
		mcp.WithString("mode",
			mcp.Description("replace swaps the live template, append adds the blocks after it."),
			mcp.Enum(string(app.ImportReplace), string(app.ImportAppend)),
		),
		mcp.WithBoolean("include_general",
			mcp.Description("Also take the page settings when appending."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Template       string `json:"template"`
			Mode           string `json:"mode"`
			IncludeGeneral bool   `json:"include_general"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		mode, err := app.ParseImportMode(args.Mode)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res, err := svc.Import(ctx, args.Template, app.ImportOptions{Mode: mode, IncludeGeneral: args.IncludeGeneral})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(res)
	})
}

func registerAddTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_node",
		mcp.WithDescription("Add a block from a preset, a row to a block or cell, a cell to a row, or an atom to a cell."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("What to add."),
			mcp.Enum("block", "row", "cell", "atom"),
		),
		mcp.WithString("parent_id",
			mcp.Description("Id of the block, row or cell to add into. Not used for blocks."),
		),
		mcp.WithString("preset",
			mcp.Description("Preset name for blocks."),
			mcp.Enum(catalog.Names()...),
		),
		mcp.WithString("label",
			mcp.Description("Optional label for a new block."),
		),
		mcp.WithString("atom_type",
			mcp.Description("Atom type, text when empty."),
			mcp.Enum(atomTypes()...),
		),
		mcp.WithNumber("at",
			mcp.Description("Index among the siblings. Negative or missing appends."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := struct {
			Kind     string `json:"kind"`
			ParentID string `json:"parent_id"`
			Preset   string `json:"preset"`
			Label    string `json:"label"`
			AtomType string `json:"atom_type"`
			At       *int   `json:"at"`
		}{}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		at := -1
		if args.At != nil {
			at = *args.At
		}
		id, err := svc.Add(ctx, AddOptions{
			Kind:     args.Kind,
			ParentID: args.ParentID,
			AtomType: args.AtomType,
			Preset:   args.Preset,
			Label:    args.Label,
			At:       at,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"id": id})
	})
}

func registerRemoveTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"remove_node",
		mcp.WithDescription("Remove a node. The last row of a block and the last cell of a row stay."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Node identifier to remove."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.Remove(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"removed": id})
	})
}

func registerDuplicateTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"duplicate_node",
		mcp.WithDescription("Copy a node next to itself with fresh ids."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Node identifier to copy."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		copyID, err := svc.Duplicate(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"source": id, "id": copyID})
	})
}

func registerMoveTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_node",
		mcp.WithDescription("Reorder a node among its siblings."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Node identifier to move."),
		),
		mcp.WithNumber("to",
			mcp.Required(),
			mcp.Description("Target index among the siblings, negative for last."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID string `json:"id"`
			To int    `json:"to"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if err := svc.Move(ctx, args.ID, args.To); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"moved": args.ID, "to": args.To})
	})
}

func registerSetTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_setting",
		mcp.WithDescription(`Write one setting. Keys look like "v2-settings::cell::<id>::verticalAlign", `+
			`"v2-settings::<atomId>::spacing::padding" or "v2-general::previewText".`),
		mcp.WithString("key",
			mcp.Required(),
			mcp.Description("Setting key."),
		),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description(`New value. Insets are written as a JSON array such as "[8,16,8,16]".`),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key, err := request.RequireString("key")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		value := request.GetString("value", "")
		if err := svc.Set(ctx, key, value); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]string{"set": key})
	})
}

func registerHistoryTools(srv *server.MCPServer, svc *Service) {
	steps := map[string]func(context.Context) (bool, error){
		"undo": svc.Undo,
		"redo": svc.Redo,
	}
	for name, step := range steps {
		tool := mcp.NewTool(
			name,
			mcp.WithDescription(fmt.Sprintf("%s the last edit of the live template.", name)),
		)
		srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			changed, err := step(ctx)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return toJSONResult(map[string]bool{"changed": changed})
		})
	}
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(raw)), nil
}
