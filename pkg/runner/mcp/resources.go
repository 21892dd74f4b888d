package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerTemplateResource(srv, svc)
	registerPresetsResource(srv, svc)
	registerLibraryResource(srv, svc)
}

func registerTemplateResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"postcard://template",
		"Live template",
		mcp.WithResourceDescription("The live template in export format version 2."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		p, err := svc.Template(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, p)
	})
}

func registerPresetsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"postcard://presets",
		"Presets",
		mcp.WithResourceDescription("Blocks that add_node can create."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		presets := svc.Presets()
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"theme":   svc.Theme,
			"presets": presets,
			"count":   len(presets),
		})
	})
}

func registerLibraryResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"postcard://library",
		"Library",
		mcp.WithResourceDescription("Saved templates with their meta."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		named, err := svc.Library(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"templates": named,
			"count":     len(named),
		})
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
