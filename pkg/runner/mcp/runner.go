package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"tableflip.dev/postcard/pkg/app"
	"tableflip.dev/postcard/pkg/catalog"
	"tableflip.dev/postcard/pkg/templateio"
)

// Runner serves the session over stdio until ctx is cancelled or the client
// hangs up.
type Runner struct {
	Session *app.Session
	Theme   catalog.Theme
	Limits  templateio.Limits
	Name    string
	Version string
	Log     *zap.Logger

	// In and Out default to stdin and stdout.
	In  io.Reader
	Out io.Writer
}

// NewServer builds the MCP server with every postcard tool and resource.
func NewServer(svc *Service, name, version string) *server.MCPServer {
	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Inspect and edit the live postcard email template: outline, "+
			"validate, import, add, remove, duplicate, move, update settings, undo and redo."),
		server.WithRecovery(),
	)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.Session == nil {
		return errors.New("mcp runner requires a session")
	}
	name := r.Name
	if name == "" {
		name = "postcard"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	in, out := r.In, r.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	srv := NewServer(NewService(r.Session, r.Theme, r.Limits), name, version)
	stdio := server.NewStdioServer(srv)
	stdio.SetErrorLogger(zap.NewStdLog(log))
	log.Debug("mcp: serving on stdio")

	err := stdio.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
