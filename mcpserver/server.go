// Package mcpserver exposes module generation to agents over the Model
// Context Protocol.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/teranos/fgen/display"
	"github.com/teranos/fgen/engine"
	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/internal/app"
	"github.com/teranos/fgen/logger"
	"github.com/teranos/fgen/version"
)

// Server wraps an app.Service and exposes it via Model Context Protocol
type Server struct {
	svc    *app.Service
	server *server.MCPServer
}

// New creates an MCP server with the fgen tools registered.
func New(svc *app.Service) *Server {
	s := &Server{svc: svc}
	s.server = server.NewMCPServer(
		"fgen",
		version.Get().Version,
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// MCP returns the underlying server, for transports other than stdio.
func (s *Server) MCP() *server.MCPServer { return s.server }

func (s *Server) registerTools() {
	s.server.AddTool(mcp.NewTool("fgen_create",
		append([]mcp.ToolOption{
			mcp.WithDescription("Scaffold a new module directory (component, style, translation, test and barrel files) named after the module"),
		}, commonParams()...)...,
	), s.handleCreate)

	s.server.AddTool(mcp.NewTool("fgen_add",
		append([]mcp.ToolOption{
			mcp.WithDescription("Scaffold module files into an existing directory, appending to its barrel file"),
		}, commonParams()...)...,
	), s.handleAdd)

	s.server.AddTool(mcp.NewTool("fgen_plan",
		append([]mcp.ToolOption{
			mcp.WithDescription("Show the files create or add would write, without touching the file system"),
			mcp.WithString("mode",
				mcp.Description("create or add (default: create)"),
				mcp.Enum(string(engine.ModeCreate), string(engine.ModeAdd)),
			),
		}, commonParams()...)...,
	), s.handlePlan)
}

func commonParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Module name, e.g. \"UserCard\" or \"user card\""),
		),
		mcp.WithString("target",
			mcp.Description("Directory (or a file inside it) to generate in; defaults to the configured root"),
		),
		mcp.WithArray("with",
			mcp.Description("File kinds to enable on top of the configured defaults"),
			mcp.WithStringItems(),
		),
		mcp.WithArray("without",
			mcp.Description("File kinds to disable"),
			mcp.WithStringItems(),
		),
	}
}

func (s *Server) handleCreate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.run(ctx, request, engine.ModeCreate, false)
}

func (s *Server) handleAdd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.run(ctx, request, engine.ModeAdd, false)
}

func (s *Server) handlePlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode := engine.Mode(request.GetString("mode", string(engine.ModeCreate)))
	return s.run(ctx, request, mode, true)
}

func (s *Server) run(ctx context.Context, request mcp.CallToolRequest, mode engine.Mode, dryRun bool) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	static, err := s.svc.StaticSettings(
		name,
		request.GetStringSlice("with", nil),
		request.GetStringSlice("without", nil),
	)
	if err != nil {
		return toolError(err), nil
	}

	res, err := s.svc.Run(ctx, app.Request{
		Mode:     mode,
		Target:   request.GetString("target", ""),
		Settings: static,
		DryRun:   dryRun,
	})
	if err != nil {
		logger.Warnw("MCP tool failed", "tool", request.Params.Name, logger.FieldError, err)
		return toolError(err), nil
	}

	data, err := display.MarshalJSON(res, false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode result")
	}
	return mcp.NewToolResultText(string(data)), nil
}

// toolError reports err and its hints to the calling agent.
func toolError(err error) *mcp.CallToolResult {
	msg := err.Error()
	if hints := errors.FlattenHints(err); hints != "" {
		msg = fmt.Sprintf("%s\nhint: %s", msg, hints)
	}
	return mcp.NewToolResultError(msg)
}

// Serve starts the MCP server using stdio transport
func (s *Server) Serve() error {
	return server.ServeStdio(s.server)
}
