package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/luuuc/launchgen/internal/config"
	"github.com/luuuc/launchgen/internal/detect"
	"github.com/luuuc/launchgen/internal/launch"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// LaunchURI is the resource rendering the launch file for the server root
const LaunchURI = "launchgen://launch.json"

// Server wraps the MCP server with launchgen-specific functionality
type Server struct {
	mcp  *server.MCPServer
	root string
}

// NewServer creates a new MCP server whose default scan root is root
func NewServer(root string, version string) *Server {
	s := server.NewMCPServer(
		"launchgen",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	srv := &Server{mcp: s, root: root}
	srv.registerTools()
	srv.registerResources()

	return srv
}

// ServeStdio starts the server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	detectTool := mcp.NewTool("detect_projects",
		mcp.WithDescription("List Go modules, web projects, Rust crates and Python entry files in a directory tree"),
		mcp.WithString("dir",
			mcp.Description("Directory to scan, relative to the server's working directory (default: .)"),
		),
	)
	s.mcp.AddTool(detectTool, s.handleDetectProjects)

	generateTool := mcp.NewTool("generate_launch",
		mcp.WithDescription("Generate the debugger launch.json for a directory tree"),
		mcp.WithString("dir",
			mcp.Description("Directory to scan, relative to the server's working directory (default: .)"),
		),
		mcp.WithBoolean("write",
			mcp.Description("Write the file to the configured output path instead of only returning it"),
		),
	)
	s.mcp.AddTool(generateTool, s.handleGenerateLaunch)
}

func (s *Server) registerResources() {
	resource := mcp.NewResource(
		LaunchURI,
		"Launch configuration",
		mcp.WithResourceDescription("launch.json generated from the server's working directory"),
		mcp.WithMIMEType("application/json"),
	)
	s.mcp.AddResource(resource, s.handleLaunchResource)
}

func (s *Server) dir(request mcp.CallToolRequest) string {
	dir := request.GetString("dir", "")
	if dir == "" {
		return s.root
	}
	return dir
}

func (s *Server) handleDetectProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := detect.Scan(s.dir(request))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to scan: %v", err)), nil
	}

	if len(projects) == 0 {
		return mcp.NewToolResultText("No supported projects found."), nil
	}

	var b strings.Builder
	for _, p := range projects {
		b.WriteString(fmt.Sprintf("- **%s** `%s`", p.Kind, p.Path))
		if p.Name != "" {
			b.WriteString(fmt.Sprintf(" (%s)", p.Name))
		}
		b.WriteString("\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGenerateLaunch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := s.dir(request)

	cfg, err := config.Load(dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	f, err := launch.NewGenerator(dir, cfg).Build()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to generate: %v", err)), nil
	}
	if f.Len() == 0 {
		return mcp.NewToolResultText("No supported projects found; nothing generated."), nil
	}

	data, err := f.JSON()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !request.GetBool("write", false) {
		return mcp.NewToolResultText(string(data)), nil
	}

	path, err := launch.Write(f, cfg.OutputPath(dir), cfg.Output.File)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Generated %s with %d configuration(s)\n\n%s", path, f.Len(), data)), nil
}

func (s *Server) handleLaunchResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	cfg, err := config.Load(s.root)
	if err != nil {
		return nil, err
	}

	f, err := launch.NewGenerator(s.root, cfg).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to generate: %w", err)
	}

	data, err := f.JSON()
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
