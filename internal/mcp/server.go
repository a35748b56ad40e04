package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/beauty-advisor/internal/catalog"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the product catalog and the
// routine formatter to agents.
type Server struct {
	catalog *catalog.Catalog
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server over cat.
func NewServer(cat *catalog.Catalog) *Server {
	s := &Server{catalog: cat}

	s.mcp = server.NewMCPServer(
		"advisor",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listCategoriesTool, s.handleListCategories)
	s.mcp.AddTool(searchCatalogTool, s.handleSearchCatalog)
	s.mcp.AddTool(getProductTool, s.handleGetProduct)
	s.mcp.AddTool(formatRoutineTool, s.handleFormatRoutine)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
