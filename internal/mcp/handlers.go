package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/beauty-advisor/internal/catalog"
	"github.com/ziadkadry99/beauty-advisor/internal/format"
	"github.com/ziadkadry99/beauty-advisor/internal/selection"
)

// handleListCategories returns one category per line.
func (s *Server) handleListCategories(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories := s.catalog.Categories()
	if len(categories) == 0 {
		return mcp.NewToolResultText("The catalog has no products."), nil
	}
	return mcp.NewToolResultText(strings.Join(categories, "\n")), nil
}

// handleSearchCatalog runs the shopper filter over the catalog with no
// products selected.
func (s *Server) handleSearchCatalog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	engine, err := selection.New(s.catalog, nil, selection.Options{SearchOverridesCategory: true})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	engine.SetCategory(request.GetString("category", selection.AllCategories))
	engine.SetSearchText(request.GetString("query", ""))

	visible := engine.Visible()
	if len(visible) == 0 {
		return mcp.NewToolResultText(engine.Message()), nil
	}
	return mcp.NewToolResultText(formatProducts(visible)), nil
}

// handleGetProduct returns the details of one product.
func (s *Server) handleGetProduct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}
	item, ok := s.catalog.Get(catalog.NewID(id))
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("No product with id %q.", id)), nil
	}
	return mcp.NewToolResultText(formatProduct(item)), nil
}

// handleFormatRoutine renders routine text to HTML.
func (s *Server) handleFormatRoutine(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: text"), nil
	}
	return mcp.NewToolResultText(format.RoutineHTML(text)), nil
}

// formatProducts lists products in a compact form for agents.
func formatProducts(items []catalog.Item) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d product(s):\n", len(items)))
	for _, it := range items {
		sb.WriteString(fmt.Sprintf("\n[%s] %s by %s (%s)\n", it.ID, it.Name, it.Brand, it.Category))
	}
	return sb.String()
}

func formatProduct(it catalog.Item) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s\n", it.Name))
	sb.WriteString(fmt.Sprintf("ID: %s\n", it.ID))
	sb.WriteString(fmt.Sprintf("Brand: %s\n", it.Brand))
	sb.WriteString(fmt.Sprintf("Category: %s\n", it.Category))
	if it.Image != "" {
		sb.WriteString(fmt.Sprintf("Image: %s\n", it.Image))
	}
	sb.WriteString("\n")
	sb.WriteString(it.Description)
	sb.WriteString("\n")
	return sb.String()
}
