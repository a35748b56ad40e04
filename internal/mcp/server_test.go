package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/beauty-advisor/internal/catalog"
	"github.com/ziadkadry99/beauty-advisor/internal/format"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Item{
		{ID: catalog.NewID("1"), Name: "Revitalift Cleanser", Brand: "L'Oréal Paris", Category: "cleanser", Description: "Gentle foaming cleanser."},
		{ID: catalog.NewID("2"), Name: "Hydra Serum", Brand: "L'Oréal Paris", Category: "skincare", Description: "Hyaluronic acid serum for dry skin."},
		{ID: catalog.NewID("3"), Name: "Color Riche", Brand: "L'Oréal Paris", Category: "makeup", Description: "Satin lipstick."},
		{ID: catalog.NewID("4"), Name: "Dry Shampoo", Brand: "Kérastase", Category: "haircare", Description: "Refreshes hair between washes."},
	})
}

// extractText gets the text content from a CallToolResult.
func extractText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

func TestToolDefinitions(t *testing.T) {
	// Verify tool names and required properties.
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_categories", listCategoriesTool, "list_categories"},
		{"search_catalog", searchCatalogTool, "search_catalog"},
		{"get_product", getProductTool, "get_product"},
		{"format_routine", formatRoutineTool, "format_routine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	cat := testCatalog()
	srv := NewServer(cat)

	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.catalog != cat {
		t.Error("catalog not set correctly")
	}
}

func TestHandleListCategories(t *testing.T) {
	srv := NewServer(testCatalog())
	text := extractText(callTool(t, srv.handleListCategories, nil))
	if text != "cleanser\nskincare\nmakeup\nhaircare" {
		t.Errorf("unexpected categories %q", text)
	}

	empty := NewServer(catalog.New(nil))
	if text := extractText(callTool(t, empty.handleListCategories, nil)); !strings.Contains(text, "no products") {
		t.Errorf("unexpected empty-catalog text %q", text)
	}
}

func TestHandleSearchCatalog(t *testing.T) {
	srv := NewServer(testCatalog())

	t.Run("query across categories", func(t *testing.T) {
		text := extractText(callTool(t, srv.handleSearchCatalog, map[string]any{"query": "dry"}))
		if !strings.Contains(text, "Found 2 product(s)") {
			t.Errorf("expected 2 results, got %q", text)
		}
		if !strings.Contains(text, "Hydra Serum") || !strings.Contains(text, "Dry Shampoo") {
			t.Errorf("missing products in %q", text)
		}
	})

	t.Run("query within category", func(t *testing.T) {
		text := extractText(callTool(t, srv.handleSearchCatalog, map[string]any{"category": "haircare", "query": "dry"}))
		if !strings.Contains(text, "Found 1 product(s)") || !strings.Contains(text, "[4] Dry Shampoo") {
			t.Errorf("unexpected result %q", text)
		}
	})

	t.Run("no filter", func(t *testing.T) {
		text := extractText(callTool(t, srv.handleSearchCatalog, map[string]any{}))
		if text != "Select a category or search for products." {
			t.Errorf("unexpected text %q", text)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		text := extractText(callTool(t, srv.handleSearchCatalog, map[string]any{"query": "perfume"}))
		if !strings.Contains(text, `No products found matching "perfume"`) {
			t.Errorf("unexpected text %q", text)
		}
	})
}

func TestHandleGetProduct(t *testing.T) {
	srv := NewServer(testCatalog())

	result := callTool(t, srv.handleGetProduct, map[string]any{"id": "3"})
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}
	if text := extractText(result); !strings.Contains(text, "Satin lipstick.") {
		t.Errorf("missing description in %q", text)
	}

	if result := callTool(t, srv.handleGetProduct, map[string]any{"id": "42"}); !result.IsError {
		t.Error("expected error for unknown id")
	}
	if result := callTool(t, srv.handleGetProduct, map[string]any{}); !result.IsError {
		t.Error("expected error for missing id")
	}
}

func TestHandleFormatRoutine(t *testing.T) {
	srv := NewServer(testCatalog())

	text := extractText(callTool(t, srv.handleFormatRoutine, map[string]any{"text": "## Step 1\n- Cleanse"}))
	want := "<h2>" + format.RoutineTitle + "</h2><hr><h3>Step 1</h3><p class=\"bullet\">• Cleanse</p>"
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}

	if result := callTool(t, srv.handleFormatRoutine, map[string]any{}); !result.IsError {
		t.Error("expected error for missing text")
	}
}
