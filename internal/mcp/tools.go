package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listCategoriesTool defines the list_categories MCP tool.
var listCategoriesTool = mcp.NewTool("list_categories",
	mcp.WithDescription("List the product categories of the catalog, in catalog order."),
)

// searchCatalogTool defines the search_catalog MCP tool.
var searchCatalogTool = mcp.NewTool("search_catalog",
	mcp.WithDescription("Find products by category and free-text query. The query matches name, brand, category and description, case-insensitively."),
	mcp.WithString("category",
		mcp.Description("Category to search within (default \"all\")"),
	),
	mcp.WithString("query",
		mcp.Description("Text to search for"),
	),
)

// getProductTool defines the get_product MCP tool.
var getProductTool = mcp.NewTool("get_product",
	mcp.WithDescription("Get the full details of one product."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Product id as listed by search_catalog"),
	),
)

// formatRoutineTool defines the format_routine MCP tool.
var formatRoutineTool = mcp.NewTool("format_routine",
	mcp.WithDescription("Render routine text from the model as the HTML shown to shoppers."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Raw routine text with markdown-like markers"),
	),
)
