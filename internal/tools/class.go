package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sparxbridge/eamcp/internal/diagram"
	"github.com/sparxbridge/eamcp/internal/ea"
)

// ClassTool handles the create_class_diagram MCP tool.
type ClassTool struct {
	ea ea.Provider
}

// NewClassTool creates a ClassTool with the given session provider.
func NewClassTool(p ea.Provider) *ClassTool {
	return &ClassTool{ea: p}
}

// Definition returns the MCP tool definition for registration.
func (t *ClassTool) Definition() mcp.Tool {
	return mcp.NewTool("create_class_diagram",
		mcp.WithDescription(
			"Create a class diagram in Enterprise Architect under the given package. "+
				"Each entry in 'classes' becomes a class element with its attributes and "+
				"methods attached in the given order.",
		),
		mcp.WithString("package_guid",
			mcp.Required(),
			mcp.Description("GUID of the parent package"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Diagram name"),
		),
		mcp.WithArray("classes",
			mcp.Description("Classes to create, in order. Each entry: {name, attributes?, methods?, stereotype?}"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":       map[string]any{"type": "string"},
					"attributes": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"methods":    map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"stereotype": map[string]any{"type": "string"},
				},
				"required": []string{"name"},
			}),
		),
	)
}

// Handle processes the create_class_diagram tool call.
func (t *ClassTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, err := diagram.ParseClass(req.GetArguments())
	if err != nil {
		return errorResult(err), nil
	}

	sess, err := t.ea.Session()
	if err != nil {
		return errorResult(err), nil
	}

	res, err := diagram.Build(sess, r)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"diagram_guid": res.Diagram.GUID,
		"diagram_name": res.Diagram.Name,
		"classes":      res.Elements,
	}), nil
}
