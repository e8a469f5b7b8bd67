package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sparxbridge/eamcp/internal/diagram"
	"github.com/sparxbridge/eamcp/internal/ea"
)

// ActivityTool handles the create_activity_diagram MCP tool.
type ActivityTool struct {
	ea ea.Provider
}

// NewActivityTool creates an ActivityTool with the given session provider.
func NewActivityTool(p ea.Provider) *ActivityTool {
	return &ActivityTool{ea: p}
}

// Definition returns the MCP tool definition for registration.
func (t *ActivityTool) Definition() mcp.Tool {
	return mcp.NewTool("create_activity_diagram",
		mcp.WithDescription(
			"Create an activity diagram in Enterprise Architect under the given package. "+
				"Creates one activity element per entry in 'activities' and one decision "+
				"element per entry in 'decisions', activities first, in the given order. "+
				"No control-flow edges are created.",
		),
		mcp.WithString("package_guid",
			mcp.Required(),
			mcp.Description("GUID of the parent package"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Diagram name"),
		),
		mcp.WithArray("activities",
			mcp.Description("Activity names, in order"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("decisions",
			mcp.Description("Decision names, in order"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

// Handle processes the create_activity_diagram tool call.
func (t *ActivityTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, err := diagram.ParseActivity(req.GetArguments())
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
		"activities":   splitByType(r, res.Elements, "Activity"),
		"decisions":    splitByType(r, res.Elements, "Decision"),
	}), nil
}
