package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sparxbridge/eamcp/internal/diagram"
	"github.com/sparxbridge/eamcp/internal/ea"
)

// SequenceTool handles the create_sequence_diagram MCP tool.
type SequenceTool struct {
	ea ea.Provider
}

// NewSequenceTool creates a SequenceTool with the given session provider.
func NewSequenceTool(p ea.Provider) *SequenceTool {
	return &SequenceTool{ea: p}
}

// Definition returns the MCP tool definition for registration.
func (t *SequenceTool) Definition() mcp.Tool {
	return mcp.NewTool("create_sequence_diagram",
		mcp.WithDescription(
			"Create a sequence diagram in Enterprise Architect under the given package, "+
				"with one lifeline per entry in 'elements', in the given order. "+
				"Lifeline types: Actor, Boundary, Control, Entity, Database, UseCase.",
		),
		mcp.WithString("package_guid",
			mcp.Required(),
			mcp.Description("GUID of the parent package, e.g. {12345678-ABCD-...}"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Diagram name"),
		),
		mcp.WithArray("elements",
			mcp.Description("Lifelines to create, in order. Each entry: {name, type, stereotype?}"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":       map[string]any{"type": "string"},
					"type":       map[string]any{"type": "string", "enum": diagram.AllowedElementTypes(diagram.KindSequence)},
					"stereotype": map[string]any{"type": "string"},
				},
				"required": []string{"name", "type"},
			}),
		),
	)
}

// Handle processes the create_sequence_diagram tool call.
func (t *SequenceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, err := diagram.ParseSequence(req.GetArguments())
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
		"elements":     res.Elements,
	}), nil
}
