package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sparxbridge/eamcp/internal/diagram"
	"github.com/sparxbridge/eamcp/internal/ea"
)

// UseCaseTool handles the create_use_case_diagram MCP tool.
type UseCaseTool struct {
	ea ea.Provider
}

// NewUseCaseTool creates a UseCaseTool with the given session provider.
func NewUseCaseTool(p ea.Provider) *UseCaseTool {
	return &UseCaseTool{ea: p}
}

// Definition returns the MCP tool definition for registration.
func (t *UseCaseTool) Definition() mcp.Tool {
	return mcp.NewTool("create_use_case_diagram",
		mcp.WithDescription(
			"Create a use case diagram in Enterprise Architect under the given package. "+
				"Creates one actor element per entry in 'actors' and one use case element "+
				"per entry in 'use_cases', actors first, in the given order. "+
				"No connectors are created.",
		),
		mcp.WithString("package_guid",
			mcp.Required(),
			mcp.Description("GUID of the parent package"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Diagram name"),
		),
		mcp.WithArray("actors",
			mcp.Description("Actor names, in order"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("use_cases",
			mcp.Description("Use case names, in order"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

// Handle processes the create_use_case_diagram tool call.
func (t *UseCaseTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, err := diagram.ParseUseCase(req.GetArguments())
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
		"actors":       splitByType(r, res.Elements, "Actor"),
		"use_cases":    splitByType(r, res.Elements, "UseCase"),
	}), nil
}
