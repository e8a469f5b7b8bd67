package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sparxbridge/eamcp/internal/ea"
)

// StatusTool handles the ea_status MCP tool, a health probe over the
// repository connection. It reports the configured project file and
// aggregate model counts, including the root package GUID so callers of a
// freshly bootstrapped project know where to create their first diagram.
type StatusTool struct {
	ea   ea.Provider
	path string
}

// NewStatusTool creates a StatusTool for the given provider and project
// file path.
func NewStatusTool(p ea.Provider, path string) *StatusTool {
	return &StatusTool{ea: p, path: path}
}

// Definition returns the MCP tool definition for registration.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("ea_status",
		mcp.WithDescription(
			"Report the Enterprise Architect repository status: project file, "+
				"connectivity, package/diagram/element counts, and the root package GUID.",
		),
	)
}

// Handle processes the ea_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := t.ea.Session()
	if err != nil {
		return errorResult(err), nil
	}

	stats, err := sess.Stats()
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"project_file":      t.path,
		"connected":         true,
		"packages":          stats.Packages,
		"diagrams":          stats.Diagrams,
		"elements":          stats.Elements,
		"root_package_guid": stats.RootPackageGUID,
	}), nil
}
