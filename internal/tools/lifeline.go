package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sparxbridge/eamcp/internal/diagram"
	"github.com/sparxbridge/eamcp/internal/ea"
)

// LifelineKinds lists the lifeline tool variants, one MCP tool each.
var LifelineKinds = []string{"Actor", "Boundary", "Control", "Entity", "Database", "UseCase"}

// LifelineTool handles one of the create_*_lifeline MCP tools. It adds a
// single lifeline to an existing sequence diagram. EA models lifelines as
// Object elements carrying a lowercase stereotype; the tool derives the
// stereotype from its kind unless the caller overrides it.
type LifelineTool struct {
	ea   ea.Provider
	kind string // element vocabulary name, e.g. "Actor", "UseCase"
}

// NewLifelineTool creates the lifeline tool for the given kind.
func NewLifelineTool(p ea.Provider, kind string) *LifelineTool {
	return &LifelineTool{ea: p, kind: kind}
}

// Definition returns the MCP tool definition for registration.
func (t *LifelineTool) Definition() mcp.Tool {
	stereotype := diagram.LifelineStereotype(t.kind)
	return mcp.NewTool(fmt.Sprintf("create_%s_lifeline", stereotype),
		mcp.WithDescription(fmt.Sprintf(
			"Create a %s lifeline on an existing sequence diagram. "+
				"The lifeline is placed after the diagram's existing elements.",
			strings.ReplaceAll(stereotype, "_", " "),
		)),
		mcp.WithString("diagram_guid",
			mcp.Required(),
			mcp.Description("GUID of the sequence diagram"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the lifeline"),
		),
		mcp.WithString("stereotype",
			mcp.Description(fmt.Sprintf("Override the default stereotype (%q)", stereotype)),
		),
	)
}

// Handle processes the lifeline tool call.
func (t *LifelineTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	guid := req.GetString("diagram_guid", "")
	if strings.TrimSpace(guid) == "" {
		return errorResult(&diagram.MissingParameterError{Field: "diagram_guid"}), nil
	}
	if !ea.ValidGUID(guid) {
		return errorResult(&diagram.InvalidGUIDError{Value: guid}), nil
	}

	name := req.GetString("name", "")
	if strings.TrimSpace(name) == "" {
		return errorResult(&diagram.MissingParameterError{Field: "name"}), nil
	}

	stereotype := req.GetString("stereotype", "")
	if stereotype == "" {
		stereotype = diagram.LifelineStereotype(t.kind)
	}

	sess, err := t.ea.Session()
	if err != nil {
		return errorResult(err), nil
	}

	// Negative coordinates: append after the diagram's existing elements.
	ref, err := sess.AddElement(ea.NormalizeGUID(guid), name, "Object", stereotype, -1, -1)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(map[string]any{
		"element_guid": ref.GUID,
		"name":         ref.Name,
		"stereotype":   ref.Stereotype,
	}), nil
}
