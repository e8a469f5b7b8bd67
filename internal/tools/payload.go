// Package tools implements the MCP tool handlers for the EA diagram server.
//
// Each tool is a struct holding its dependencies (an ea.Provider) with a
// Definition() for registration and a Handle matching mcp-go's handler
// signature. Caller mistakes and repository failures are returned as
// structured JSON error payloads via mcp.NewToolResultError, never as Go
// errors across the protocol boundary.
package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sparxbridge/eamcp/internal/diagram"
	"github.com/sparxbridge/eamcp/internal/ea"
)

// Error codes in tool error payloads.
const (
	codeMissingParameter      = "missing_parameter"
	codeInvalidGUID           = "invalid_guid"
	codeUnknownElementType    = "unknown_element_type"
	codeInvalidParameter      = "invalid_parameter"
	codeConnectionFailed      = "ea_connection_failed"
	codeDiagramCreationFailed = "diagram_creation_failed"
	codeElementCreationFailed = "element_creation_failed"
	codeNotFound              = "not_found"
)

// errorPayload is the wire shape of a failed tool call.
type errorPayload struct {
	Status  string          `json:"status"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Field   string          `json:"field,omitempty"`
	Value   string          `json:"value,omitempty"`
	Allowed []string        `json:"allowed,omitempty"`
	Index   *int            `json:"index,omitempty"`
	Diagram string          `json:"diagram_guid,omitempty"`
	Created []ea.ElementRef `json:"created,omitempty"`
}

// errorResult maps the error taxonomy onto a structured payload.
func errorResult(err error) *mcp.CallToolResult {
	p := errorPayload{Status: "error", Message: err.Error()}

	var (
		missing    *diagram.MissingParameterError
		badGUID    *diagram.InvalidGUIDError
		badType    *diagram.UnknownElementTypeError
		badParam   *diagram.InvalidParameterError
		connErr    *ea.ConnectionError
		diagramErr *diagram.DiagramError
		elementErr *diagram.ElementError
		notFound   *ea.NotFoundError
	)
	switch {
	case errors.As(err, &missing):
		p.Error = codeMissingParameter
		p.Field = missing.Field
	case errors.As(err, &badGUID):
		p.Error = codeInvalidGUID
		p.Value = badGUID.Value
	case errors.As(err, &badType):
		p.Error = codeUnknownElementType
		p.Value = badType.Value
		p.Allowed = badType.Allowed
	case errors.As(err, &badParam):
		p.Error = codeInvalidParameter
		p.Field = badParam.Field
	case errors.As(err, &connErr):
		p.Error = codeConnectionFailed
	case errors.As(err, &elementErr):
		p.Error = codeElementCreationFailed
		idx := elementErr.Index
		p.Index = &idx
		p.Diagram = elementErr.Diagram.GUID
		p.Created = elementErr.Created
	case errors.As(err, &diagramErr):
		p.Error = codeDiagramCreationFailed
	// Checked after the creation errors: those wrap NotFoundError when a
	// GUID does not resolve, and their codes carry more context. A bare
	// NotFoundError reaches here only from single-element tools.
	case errors.As(err, &notFound):
		p.Error = codeNotFound
		p.Value = notFound.GUID
	default:
		p.Error = "internal_error"
	}

	return mcp.NewToolResultError(marshal(p))
}

// successResult serializes a payload map as the tool result text.
func successResult(payload map[string]any) *mcp.CallToolResult {
	payload["status"] = "success"
	return mcp.NewToolResultText(marshal(payload))
}

func marshal(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Payloads are built from plain structs and maps; this cannot
		// happen with well-formed inputs.
		return fmt.Sprintf(`{"status":"error","error":"internal_error","message":%q}`, err.Error())
	}
	return string(data)
}

// splitByType partitions created elements by their request element type,
// preserving creation order within each group.
func splitByType(req *diagram.Request, refs []ea.ElementRef, elementType string) []ea.ElementRef {
	out := []ea.ElementRef{}
	for i, ref := range refs {
		if i < len(req.Elements) && req.Elements[i].Type == elementType {
			out = append(out, ref)
		}
	}
	return out
}
