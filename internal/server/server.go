// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates the EA connector and injects it
// into the tools that depend on the session abstraction. No diagram logic
// lives here, only wiring.
package server

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/sparxbridge/eamcp/internal/config"
	"github.com/sparxbridge/eamcp/internal/ea"
	"github.com/sparxbridge/eamcp/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools registered.
//
// The returned cleanup function closes the EA repository connection and
// must be called on shutdown (typically via defer). It is always non-nil
// and safe to call even if the repository was never opened; the connector
// opens lazily on the first tool call.
func New(cfg config.Config) (*server.MCPServer, func(), error) {
	conn := ea.NewConnector(cfg.ProjectFile, cfg.CreateIfMissing)
	cleanup := func() { _ = conn.Close() }

	s := server.NewMCPServer(
		"enterprise-architect",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Diagram creation tools ---

	sequenceTool := tools.NewSequenceTool(conn)
	s.AddTool(sequenceTool.Definition(), sequenceTool.Handle)

	classTool := tools.NewClassTool(conn)
	s.AddTool(classTool.Definition(), classTool.Handle)

	useCaseTool := tools.NewUseCaseTool(conn)
	s.AddTool(useCaseTool.Definition(), useCaseTool.Handle)

	activityTool := tools.NewActivityTool(conn)
	s.AddTool(activityTool.Definition(), activityTool.Handle)

	// --- Lifeline tools ---
	//
	// One tool per lifeline kind, mirroring EA's toolbox. All share one
	// implementation parameterized by the stereotype.

	for _, kind := range tools.LifelineKinds {
		lt := tools.NewLifelineTool(conn, kind)
		s.AddTool(lt.Definition(), lt.Handle)
	}

	// --- Repository status ---

	statusTool := tools.NewStatusTool(conn, cfg.ProjectFile)
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	return s, cleanup, nil
}

// serverInstructions returns the system instructions that tell the AI how
// to use the EA tools effectively.
func serverInstructions() string {
	return `You have access to an Enterprise Architect (EA) diagram server.

## What it does

The server creates UML diagrams in an EA project repository. Four diagram
tools create a diagram under a package and populate it in one call:

- create_sequence_diagram: elements[] of typed lifelines
  (Actor, Boundary, Control, Entity, Database, UseCase)
- create_class_diagram: classes[] with ordered attributes and methods
- create_use_case_diagram: actors[] and use_cases[] (no connectors)
- create_activity_diagram: activities[] and decisions[] (no control flow)

Six create_*_lifeline tools add a single lifeline to an existing sequence
diagram by its GUID.

## How to use it

1. Call ea_status first. It reports whether the repository is reachable and
   returns the root package GUID of a freshly created project; use that as
   package_guid if the user has not given you one.
2. Elements are created in exactly the order you list them, and that order
   determines their positions on the diagram. List them in the order the
   reader should scan them.
3. package_guid must reference an existing package. GUIDs look like
   {12345678-ABCD-1234-ABCD-123456789ABC}; braces are optional.

## Error handling

Every error is a JSON payload with an "error" code. Two matter for
recovery:

- diagram_creation_failed: nothing was created. Fix the input and retry.
- element_creation_failed: the diagram and the elements listed under
  "created" exist in the repository. There is no rollback. Do not blindly
  retry the whole call; create only the missing elements (e.g. with the
  lifeline tools) or tell the user what partially exists.

Validation errors (missing_parameter, invalid_guid, unknown_element_type)
are reported before anything touches the repository.`
}
