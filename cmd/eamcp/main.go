// eamcp: Enterprise Architect MCP Server
//
// An MCP server that lets AI coding tools create UML diagrams (sequence,
// class, use case, activity) in an Enterprise Architect project repository.
//
// Usage:
//
//	eamcp serve [config.toml]   # Start MCP server (stdio transport)
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sparxbridge/eamcp/internal/config"
	easerver "github.com/sparxbridge/eamcp/internal/server"
	"github.com/sparxbridge/eamcp/internal/updater"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		configPath := ""
		if len(os.Args) > 2 {
			configPath = os.Args[2]
		}
		if err := run(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("eamcp v%s\n", easerver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	s, cleanup, err := easerver.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Background version check, printed to stderr so it doesn't
	// interfere with MCP's stdio transport on stdout.
	go checkForUpdates()

	return server.ServeStdio(s)
}

// checkForUpdates runs a non-blocking version check and prints a notice to
// stderr if a newer release exists. Best-effort: network failures are
// silently ignored.
func checkForUpdates() {
	result := updater.CheckVersion(easerver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  Update available: v%s -> v%s\n  Release: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `eamcp v%s - Enterprise Architect MCP Server

Usage:
  eamcp serve [config.toml]   Start the MCP server (stdio transport)
  eamcp version               Print the version

Configuration:
  project_file and create_if_missing come from eamcp.toml in the working
  directory (or the file named on the command line), overridable with the
  EA_PROJECT_FILE and EA_CREATE_IF_MISSING environment variables.

  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "enterprise-architect": {
        "command": "eamcp",
        "args": ["serve"],
        "env": { "EA_PROJECT_FILE": "/path/to/model.qea" }
      }
    }
  }
`, easerver.Version)
}
