// Package ea provides access to an Enterprise Architect project repository.
//
// The Session interface is the narrow surface the rest of the server depends
// on: create a diagram under a package, place an element on a diagram, and
// attach attributes/operations to an element. The production implementation
// (Repo) works directly against a .qea project file (EA's native SQLite
// format) instead of driving the COM automation API, so the server runs on
// any platform and tests can use a throwaway project file.
package ea

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// DiagramRef identifies a diagram created in the repository.
type DiagramRef struct {
	GUID string `json:"guid"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ElementRef identifies an element created on a diagram.
type ElementRef struct {
	GUID       string `json:"guid"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Stereotype string `json:"stereotype,omitempty"`
}

// Stats holds aggregate repository counts for the status tool.
type Stats struct {
	Packages        int    `json:"packages"`
	Diagrams        int    `json:"diagrams"`
	Elements        int    `json:"elements"`
	RootPackageGUID string `json:"root_package_guid,omitempty"`
}

// Session is the repository surface the diagram builders use.
//
// AddElement accepts negative coordinates as "append": the session places
// the element after the diagram's existing ones using the default
// sequence-diagram spacing. This replaces the auto-layout call the COM API
// offers.
type Session interface {
	CreateDiagram(packageGUID, name, diagramType string) (DiagramRef, error)
	AddElement(diagramGUID, name, elementType, stereotype string, x, y int) (ElementRef, error)
	AddAttribute(elementGUID, name string) error
	AddOperation(elementGUID, name string) error
	Stats() (Stats, error)
}

// Provider hands out the shared session, opening it if needed.
// Tools resolve the session per call so a repository that was unavailable
// at startup can still be reached later.
type Provider interface {
	Session() (Session, error)
}

// NotFoundError reports that a GUID does not address anything in the
// repository. Kind is "package", "diagram" or "element".
type NotFoundError struct {
	Kind string
	GUID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with GUID %s not found", e.Kind, e.GUID)
}

// ConnectionError reports that the project repository could not be opened.
type ConnectionError struct {
	Path string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot open EA project %s: %v", e.Path, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// guidPattern matches an EA GUID with or without the surrounding braces.
var guidPattern = regexp.MustCompile(`^\{?[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\}?$`)

// ValidGUID reports whether s looks like an EA GUID. Braces are optional:
// EA's UI shows braced GUIDs, logs and scripts often strip them.
func ValidGUID(s string) bool {
	if strings.HasPrefix(s, "{") != strings.HasSuffix(s, "}") {
		return false
	}
	return guidPattern.MatchString(s)
}

// NormalizeGUID converts a valid GUID to EA's canonical storage form:
// uppercase, wrapped in braces.
func NormalizeGUID(s string) string {
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	return "{" + strings.ToUpper(s) + "}"
}

// NewGUID generates a fresh GUID in EA's canonical form.
func NewGUID() string {
	return "{" + strings.ToUpper(uuid.NewString()) + "}"
}
