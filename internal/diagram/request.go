// Package diagram turns raw MCP tool arguments into validated diagram
// requests and executes them against an EA session.
//
// Validation is pure: no repository contact happens until a request has
// passed every check. The builders then issue creation calls in exactly the
// order elements appear in the request; that order drives the positions the
// elements get on the diagram, so it is observable by the caller.
package diagram

// Kind names one of the four supported diagram kinds.
type Kind string

const (
	KindSequence Kind = "sequence"
	KindClass    Kind = "class"
	KindUseCase  Kind = "use_case"
	KindActivity Kind = "activity"
)

// EAType returns EA's diagram type string for the kind.
func (k Kind) EAType() string {
	switch k {
	case KindSequence:
		return "Sequence"
	case KindClass:
		return "Class"
	case KindUseCase:
		return "UseCase"
	case KindActivity:
		return "Activity"
	}
	return ""
}

// ElementSpec describes one element to create. Attributes and Methods are
// only used for class diagrams.
type ElementSpec struct {
	Name       string
	Type       string
	Stereotype string
	Attributes []string
	Methods    []string
}

// Request is a validated diagram-creation request. Elements is in creation
// order: for use-case diagrams actors precede use cases, for activity
// diagrams activities precede decisions, matching the tool's parameter
// order.
type Request struct {
	PackageGUID string
	Name        string
	Kind        Kind
	Elements    []ElementSpec
}

// Element vocabularies per diagram kind. Sequence lifeline types map to EA
// "Object" elements carrying the lowercase type as stereotype; the other
// kinds use the type directly as EA's element type.
var (
	sequenceElementTypes = []string{"Actor", "Boundary", "Control", "Entity", "Database", "UseCase"}
	classElementTypes    = []string{"Class"}
	useCaseElementTypes  = []string{"Actor", "UseCase"}
	activityElementTypes = []string{"Activity", "Decision"}
)

// AllowedElementTypes returns the element type vocabulary for a kind.
func AllowedElementTypes(k Kind) []string {
	switch k {
	case KindSequence:
		return sequenceElementTypes
	case KindClass:
		return classElementTypes
	case KindUseCase:
		return useCaseElementTypes
	case KindActivity:
		return activityElementTypes
	}
	return nil
}
