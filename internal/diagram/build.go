package diagram

import (
	"strings"

	"github.com/sparxbridge/eamcp/internal/ea"
)

// Result reports what a build created. Elements is in creation order, which
// equals the request's element order.
type Result struct {
	Diagram  ea.DiagramRef
	Elements []ea.ElementRef
}

// Layout constants. Positions depend only on an element's index (overall
// for sequence and class, within its type group for use case and activity),
// so the request order fully determines the diagram layout.
const (
	sequenceSpacing = 200
	classSpacing    = 300
	useCaseActorX   = 50
	useCaseCaseX    = 300
	useCaseSpacing  = 150
	activitySpacing = 200
	activityRowY    = 100
	decisionRowY    = 200
	originX         = 100
	originY         = 100
)

// Build creates the diagram then its elements, in request order.
//
// If the diagram cannot be created nothing else is attempted and a
// *DiagramError is returned. If an element fails mid-sequence the already
// created elements stay in the repository and the returned *ElementError
// carries the failing index plus everything created before it.
func Build(s ea.Session, req *Request) (*Result, error) {
	diagram, err := s.CreateDiagram(req.PackageGUID, req.Name, req.Kind.EAType())
	if err != nil {
		return nil, &DiagramError{Err: err}
	}

	res := &Result{Diagram: diagram}
	groupIndex := map[string]int{}

	for i, spec := range req.Elements {
		n := groupIndex[spec.Type]
		groupIndex[spec.Type] = n + 1

		x, y := position(req.Kind, spec.Type, i, n)
		elementType, stereotype := eaElement(req.Kind, spec)

		ref, err := s.AddElement(diagram.GUID, spec.Name, elementType, stereotype, x, y)
		if err != nil {
			return res, &ElementError{
				Index:   i,
				Name:    spec.Name,
				Diagram: diagram,
				Created: res.Elements,
				Err:     err,
			}
		}

		for _, attr := range spec.Attributes {
			if err := s.AddAttribute(ref.GUID, attr); err != nil {
				return res, &ElementError{
					Index:   i,
					Name:    spec.Name,
					Diagram: diagram,
					Created: res.Elements,
					Err:     err,
				}
			}
		}
		for _, method := range spec.Methods {
			if err := s.AddOperation(ref.GUID, method); err != nil {
				return res, &ElementError{
					Index:   i,
					Name:    spec.Name,
					Diagram: diagram,
					Created: res.Elements,
					Err:     err,
				}
			}
		}

		res.Elements = append(res.Elements, ref)
	}

	return res, nil
}

// position returns the diagram coordinates for an element. Sequence and
// class layouts are a single row spaced by the overall input index i; use
// case and activity layouts place an element by its index n within its type
// group (actors vs use cases, activities vs decisions).
func position(kind Kind, elementType string, i, n int) (int, int) {
	switch kind {
	case KindSequence:
		return originX + i*sequenceSpacing, originY
	case KindClass:
		return originX + i*classSpacing, originY
	case KindUseCase:
		// Actors in a column on the left, use cases on the right.
		if elementType == "Actor" {
			return useCaseActorX, originY + n*useCaseSpacing
		}
		return useCaseCaseX, originY + n*useCaseSpacing
	case KindActivity:
		// Activities across the top row, decisions below.
		if elementType == "Decision" {
			return originX + n*activitySpacing, decisionRowY
		}
		return originX + n*activitySpacing, activityRowY
	}
	return originX, originY
}

// eaElement maps an ElementSpec to EA's (element type, stereotype) pair.
// Sequence lifelines are EA Object elements with a lowercase stereotype;
// an explicit stereotype on the spec overrides the derived one.
func eaElement(kind Kind, spec ElementSpec) (string, string) {
	if kind == KindSequence {
		stereotype := spec.Stereotype
		if stereotype == "" {
			stereotype = LifelineStereotype(spec.Type)
		}
		return "Object", stereotype
	}
	return spec.Type, spec.Stereotype
}

// LifelineStereotype returns the EA stereotype for a lifeline type, e.g.
// "UseCase" → "use_case".
func LifelineStereotype(lifelineType string) string {
	if lifelineType == "UseCase" {
		return "use_case"
	}
	return strings.ToLower(lifelineType)
}
