package diagram

import (
	"errors"
	"testing"
)

const testGUID = "{12345678-ABCD-1234-ABCD-123456789ABC}"

// --- parseCommon via ParseSequence ---

func TestParseSequence_ValidRequestMirrorsInput(t *testing.T) {
	args := map[string]any{
		"package_guid": testGUID,
		"name":         "Login Flow",
		"elements": []any{
			map[string]any{"name": "User", "type": "Actor"},
			map[string]any{"name": "Web UI", "type": "Boundary"},
			map[string]any{"name": "Session DB", "type": "Database", "stereotype": "db"},
		},
	}

	req, err := ParseSequence(args)
	if err != nil {
		t.Fatalf("ParseSequence: %v", err)
	}

	if req.PackageGUID != testGUID {
		t.Errorf("PackageGUID = %q, want %q", req.PackageGUID, testGUID)
	}
	if req.Name != "Login Flow" {
		t.Errorf("Name = %q, want %q", req.Name, "Login Flow")
	}
	if req.Kind != KindSequence {
		t.Errorf("Kind = %q, want %q", req.Kind, KindSequence)
	}
	if len(req.Elements) != 3 {
		t.Fatalf("len(Elements) = %d, want 3", len(req.Elements))
	}

	want := []ElementSpec{
		{Name: "User", Type: "Actor"},
		{Name: "Web UI", Type: "Boundary"},
		{Name: "Session DB", Type: "Database", Stereotype: "db"},
	}
	for i, spec := range req.Elements {
		if spec.Name != want[i].Name || spec.Type != want[i].Type || spec.Stereotype != want[i].Stereotype {
			t.Errorf("Elements[%d] = %+v, want %+v", i, spec, want[i])
		}
	}
}

func TestParseSequence_MissingPackageGUID(t *testing.T) {
	_, err := ParseSequence(map[string]any{"name": "Diagram"})

	var missing *MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingParameterError", err)
	}
	if missing.Field != "package_guid" {
		t.Errorf("Field = %q, want %q", missing.Field, "package_guid")
	}
}

func TestParseSequence_MissingName(t *testing.T) {
	_, err := ParseSequence(map[string]any{"package_guid": testGUID})

	var missing *MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingParameterError", err)
	}
	if missing.Field != "name" {
		t.Errorf("Field = %q, want %q", missing.Field, "name")
	}
}

func TestParseSequence_InvalidGUID(t *testing.T) {
	_, err := ParseSequence(map[string]any{
		"package_guid": "not-a-guid",
		"name":         "Diagram",
	})

	var invalid *InvalidGUIDError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want InvalidGUIDError", err)
	}
	if invalid.Value != "not-a-guid" {
		t.Errorf("Value = %q, want %q", invalid.Value, "not-a-guid")
	}
}

func TestParseSequence_NormalizesBareLowercaseGUID(t *testing.T) {
	req, err := ParseSequence(map[string]any{
		"package_guid": "12345678-abcd-1234-abcd-123456789abc",
		"name":         "Diagram",
	})
	if err != nil {
		t.Fatalf("ParseSequence: %v", err)
	}
	if req.PackageGUID != testGUID {
		t.Errorf("PackageGUID = %q, want normalized %q", req.PackageGUID, testGUID)
	}
}

func TestParseSequence_UnknownElementType(t *testing.T) {
	_, err := ParseSequence(map[string]any{
		"package_guid": testGUID,
		"name":         "Diagram",
		"elements": []any{
			map[string]any{"name": "Check", "type": "Decision"},
		},
	})

	var unknown *UnknownElementTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want UnknownElementTypeError", err)
	}
	if unknown.Value != "Decision" {
		t.Errorf("Value = %q, want %q", unknown.Value, "Decision")
	}
	if len(unknown.Allowed) != len(sequenceElementTypes) {
		t.Errorf("Allowed = %v, want %v", unknown.Allowed, sequenceElementTypes)
	}
}

func TestParseSequence_ElementMissingType(t *testing.T) {
	_, err := ParseSequence(map[string]any{
		"package_guid": testGUID,
		"name":         "Diagram",
		"elements": []any{
			map[string]any{"name": "User"},
		},
	})

	var missing *MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingParameterError", err)
	}
	if missing.Field != "elements[0].type" {
		t.Errorf("Field = %q, want %q", missing.Field, "elements[0].type")
	}
}

func TestParseSequence_NonStringName(t *testing.T) {
	_, err := ParseSequence(map[string]any{
		"package_guid": testGUID,
		"name":         42,
	})

	// A present value of the wrong type is a shape error, not a missing
	// parameter.
	var invalid *InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want InvalidParameterError", err)
	}
	if invalid.Field != "name" {
		t.Errorf("Field = %q, want %q", invalid.Field, "name")
	}
}

func TestParseSequence_NonStringElementType(t *testing.T) {
	_, err := ParseSequence(map[string]any{
		"package_guid": testGUID,
		"name":         "Diagram",
		"elements": []any{
			map[string]any{"name": "User", "type": 7},
		},
	})

	var invalid *InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want InvalidParameterError", err)
	}
	if invalid.Field != "elements[0].type" {
		t.Errorf("Field = %q, want %q", invalid.Field, "elements[0].type")
	}
}

func TestParseSequence_ElementNotAnObject(t *testing.T) {
	_, err := ParseSequence(map[string]any{
		"package_guid": testGUID,
		"name":         "Diagram",
		"elements":     []any{"User"},
	})

	var invalid *InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want InvalidParameterError", err)
	}
	if invalid.Field != "elements[0]" {
		t.Errorf("Field = %q, want %q", invalid.Field, "elements[0]")
	}
}

func TestParseSequence_OmittedElementsIsEmptyDiagram(t *testing.T) {
	req, err := ParseSequence(map[string]any{
		"package_guid": testGUID,
		"name":         "Diagram",
	})
	if err != nil {
		t.Fatalf("ParseSequence: %v", err)
	}
	if len(req.Elements) != 0 {
		t.Errorf("len(Elements) = %d, want 0", len(req.Elements))
	}
}

// --- ParseClass ---

func TestParseClass_PreservesFeatureOrder(t *testing.T) {
	req, err := ParseClass(map[string]any{
		"package_guid": testGUID,
		"name":         "Domain Model",
		"classes": []any{
			map[string]any{
				"name":       "User",
				"attributes": []any{"username", "password"},
				"methods":    []any{"login()"},
			},
		},
	})
	if err != nil {
		t.Fatalf("ParseClass: %v", err)
	}

	if len(req.Elements) != 1 {
		t.Fatalf("len(Elements) = %d, want 1", len(req.Elements))
	}
	spec := req.Elements[0]
	if spec.Type != "Class" {
		t.Errorf("Type = %q, want Class", spec.Type)
	}
	if len(spec.Attributes) != 2 || spec.Attributes[0] != "username" || spec.Attributes[1] != "password" {
		t.Errorf("Attributes = %v, want [username password]", spec.Attributes)
	}
	if len(spec.Methods) != 1 || spec.Methods[0] != "login()" {
		t.Errorf("Methods = %v, want [login()]", spec.Methods)
	}
}

func TestParseClass_ClassMissingName(t *testing.T) {
	_, err := ParseClass(map[string]any{
		"package_guid": testGUID,
		"name":         "Domain Model",
		"classes": []any{
			map[string]any{"attributes": []any{"x"}},
		},
	})

	var missing *MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingParameterError", err)
	}
	if missing.Field != "classes[0].name" {
		t.Errorf("Field = %q, want %q", missing.Field, "classes[0].name")
	}
}

func TestParseClass_AttributesWrongType(t *testing.T) {
	_, err := ParseClass(map[string]any{
		"package_guid": testGUID,
		"name":         "Domain Model",
		"classes": []any{
			map[string]any{"name": "User", "attributes": "username"},
		},
	})

	var invalid *InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want InvalidParameterError", err)
	}
	if invalid.Field != "classes[0].attributes" {
		t.Errorf("Field = %q, want %q", invalid.Field, "classes[0].attributes")
	}
}

// --- ParseUseCase ---

func TestParseUseCase_ActorsPrecedeUseCases(t *testing.T) {
	req, err := ParseUseCase(map[string]any{
		"package_guid": testGUID,
		"name":         "Auth",
		"actors":       []any{"User", "Admin"},
		"use_cases":    []any{"Login", "Logout"},
	})
	if err != nil {
		t.Fatalf("ParseUseCase: %v", err)
	}

	want := []ElementSpec{
		{Name: "User", Type: "Actor"},
		{Name: "Admin", Type: "Actor"},
		{Name: "Login", Type: "UseCase"},
		{Name: "Logout", Type: "UseCase"},
	}
	if len(req.Elements) != len(want) {
		t.Fatalf("len(Elements) = %d, want %d", len(req.Elements), len(want))
	}
	for i, spec := range req.Elements {
		if spec.Name != want[i].Name || spec.Type != want[i].Type {
			t.Errorf("Elements[%d] = %+v, want %+v", i, spec, want[i])
		}
	}
}

func TestParseUseCase_EmptyActorName(t *testing.T) {
	_, err := ParseUseCase(map[string]any{
		"package_guid": testGUID,
		"name":         "Auth",
		"actors":       []any{"User", "  "},
	})

	var missing *MissingParameterError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingParameterError", err)
	}
	if missing.Field != "actors[1]" {
		t.Errorf("Field = %q, want %q", missing.Field, "actors[1]")
	}
}

func TestParseUseCase_ActorsWrongType(t *testing.T) {
	_, err := ParseUseCase(map[string]any{
		"package_guid": testGUID,
		"name":         "Auth",
		"actors":       "User",
	})

	var invalid *InvalidParameterError
	if !errors.As(err, &invalid) {
		t.Fatalf("error = %v, want InvalidParameterError", err)
	}
}

// --- ParseActivity ---

func TestParseActivity_ActivitiesPrecedeDecisions(t *testing.T) {
	req, err := ParseActivity(map[string]any{
		"package_guid": testGUID,
		"name":         "Checkout",
		"activities":   []any{"Start", "Process", "End"},
		"decisions":    []any{"Valid?"},
	})
	if err != nil {
		t.Fatalf("ParseActivity: %v", err)
	}

	want := []ElementSpec{
		{Name: "Start", Type: "Activity"},
		{Name: "Process", Type: "Activity"},
		{Name: "End", Type: "Activity"},
		{Name: "Valid?", Type: "Decision"},
	}
	if len(req.Elements) != len(want) {
		t.Fatalf("len(Elements) = %d, want %d", len(req.Elements), len(want))
	}
	for i, spec := range req.Elements {
		if spec.Name != want[i].Name || spec.Type != want[i].Type {
			t.Errorf("Elements[%d] = %+v, want %+v", i, spec, want[i])
		}
	}
}

func TestParseActivity_OmittedListsAreEmpty(t *testing.T) {
	req, err := ParseActivity(map[string]any{
		"package_guid": testGUID,
		"name":         "Checkout",
	})
	if err != nil {
		t.Fatalf("ParseActivity: %v", err)
	}
	if len(req.Elements) != 0 {
		t.Errorf("len(Elements) = %d, want 0", len(req.Elements))
	}
}

// --- Kind ---

func TestKindEAType(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindSequence, "Sequence"},
		{KindClass, "Class"},
		{KindUseCase, "UseCase"},
		{KindActivity, "Activity"},
	}
	for _, tt := range tests {
		if got := tt.kind.EAType(); got != tt.want {
			t.Errorf("EAType(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestLifelineStereotype(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Actor", "actor"},
		{"Boundary", "boundary"},
		{"Control", "control"},
		{"Entity", "entity"},
		{"Database", "database"},
		{"UseCase", "use_case"},
	}
	for _, tt := range tests {
		if got := LifelineStereotype(tt.in); got != tt.want {
			t.Errorf("LifelineStereotype(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
