package diagram

import (
	"fmt"
	"strings"

	"github.com/sparxbridge/eamcp/internal/ea"
)

// ParseSequence validates the arguments of create_sequence_diagram.
// Each entry in elements needs a name and a lifeline type; stereotype is
// optional and overrides the one derived from the type.
func ParseSequence(args map[string]any) (*Request, error) {
	req, err := parseCommon(args, KindSequence)
	if err != nil {
		return nil, err
	}

	entries, err := objectList(args, "elements")
	if err != nil {
		return nil, err
	}
	for i, entry := range entries {
		field := fmt.Sprintf("elements[%d]", i)
		var spec ElementSpec
		if spec.Name, err = stringField(entry, "name", field+".name"); err != nil {
			return nil, err
		}
		if spec.Type, err = stringField(entry, "type", field+".type"); err != nil {
			return nil, err
		}
		if spec.Stereotype, err = stringField(entry, "stereotype", field+".stereotype"); err != nil {
			return nil, err
		}
		if spec.Name == "" {
			return nil, &MissingParameterError{Field: field + ".name"}
		}
		if spec.Type == "" {
			return nil, &MissingParameterError{Field: field + ".type"}
		}
		if !typeAllowed(spec.Type, sequenceElementTypes) {
			return nil, &UnknownElementTypeError{Value: spec.Type, Allowed: sequenceElementTypes}
		}
		req.Elements = append(req.Elements, spec)
	}

	return req, nil
}

// ParseClass validates the arguments of create_class_diagram. Attribute and
// method order is preserved; it becomes the feature position in EA.
func ParseClass(args map[string]any) (*Request, error) {
	req, err := parseCommon(args, KindClass)
	if err != nil {
		return nil, err
	}

	entries, err := objectList(args, "classes")
	if err != nil {
		return nil, err
	}
	for i, entry := range entries {
		field := fmt.Sprintf("classes[%d]", i)
		spec := ElementSpec{Type: "Class"}
		if spec.Name, err = stringField(entry, "name", field+".name"); err != nil {
			return nil, err
		}
		if spec.Stereotype, err = stringField(entry, "stereotype", field+".stereotype"); err != nil {
			return nil, err
		}
		if spec.Name == "" {
			return nil, &MissingParameterError{Field: field + ".name"}
		}
		if spec.Attributes, err = stringListField(entry, field, "attributes"); err != nil {
			return nil, err
		}
		if spec.Methods, err = stringListField(entry, field, "methods"); err != nil {
			return nil, err
		}
		req.Elements = append(req.Elements, spec)
	}

	return req, nil
}

// ParseUseCase validates the arguments of create_use_case_diagram. Actors
// come before use cases in the element order, matching the parameter order.
func ParseUseCase(args map[string]any) (*Request, error) {
	req, err := parseCommon(args, KindUseCase)
	if err != nil {
		return nil, err
	}

	actors, err := nameList(args, "actors")
	if err != nil {
		return nil, err
	}
	useCases, err := nameList(args, "use_cases")
	if err != nil {
		return nil, err
	}

	for _, name := range actors {
		req.Elements = append(req.Elements, ElementSpec{Name: name, Type: "Actor"})
	}
	for _, name := range useCases {
		req.Elements = append(req.Elements, ElementSpec{Name: name, Type: "UseCase"})
	}

	return req, nil
}

// ParseActivity validates the arguments of create_activity_diagram.
// Activities come before decisions in the element order.
func ParseActivity(args map[string]any) (*Request, error) {
	req, err := parseCommon(args, KindActivity)
	if err != nil {
		return nil, err
	}

	activities, err := nameList(args, "activities")
	if err != nil {
		return nil, err
	}
	decisions, err := nameList(args, "decisions")
	if err != nil {
		return nil, err
	}

	for _, name := range activities {
		req.Elements = append(req.Elements, ElementSpec{Name: name, Type: "Activity"})
	}
	for _, name := range decisions {
		req.Elements = append(req.Elements, ElementSpec{Name: name, Type: "Decision"})
	}

	return req, nil
}

// parseCommon validates the fields every diagram tool shares: package_guid
// and name. The GUID is normalized to EA's braced-uppercase form.
func parseCommon(args map[string]any, kind Kind) (*Request, error) {
	guid, err := stringField(args, "package_guid", "package_guid")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(guid) == "" {
		return nil, &MissingParameterError{Field: "package_guid"}
	}
	if !ea.ValidGUID(guid) {
		return nil, &InvalidGUIDError{Value: guid}
	}

	name, err := stringField(args, "name", "name")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, &MissingParameterError{Field: "name"}
	}

	return &Request{
		PackageGUID: ea.NormalizeGUID(guid),
		Name:        name,
		Kind:        kind,
	}, nil
}

func typeAllowed(t string, allowed []string) bool {
	for _, a := range allowed {
		if t == a {
			return true
		}
	}
	return false
}

// stringField reads a string value from raw arguments. Absence (or an
// explicit null) returns "" for the caller's required-field check; a
// present value of another type is a shape error reported against field.
func stringField(m map[string]any, key, field string) (string, error) {
	raw, present := m[key]
	if !present || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", &InvalidParameterError{Field: field, Reason: "expected a string"}
	}
	return s, nil
}

// objectList reads an optional array of objects. An absent key is an empty
// list; only package_guid and name are required for the diagram tools.
func objectList(args map[string]any, key string) ([]map[string]any, error) {
	raw, present := args[key]
	if !present || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, &InvalidParameterError{Field: key, Reason: "expected an array of objects"}
	}
	entries := make([]map[string]any, 0, len(list))
	for i, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, &InvalidParameterError{
				Field:  fmt.Sprintf("%s[%d]", key, i),
				Reason: "expected an object",
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// nameList reads an optional array of non-empty strings.
func nameList(args map[string]any, key string) ([]string, error) {
	raw, present := args[key]
	if !present || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		// Tests and some clients hand in []string directly.
		if strs, ok := raw.([]string); ok {
			list = make([]any, len(strs))
			for i, s := range strs {
				list[i] = s
			}
		} else {
			return nil, &InvalidParameterError{Field: key, Reason: "expected an array of strings"}
		}
	}
	names := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, &InvalidParameterError{
				Field:  fmt.Sprintf("%s[%d]", key, i),
				Reason: "expected a string",
			}
		}
		if strings.TrimSpace(s) == "" {
			return nil, &MissingParameterError{Field: fmt.Sprintf("%s[%d]", key, i)}
		}
		names = append(names, s)
	}
	return names, nil
}

// stringListField reads an optional array of strings from an array entry,
// e.g. classes[0].attributes.
func stringListField(entry map[string]any, parent, key string) ([]string, error) {
	raw, present := entry[key]
	if !present || raw == nil {
		return nil, nil
	}
	field := parent + "." + key
	list, ok := raw.([]any)
	if !ok {
		if strs, ok := raw.([]string); ok {
			return strs, nil
		}
		return nil, &InvalidParameterError{Field: field, Reason: "expected an array of strings"}
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, &InvalidParameterError{
				Field:  fmt.Sprintf("%s[%d]", field, i),
				Reason: "expected a string",
			}
		}
		out = append(out, s)
	}
	return out, nil
}
