package ea

import (
	"strings"
	"testing"
)

func TestValidGUID(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"{12345678-ABCD-1234-ABCD-123456789ABC}", true},
		{"12345678-ABCD-1234-ABCD-123456789ABC", true},
		{"12345678-abcd-1234-abcd-123456789abc", true},
		{"{12345678-ABCD-1234-ABCD-123456789ABC", false}, // unbalanced brace
		{"12345678-ABCD-1234-ABCD-123456789ABC}", false},
		{"not-a-guid", false},
		{"", false},
		{"{12345678-ABCD-1234-ABCD-123456789AB}", false}, // short last group
		{"{GGGGGGGG-ABCD-1234-ABCD-123456789ABC}", false},
	}

	for _, tt := range tests {
		if got := ValidGUID(tt.input); got != tt.want {
			t.Errorf("ValidGUID(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeGUID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"{12345678-ABCD-1234-ABCD-123456789ABC}", "{12345678-ABCD-1234-ABCD-123456789ABC}"},
		{"12345678-abcd-1234-abcd-123456789abc", "{12345678-ABCD-1234-ABCD-123456789ABC}"},
		{"{12345678-abcd-1234-abcd-123456789abc}", "{12345678-ABCD-1234-ABCD-123456789ABC}"},
	}

	for _, tt := range tests {
		if got := NormalizeGUID(tt.input); got != tt.want {
			t.Errorf("NormalizeGUID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNewGUID_CanonicalForm(t *testing.T) {
	guid := NewGUID()

	if !ValidGUID(guid) {
		t.Fatalf("NewGUID() = %q, not a valid GUID", guid)
	}
	if !strings.HasPrefix(guid, "{") || !strings.HasSuffix(guid, "}") {
		t.Errorf("NewGUID() = %q, want braces", guid)
	}
	if guid != strings.ToUpper(guid) {
		t.Errorf("NewGUID() = %q, want uppercase", guid)
	}
	if NewGUID() == guid {
		t.Error("NewGUID() returned the same GUID twice")
	}
}

func TestNotFoundError_Message(t *testing.T) {
	err := &NotFoundError{Kind: "package", GUID: "{123}"}
	want := "package with GUID {123} not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
