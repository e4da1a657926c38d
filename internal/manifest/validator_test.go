package manifest

import (
	"strings"
	"testing"
)

func TestValidateFile_ValidManifests(t *testing.T) {
	validFiles := []string{
		"valid-plugin.yaml",
		"valid-minimal.yaml",
		"no-output.yaml",
		"from-file/scaffold.yaml",
	}

	for _, file := range validFiles {
		t.Run(file, func(t *testing.T) {
			result, err := ValidateFile(testPath(file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) error: %v", file, err)
			}
			if !result.Valid {
				t.Errorf("expected valid, got invalid with %d issues:", len(result.Issues))
				for _, issue := range result.Issues {
					t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
				}
			}
		})
	}
}

func TestValidateFile_InvalidManifests(t *testing.T) {
	invalidFiles := []struct {
		file string
		desc string
	}{
		{"invalid-bad-type.yaml", "type violates pattern"},
		{"invalid-list-type.yaml", "type uses the reserved list action"},
		{"invalid-unknown-field.yaml", "unknown top-level field"},
		{"invalid-render.yaml", "unknown render engine"},
		{"invalid-root-content.yaml", "output root is a scalar"},
		{"invalid-output-list.yaml", "output entry is a list"},
	}

	for _, tt := range invalidFiles {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Errorf("expected invalid for %s (%s), but got valid", tt.file, tt.desc)
			}
			if len(result.Issues) == 0 {
				t.Errorf("expected at least one issue for %s (%s)", tt.file, tt.desc)
			}
		})
	}
}

func TestValidate_InvalidYAML(t *testing.T) {
	_, err := ValidateFile(testPath("bad-yaml.yaml"))
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestValidationIssue_String(t *testing.T) {
	issue := ValidationIssue{Path: "/type", Message: "bad"}
	if got := issue.String(); got != "/type: bad" {
		t.Errorf("String() = %q, want %q", got, "/type: bad")
	}
	if got := (ValidationIssue{Message: "bad"}).String(); got != "bad" {
		t.Errorf("String() = %q, want %q", got, "bad")
	}
}

func TestValidate_ReservedListType(t *testing.T) {
	result, err := Validate([]byte("type: list\noutput: {}\n"))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid")
	}
	found := false
	for _, issue := range result.Issues {
		if issue.Path == "/type" && issue.Keyword == "not" {
			found = true
			if !strings.Contains(issue.Message, "reserved") {
				t.Errorf("message = %q, want mention of reserved", issue.Message)
			}
		}
	}
	if !found {
		t.Errorf("no /type not issue in %v", result.Issues)
	}
}

func TestValidate_IssuesSortedAndErr(t *testing.T) {
	doc := "type: Bad_Type\nrender: mustache\ncolour: blue\n"
	result, err := Validate([]byte(doc))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if len(result.Issues) < 3 {
		t.Fatalf("expected at least 3 issues, got %v", result.Issues)
	}
	for i := 1; i < len(result.Issues); i++ {
		if result.Issues[i-1].Path > result.Issues[i].Path {
			t.Errorf("issues not sorted by path: %v", result.Issues)
		}
	}

	again, _ := Validate([]byte(doc))
	if len(again.Issues) != len(result.Issues) {
		t.Errorf("issue count changed between runs: %d vs %d", len(again.Issues), len(result.Issues))
	}

	verr := result.Err()
	if verr == nil || !strings.HasPrefix(verr.Error(), "invalid manifest: ") {
		t.Errorf("Err() = %v", verr)
	}
	if err := (&ValidationResult{Valid: true}).Err(); err != nil {
		t.Errorf("valid Err() = %v, want nil", err)
	}
}

func TestValidate_NonStringKeys(t *testing.T) {
	result, err := Validate([]byte("type: site\noutput:\n  404: not found\n  true: yes\n"))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid, got %v", result.Issues)
	}
}

func TestPointer(t *testing.T) {
	tests := []struct {
		loc  []string
		want string
	}{
		{nil, ""},
		{[]string{"type"}, "/type"},
		{[]string{"output", "a/b", "~x"}, "/output/a~1b/~0x"},
	}
	for _, tt := range tests {
		if got := pointer(tt.loc); got != tt.want {
			t.Errorf("pointer(%v) = %q, want %q", tt.loc, got, tt.want)
		}
	}
}
