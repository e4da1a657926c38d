package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/manifest.schema.json
var schemaBytes []byte

const schemaURL = "manifest.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error

	printer = message.NewPrinter(language.English)
)

// ValidationResult is the outcome of checking a manifest against the schema.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue is one schema violation, located by JSON pointer.
type ValidationIssue struct {
	Path    string // e.g. "/type", "/output/src"; empty for the document
	Message string
	Keyword string // failing schema keyword, e.g. "pattern"
}

func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Err folds the issues into a single error, or nil for a valid manifest.
func (r *ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	msgs := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Errorf("invalid manifest: %s", strings.Join(msgs, "; "))
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			schemaErr = fmt.Errorf("decoding manifest schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("registering manifest schema: %w", err)
			return
		}
		if schema, err = c.Compile(schemaURL); err != nil {
			schemaErr = fmt.Errorf("compiling manifest schema: %w", err)
		}
	})
	return schema, schemaErr
}

// Validate checks raw manifest YAML against the embedded schema. The error
// return covers unreadable YAML and schema setup; violations are reported
// in the result.
func Validate(data []byte) (*ValidationResult, error) {
	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	inst, err := decodeInstance(data)
	if err != nil {
		return nil, err
	}

	err = sch.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("validating manifest: %w", err)
	}
	return &ValidationResult{Issues: issuesOf(ve)}, nil
}

// ValidateFile reads a file and validates it against the manifest schema.
func ValidateFile(path string) (*ValidationResult, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data)
}

// decodeInstance turns manifest YAML into the JSON value model the
// validator expects. Custom tags such as !file decode as plain strings.
func decodeInstance(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	raw, err := json.Marshal(jsonCompatible(doc))
	if err != nil {
		return nil, fmt.Errorf("converting manifest to JSON: %w", err)
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(raw))
}

// issuesOf flattens the error tree to its leaves, sorted by path so the
// same manifest always reports in the same order. The manifest schema only
// nests errors through $ref into the recursive node definition, so leaves
// carry the useful location.
func issuesOf(root *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	stack := []*jsonschema.ValidationError{root}
	for len(stack) > 0 {
		ve := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(ve.Causes) > 0 {
			stack = append(stack, ve.Causes...)
			continue
		}
		if issue, ok := leafIssue(ve); ok {
			issues = append(issues, issue)
		}
	}

	if len(issues) == 0 {
		return []ValidationIssue{{Message: root.Error()}}
	}

	slices.SortFunc(issues, func(a, b ValidationIssue) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		if c := strings.Compare(a.Keyword, b.Keyword); c != 0 {
			return c
		}
		return strings.Compare(a.Message, b.Message)
	})
	return slices.Compact(issues)
}

func leafIssue(ve *jsonschema.ValidationError) (ValidationIssue, bool) {
	if ve.ErrorKind == nil {
		return ValidationIssue{}, false
	}
	kw := ve.ErrorKind.KeywordPath()
	if len(kw) == 0 {
		return ValidationIssue{}, false
	}

	issue := ValidationIssue{
		Path:    pointer(ve.InstanceLocation),
		Keyword: kw[len(kw)-1],
		Message: ve.ErrorKind.LocalizedString(printer),
	}
	if issue.Path == "/type" && issue.Keyword == "not" {
		issue.Message = `"list" is reserved for listing scaffolds`
	}
	return issue, true
}

// pointer renders an instance location as a JSON pointer. Output entries
// are file names, so "~" and "/" are escaped.
func pointer(loc []string) string {
	var b strings.Builder
	for _, tok := range loc {
		b.WriteByte('/')
		tok = strings.ReplaceAll(tok, "~", "~0")
		b.WriteString(strings.ReplaceAll(tok, "/", "~1"))
	}
	return b.String()
}

// jsonCompatible rewrites YAML-decoded values for encoding/json. Non-string
// keys (a file literally named 404) are stringified.
func jsonCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, inner := range val {
			val[k] = jsonCompatible(inner)
		}
		return val
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, inner := range val {
			m[fmt.Sprint(k)] = jsonCompatible(inner)
		}
		return m
	case []any:
		for i, inner := range val {
			val[i] = jsonCompatible(inner)
		}
		return val
	default:
		return val
	}
}
