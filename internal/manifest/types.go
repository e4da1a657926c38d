package manifest

import "go.yaml.in/yaml/v3"

// Manifest is the on-disk form of a scaffold definition.
type Manifest struct {
	Type        string        `yaml:"type" json:"type"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
	Version     string        `yaml:"version,omitempty" json:"version,omitempty"`
	Requires    string        `yaml:"requires,omitempty" json:"requires,omitempty"`
	Render      string        `yaml:"render,omitempty" json:"render,omitempty"`
	Prompt      []PromptField `yaml:"prompt,omitempty" json:"prompt,omitempty"`

	// Data and Output stay as raw nodes so mapping order survives decoding.
	Data   yaml.Node `yaml:"data,omitempty" json:"-"`
	Output yaml.Node `yaml:"output,omitempty" json:"-"`
}

// PromptField describes one parameter asked for before a run.
type PromptField struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Default     string `yaml:"default,omitempty" json:"default,omitempty"`
}

// Render engines a manifest may select.
const (
	RenderNone     = "none"
	RenderTemplate = "template"
)

// FileTag marks a scalar whose content is read from a file next to the
// manifest when the scaffold runs.
const FileTag = "!file"
