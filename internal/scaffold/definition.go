package scaffold

// Mode tells a render hook what kind of template it is rendering.
type Mode string

const (
	// ModeName renders a directory or file name.
	ModeName Mode = "name"
	// ModeFile renders a file body.
	ModeFile Mode = "file"
)

// RenderRequest is the input of a render hook.
type RenderRequest struct {
	Mode     Mode
	Filename string // base name of the file being written; empty in ModeName
	Template string
	Data     *ViewContext
}

// RenderFunc turns a template plus data into final text.
type RenderFunc func(req RenderRequest) (string, error)

// ProcessFunc transforms the view context once before resolution begins.
type ProcessFunc func(data *ViewContext) (*ViewContext, error)

// Param describes one value the prompting collaborator should collect.
type Param struct {
	Name        string
	Description string
	Required    bool
	Default     string
}

// Definition describes one named scaffold.
type Definition struct {
	Type        string
	Description string
	Version     string
	Data        *ViewContext
	Prompt      []Param
	Output      Node
	Render      RenderFunc
	ProcessData ProcessFunc
}

// viewContext builds the initial context for a run: the static data plus
// the scaffold's type name.
func (d *Definition) viewContext() *ViewContext {
	vc := d.Data.Clone()
	vc.Set("type", d.Type)
	return vc
}
