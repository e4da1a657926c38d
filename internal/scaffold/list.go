package scaffold

import (
	"fmt"
	"io"
	"strings"
)

const (
	minListColumn      = 20
	noDescriptionLabel = "No description provided"
)

// WriteList prints the available scaffolds, one per line, with
// descriptions aligned after the longest type name.
func WriteList(w io.Writer, defs []*Definition) error {
	width := minListColumn
	for _, def := range defs {
		if len(def.Type) > width {
			width = len(def.Type)
		}
	}

	var b strings.Builder
	b.WriteString("\nCurrently available scaffolds:\n")
	for _, def := range defs {
		desc := def.Description
		if desc == "" {
			desc = noDescriptionLabel
		}
		fmt.Fprintf(&b, "  * %-*s %s\n", width, def.Type, desc)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
