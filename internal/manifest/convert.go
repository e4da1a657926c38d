package manifest

import (
	"context"
	"fmt"
	"io/fs"
	"path"

	"go.yaml.in/yaml/v3"

	"github.com/forgekit/forge/internal/scaffold"
)

// Source locates the files a manifest's !file entries refer to.
type Source struct {
	FS  fs.FS
	Dir string // directory of the manifest inside FS
}

// ToDefinition converts a parsed manifest into a scaffold definition.
func (m *Manifest) ToDefinition(src Source) (*scaffold.Definition, error) {
	def := &scaffold.Definition{
		Type:        m.Type,
		Description: m.Description,
		Version:     m.Version,
	}

	data, err := decodeData(&m.Data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: data: %w", m.Type, err)
	}
	def.Data = data

	for _, p := range m.Prompt {
		def.Prompt = append(def.Prompt, scaffold.Param{
			Name:        p.Name,
			Description: p.Description,
			Required:    p.Required,
			Default:     p.Default,
		})
	}

	switch m.Render {
	case "", RenderNone:
	case RenderTemplate:
		def.Render = scaffold.TemplateRender
	default:
		return nil, fmt.Errorf("manifest %s: unknown render engine %q", m.Type, m.Render)
	}

	if !isAbsent(&m.Output) {
		out, err := convertNode(&m.Output, src)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: output: %w", m.Type, err)
		}
		def.Output = out
	}

	return def, nil
}

// isAbsent reports whether an output node was omitted or left null.
func isAbsent(n *yaml.Node) bool {
	if n.Kind == 0 {
		return true
	}
	if n.Kind == yaml.DocumentNode && len(n.Content) == 0 {
		return true
	}
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// convertNode maps YAML onto the output tree: mappings become directories,
// scalars become file content, null becomes an empty directory and !file
// scalars become generators reading from src.
func convertNode(n *yaml.Node, src Source) (scaffold.Node, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return scaffold.Dir(), nil
		}
		return convertNode(n.Content[0], src)

	case yaml.AliasNode:
		return convertNode(n.Alias, src)

	case yaml.MappingNode:
		entries := make([]scaffold.Entry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return scaffold.Node{}, fmt.Errorf("line %d: entry names must be scalars", key.Line)
			}
			child, err := convertNode(val, src)
			if err != nil {
				return scaffold.Node{}, fmt.Errorf("%s: %w", key.Value, err)
			}
			entries = append(entries, scaffold.Item(key.Value, child))
		}
		return scaffold.Dir(entries...), nil

	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return scaffold.Dir(), nil
		case FileTag:
			return fileGenerator(src, n.Value), nil
		default:
			return scaffold.Content(n.Value), nil
		}

	default:
		return scaffold.Node{}, fmt.Errorf("line %d: lists are not valid output entries", n.Line)
	}
}

// fileGenerator defers reading name until the scaffold runs.
func fileGenerator(src Source, name string) scaffold.Node {
	return scaffold.Generator(func(ctx context.Context, _ *scaffold.ViewContext) (scaffold.Node, error) {
		if src.FS == nil {
			return scaffold.Node{}, fmt.Errorf("%s %s: no source filesystem", FileTag, name)
		}
		data, err := fs.ReadFile(src.FS, path.Join(src.Dir, name))
		if err != nil {
			return scaffold.Node{}, fmt.Errorf("%s %s: %w", FileTag, name, err)
		}
		return scaffold.Content(string(data)), nil
	})
}

// decodeData converts the data mapping into a view context, keeping order.
func decodeData(n *yaml.Node) (*scaffold.ViewContext, error) {
	vc := scaffold.NewViewContext()
	if isAbsent(n) {
		return vc, nil
	}
	if n.Kind == yaml.DocumentNode {
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: data must be a mapping", n.Line)
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		v, err := decodeValue(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key.Value, err)
		}
		vc.Set(key.Value, v)
	}
	return vc, nil
}

func decodeValue(n *yaml.Node) (any, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind == yaml.MappingNode {
		return decodeData(n)
	}

	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
