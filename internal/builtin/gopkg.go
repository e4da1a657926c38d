package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/forgekit/forge/internal/scaffold"
)

const goPackageReadme = `# {{.name}}

    go get {{.module}}
`

// GoPackage is a Go library skeleton. Its go.mod and README are produced
// by generators so they can depend on values collected at run time.
func GoPackage() *scaffold.Definition {
	return &scaffold.Definition{
		Type:        "gopkg",
		Description: "A Go library package",
		Version:     "0.1.0",
		Data:        scaffold.ViewContextFrom("go", "1.25"),
		Prompt: []scaffold.Param{
			{Name: "name", Description: "Package name", Required: true},
			{Name: "module", Description: "Module path (default example.com/<name>)"},
		},
		Render:      scaffold.TemplateRender,
		ProcessData: goPackageData,
		Output: scaffold.Generator(func(ctx context.Context, data *scaffold.ViewContext) (scaffold.Node, error) {
			return scaffold.Dir(
				scaffold.Item("{{.name}}", scaffold.Dir(
					scaffold.Item("go.mod", scaffold.Generator(goMod)),
					scaffold.Item("doc.go", scaffold.Content("// Package {{.package}} is a Go library.\npackage {{.package}}\n")),
					scaffold.Item("{{.package}}_test.go", scaffold.Content("package {{.package}}\n")),
					scaffold.Item("README.md", scaffold.Deferred(readme)),
				)),
			), nil
		}),
	}
}

// goPackageData derives the Go package identifier and a default module path.
func goPackageData(data *scaffold.ViewContext) (*scaffold.ViewContext, error) {
	raw, _ := data.Get("name")
	name, _ := raw.(string)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	pkg := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, name)
	if pkg == "" {
		return nil, fmt.Errorf("name %q has no usable package characters", name)
	}
	data.Set("package", pkg)

	if module, _ := data.Get("module"); module == nil || module == "" {
		data.Set("module", "example.com/"+name)
	}
	return data, nil
}

func goMod(_ context.Context, data *scaffold.ViewContext) (scaffold.Node, error) {
	module, _ := data.Get("module")
	goVersion, _ := data.Get("go")
	return scaffold.Content(fmt.Sprintf("module %v\n\ngo %v\n", module, goVersion)), nil
}

func readme(_ *scaffold.ViewContext, done func(scaffold.Node, error)) {
	go done(scaffold.Content(goPackageReadme), nil)
}
