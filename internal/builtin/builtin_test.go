package builtin

import (
	"context"
	"testing"

	"github.com/forgekit/forge/internal/scaffold"
	"github.com/forgekit/forge/internal/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registry(t *testing.T) *scaffold.Registry {
	t.Helper()
	reg := scaffold.NewRegistry()
	require.NoError(t, Register(reg, "dev"))
	return reg
}

func run(t *testing.T, typ string, kv ...any) *sink.Billy {
	t.Helper()
	s := sink.NewMemory(sink.Options{})
	r := &scaffold.Runner{
		Registry:  registry(t),
		Sink:      s,
		Overrides: scaffold.ViewContextFrom(kv...),
	}
	res, err := r.Run(context.Background(), typ)
	require.NoError(t, err)
	require.Equal(t, scaffold.OutcomeCompleted, res.Outcome)
	return s
}

func read(t *testing.T, s *sink.Billy, path string) string {
	t.Helper()
	data, err := s.ReadFile(s.BuildPath(path))
	require.NoError(t, err)
	return string(data)
}

func TestRegister_AllBuiltins(t *testing.T) {
	reg := registry(t)

	var types []string
	for _, def := range reg.List() {
		types = append(types, def.Type)
	}
	assert.Equal(t, []string{"cli", "gopkg", "plugin", "widget"}, types)
}

func TestPlugin(t *testing.T) {
	s := run(t, "plugin", "name", "demo", "author", "ada")

	tree, err := s.Tree()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"demo/",
		"demo/build.json",
		"demo/lib/",
		"demo/src/",
		"demo/src/index.js",
	}, tree)
	assert.Contains(t, read(t, s, "demo/build.json"), `"author": "ada"`)
}

func TestWidget_NoRenderHook(t *testing.T) {
	s := run(t, "widget")
	assert.Equal(t, "<div class=\"widget\"></div>\n", read(t, s, "widget/index.html"))
}

func TestCLI_FileTemplates(t *testing.T) {
	s := run(t, "cli", "name", "tool", "module", "example.com/tool")

	assert.Equal(t, "module example.com/tool\n\ngo 1.25\n\nrequire github.com/spf13/cobra v1.10.2\n", read(t, s, "tool/go.mod"))
	assert.Contains(t, read(t, s, "tool/main.go"), `"example.com/tool/internal/cli"`)
	assert.Contains(t, read(t, s, "tool/internal/cli/root.go"), `Short: "Tool command-line tool"`)
}

func TestGoPackage(t *testing.T) {
	s := run(t, "gopkg", "name", "Demo-Lib")

	tree, err := s.Tree()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Demo-Lib/",
		"Demo-Lib/README.md",
		"Demo-Lib/demolib_test.go",
		"Demo-Lib/doc.go",
		"Demo-Lib/go.mod",
	}, tree)

	assert.Equal(t, "module example.com/Demo-Lib\n\ngo 1.25\n", read(t, s, "Demo-Lib/go.mod"))
	assert.Equal(t, "# Demo-Lib\n\n    go get example.com/Demo-Lib\n", read(t, s, "Demo-Lib/README.md"))
	assert.Contains(t, read(t, s, "Demo-Lib/doc.go"), "package demolib")
}

func TestGoPackage_ExplicitModule(t *testing.T) {
	s := run(t, "gopkg", "name", "kit", "module", "github.com/acme/kit")
	assert.Equal(t, "module github.com/acme/kit\n\ngo 1.25\n", read(t, s, "kit/go.mod"))
}

func TestGoPackageData_Errors(t *testing.T) {
	_, err := goPackageData(scaffold.NewViewContext())
	assert.Error(t, err)

	_, err = goPackageData(scaffold.ViewContextFrom("name", "---"))
	assert.Error(t, err)
}
