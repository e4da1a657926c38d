//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir      string // FORGE_HOME, holds scaffolds/
	ScaffoldsDir string // user scaffold manifests
	DestDir      string // destination root for runs
}

// setupTestEnv creates isolated temp directories and points FORGE_HOME at
// them so nothing touches the real home directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir: t.TempDir(),
		DestDir: t.TempDir(),
	}
	env.ScaffoldsDir = filepath.Join(env.HomeDir, "scaffolds")
	t.Setenv("FORGE_HOME", env.HomeDir)

	if err := os.MkdirAll(env.ScaffoldsDir, 0755); err != nil {
		t.Fatalf("creating scaffolds dir: %v", err)
	}
	return env
}

// setupScaffolds writes a set of user manifests covering both layouts.
func setupScaffolds(t *testing.T, dir string) {
	t.Helper()

	// --- Scenario A: directories and content only ---
	writeFile(t, filepath.Join(dir, "layout.yaml"), `type: layout
description: Plain directory layout
output:
  lib: {}
  src:
    index.js: "(function(){}());"
  build.json: "{}"
`)

	// --- Templated names and !file content ---
	writeFile(t, filepath.Join(dir, "service", "scaffold.yaml"), `type: service
description: A templated service
version: "1.0.0"
render: template
data:
  port: 8080
prompt:
  - name: name
    required: true
output:
  "{{.name | kebab}}":
    README.md: !file files/readme.md.tmpl
    config:
      "{{.name | snake}}.env": "PORT={{.port}}\n"
`)
	writeFile(t, filepath.Join(dir, "service", "files", "readme.md.tmpl"), "# {{.name}}\n")

	// --- Broken and incompatible manifests are skipped with warnings ---
	writeFile(t, filepath.Join(dir, "broken.yaml"), "type: [unclosed\n")
	writeFile(t, filepath.Join(dir, "future.yaml"), "type: future\nrequires: \">=99.0.0\"\noutput: {}\n")
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileNotExists fails the test if the path exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected path NOT to exist: %s", path)
	}
}

// assertFileContent fails if the file doesn't exist or its content differs.
func assertFileContent(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if string(data) != want {
		t.Errorf("file %s = %q, want %q", path, string(data), want)
	}
}

// assertContains fails if s does not contain substr.
func assertContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("output does not contain %q.\nOutput:\n%s", substr, s)
	}
}
