package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/forgekit/forge/internal/output"
	"github.com/forgekit/forge/internal/scaffold"
)

// DirManifestName is the manifest file looked up inside scaffold
// subdirectories.
const DirManifestName = "scaffold.yaml"

// LoadResult holds the definitions found in a directory. Manifests that
// fail validation are skipped and reported as warnings.
type LoadResult struct {
	Definitions []*scaffold.Definition
	Warnings    []string
}

// LoadDir loads manifests from a directory on disk. A missing directory
// yields an empty result.
func LoadDir(dir, cliVersion string) (*LoadResult, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return &LoadResult{}, nil
	}
	return LoadFS(os.DirFS(dir), ".", cliVersion)
}

// LoadFS loads manifests from dir inside fsys. Two layouts are accepted:
// <dir>/<name>.yaml with !file paths relative to dir, and
// <dir>/<name>/scaffold.yaml with !file paths relative to <dir>/<name>.
func LoadFS(fsys fs.FS, dir, cliVersion string) (*LoadResult, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading scaffold directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case entry.IsDir():
			candidate := path.Join(dir, name, DirManifestName)
			if _, err := fs.Stat(fsys, candidate); err == nil {
				files = append(files, candidate)
			}
		case strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml"):
			files = append(files, path.Join(dir, name))
		}
	}
	sort.Strings(files)

	result := &LoadResult{}
	for _, file := range files {
		def, err := loadOne(fsys, file, cliVersion)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", file, err))
			continue
		}
		output.Debug("loaded scaffold manifest", "type", def.Type, "file", file)
		result.Definitions = append(result.Definitions, def)
	}
	return result, nil
}

func loadOne(fsys fs.FS, file, cliVersion string) (*scaffold.Definition, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	res, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, err
	}

	m, err := ParseBytes(data, file)
	if err != nil {
		return nil, err
	}
	if err := m.CheckVersion(cliVersion); err != nil {
		return nil, err
	}

	return m.ToDefinition(Source{FS: fsys, Dir: path.Dir(file)})
}
