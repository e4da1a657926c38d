// Package builtin holds the scaffolds shipped with the binary: embedded
// YAML manifests plus Go-defined scaffolds that need generators.
package builtin

import (
	"embed"
	"fmt"

	"github.com/forgekit/forge/internal/manifest"
	"github.com/forgekit/forge/internal/output"
	"github.com/forgekit/forge/internal/scaffold"
)

//go:embed scaffolds
var scaffoldFS embed.FS

// Register adds every built-in scaffold to reg.
func Register(reg *scaffold.Registry, cliVersion string) error {
	res, err := manifest.LoadFS(scaffoldFS, "scaffolds", cliVersion)
	if err != nil {
		return fmt.Errorf("loading built-in scaffolds: %w", err)
	}
	for _, w := range res.Warnings {
		output.Warn("skipping built-in scaffold", "reason", w)
	}

	defs := append(res.Definitions, GoPackage())
	for _, def := range defs {
		if err := reg.Register(def); err != nil {
			return err
		}
	}
	return nil
}
