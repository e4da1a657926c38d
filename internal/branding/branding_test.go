package branding

import "testing"

func TestEmbeddedIdentity(t *testing.T) {
	if got := CLIName(); got != "forge" {
		t.Errorf("CLIName() = %q, want %q", got, "forge")
	}
	if got := HomeDir(); got != ".forge" {
		t.Errorf("HomeDir() = %q, want %q", got, ".forge")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("dest"); got != "FORGE_DEST" {
		t.Errorf("EnvVar(dest) = %q, want %q", got, "FORGE_DEST")
	}
}
