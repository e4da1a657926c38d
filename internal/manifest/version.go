package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckVersion verifies that the manifest's own version is valid semver
// and that its requires constraint accepts cliVersion. Development builds
// ("dev" or any unparsable version) skip the constraint check.
func (m *Manifest) CheckVersion(cliVersion string) error {
	if m.Version != "" {
		if _, err := parseSemver(m.Version); err != nil {
			return fmt.Errorf("invalid version %q: %w", m.Version, err)
		}
	}

	if m.Requires == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(m.Requires)
	if err != nil {
		return fmt.Errorf("invalid requires constraint %q: %w", m.Requires, err)
	}

	current, err := parseSemver(cliVersion)
	if err != nil {
		return nil
	}

	if ok, errs := constraint.Validate(current); !ok {
		reasons := make([]string, len(errs))
		for i, e := range errs {
			reasons[i] = e.Error()
		}
		return fmt.Errorf("requires %s, running %s: %s", m.Requires, current, strings.Join(reasons, "; "))
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
