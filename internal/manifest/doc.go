// Package manifest handles YAML scaffold manifests. It parses them while
// keeping key order, validates them against an embedded JSON Schema, checks
// semver requirements, and converts them into scaffold definitions.
package manifest
