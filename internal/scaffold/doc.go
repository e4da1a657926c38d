// Package scaffold materializes declarative output trees onto a filesystem
// sink. A Definition names a scaffold and carries its output tree; the
// Resolver walks that tree, rendering templated names and file bodies and
// resolving generator nodes, while the Runner drives a whole run from a
// registered type name to a completed Report.
package scaffold
