// Package cli defines the Cobra command tree for the forge CLI. Commands only
// parse flags, wire collaborators and format results; scaffold resolution
// lives in internal/scaffold.
package cli
