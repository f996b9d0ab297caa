// Package tools provides reusable runtime helpers shared by the panel modules.
//
// Ownership boundary:
// - command execution helpers
// - host/runtime utility primitives
package tools
