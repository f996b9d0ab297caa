// Package modules owns the installer module registry.
//
// Ownership boundary:
// - module identity and script binding
// - lookup and deterministic listing
// - argv construction for a module's script
package modules
