// Package dispatch launches module scripts in the background.
//
// Ownership boundary:
// - one detached goroutine per submitted run
// - success/failure capture for a run
//
// Runs are never queued, deduplicated, cancelled or retried. Overlapping runs
// of the same module share the working directory without locking.
package dispatch
