// Package panel owns the installer HTTP front door.
//
// Ownership boundary:
// - installer page and form submission
// - module listing and liveness endpoints
// - server lifecycle
//
// The panel acknowledges a run as soon as it is dispatched and never reports
// the script's outcome to the browser.
package panel
