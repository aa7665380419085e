// Package history journals schema and data changes as commits in a git
// object store, one JSON entry per change, so every edit carries an author
// and a timestamp.
package history
