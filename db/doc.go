// Package db executes statements against the store and shapes their results
// for display. It sits between the parser and the storage layer: conditions
// are validated and values coerced here, before anything mutating runs.
package db
