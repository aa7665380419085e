// Package storage wraps the embedded DuckDB engine behind the small surface
// the schema manager and query engine need: DDL, catalog reflection and
// transactional row mutations.
package storage
