// Package schema maps user-facing type descriptors onto storage columns and
// manages table lifecycle.
package schema
