// Package core provides the core types shared across the database editor.
//
// The package defines column and table descriptors, WHERE-clause conditions,
// the author Identity attached to recorded changes, and the value coercion
// between literal text and typed storage values.
//
// # Column Types
//
// Supported storage types:
//   - IntegerType: whole numbers
//   - BooleanType: true/false values
//   - DecimalType: exact decimal numbers
//   - DateTimeType: timestamps in "YYYY-MM-DD HH:MM:SS" form
//   - TextType: character data, optionally length-bounded
//
// # Value Coercion
//
// ToStorage converts literal text into the typed value a column stores:
//
//	v, err := core.ToStorage("42", core.IntegerType) // int(42)
//
// ToDisplay converts stored values back into their display form; datetimes
// become fixed-format strings and decimals become floats.
package core
