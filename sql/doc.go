// Package sql provides lexing and parsing for the editor's query dialect.
//
// The dialect covers single-table SELECT/INSERT/UPDATE/DELETE statements with
// AND-chained WHERE comparisons. Keywords are case-insensitive; quoted string
// literals keep their case.
//
// # Parser Usage
//
//	parser := sql.NewParser("SELECT * FROM people WHERE id = 1")
//	statement, err := parser.Parse()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Supported Statements
//
//   - SELECT * FROM t [WHERE cond [AND cond]...]
//   - INSERT INTO t [(c1, c2, ...)] VALUES (v1, v2, ...)
//   - UPDATE t SET c1 = v1 [, c2 = v2 ...] [WHERE ...]
//   - DELETE FROM t [WHERE ...]
//
// Comparison operators are =, !=, <, <=, > and >=. Anything else fails with
// ErrUnrecognizedStatement (unknown leading keyword) or ErrFormat (recognized
// statement with a bad shape).
package sql
