// Package dbeditor is a small database editor built on an embedded DuckDB
// engine. Tables are declared with friendly type descriptors, data is edited
// with a compact SQL subset, and every change is journaled as a git commit
// carrying its author and timestamp.
//
// # Quick Start
//
// Open an in-memory instance:
//
//	instance, _ := dbeditor.Open("", "")
//	defer instance.Close()
//
//	identity := core.Identity{Name: "App", Email: "app@example.com"}
//	instance.Schema.CreateTable("users", []core.ColumnSpec{
//		{Name: "id", TypeDesc: "int"},
//		{Name: "name", TypeDesc: "varchar(100)", Nullable: true},
//	}, identity)
//
//	engine := instance.Engine(identity)
//	engine.Execute("INSERT INTO users (id, name) VALUES (1, 'Alice')")
//
//	result, _ := engine.Execute("SELECT * FROM users")
//	result.Display()
//
// # Supported SQL
//
// The editor understands one statement at a time:
//   - SELECT * with an optional WHERE clause
//   - INSERT with or without a column list
//   - UPDATE, with or without WHERE
//   - DELETE, which requires a WHERE clause
//
// WHERE clauses are chains of column/operator/value terms joined with AND,
// using =, !=, <, <=, > and >=.
package dbeditor
