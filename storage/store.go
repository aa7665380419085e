package storage

import (
	"database/sql"
	"fmt"
	"strings"

	duckdb "github.com/duckdb/duckdb-go/v2"
	"github.com/shopspring/decimal"

	"github.com/Razielxkx/Database-editor/core"
)

// Store owns a DuckDB handle. Callers inject it into the schema manager and
// the query engine; there is no process-wide shared session.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database file at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenMemory opens a fresh in-memory database.
func OpenMemory() (*Store, error) {
	return Open("")
}

func (store *Store) Close() error {
	return store.db.Close()
}

// Assignment is one SET clause with its value already coerced.
type Assignment struct {
	Column string
	Value  any
}

func (store *Store) CreateTable(table core.Table) error {
	defs := make([]string, len(table.Columns))
	for i, column := range table.Columns {
		def := quoteIdent(column.Name) + " " + columnDDL(column)
		if column.PrimaryKey {
			def += " PRIMARY KEY"
		} else if !column.Nullable {
			def += " NOT NULL"
		}
		defs[i] = def
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table.Name), strings.Join(defs, ", "))
	if _, err := store.db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table.Name, err)
	}
	return nil
}

func (store *Store) DropTable(name string) error {
	if _, err := store.db.Exec("DROP TABLE " + quoteIdent(name)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", name, err)
	}
	return nil
}

// HasTable reports whether the catalog knows the table.
func (store *Store) HasTable(name string) (bool, error) {
	row := store.db.QueryRow(
		`SELECT count(*) FROM information_schema.tables WHERE table_schema = 'main' AND table_name = ?`, name)

	var count int
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("failed to inspect catalog: %w", err)
	}
	return count > 0, nil
}

// Tables lists table names from the live catalog, ordered by name so the
// listing is stable within a process run.
func (store *Store) Tables() ([]string, error) {
	rows, err := store.db.Query(
		`SELECT table_name FROM information_schema.tables WHERE table_schema = 'main' ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// Columns reflects a table's columns from the live catalog in declared order.
// A column named "id" is reported as the primary key, matching the creation
// convention.
func (store *Store) Columns(table string) ([]core.Column, error) {
	rows, err := store.db.Query(
		`SELECT column_name, data_type, is_nullable, coalesce(character_maximum_length, 0)
		 FROM information_schema.columns
		 WHERE table_schema = 'main' AND table_name = ?
		 ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to reflect columns of %s: %w", table, err)
	}
	defer rows.Close()

	var columns []core.Column
	for rows.Next() {
		var (
			name     string
			dataType string
			nullable string
			length   int
		)
		if err := rows.Scan(&name, &dataType, &nullable, &length); err != nil {
			return nil, err
		}
		columns = append(columns, core.Column{
			Name:       name,
			Type:       storageType(dataType),
			Length:     length,
			PrimaryKey: name == "id",
			Nullable:   nullable == "YES",
		})
	}
	return columns, rows.Err()
}

// Select fetches all rows matching the AND-combined conditions (all rows when
// conditions is empty), in the engine's scan order.
func (store *Store) Select(table string, conditions []core.Condition) ([]string, [][]any, error) {
	query := "SELECT * FROM " + quoteIdent(table)
	predicate, args := wherePredicate(conditions)
	query += predicate

	rows, err := store.db.Query(query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var data [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		dests := make([]any, len(columns))
		for i := range values {
			dests[i] = &values[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, nil, err
		}
		for i, v := range values {
			values[i] = normalize(v)
		}
		data = append(data, values)
	}
	return columns, data, rows.Err()
}

// Insert writes one row as a single transaction.
func (store *Store) Insert(table string, columns []string, values []any) error {
	statement := insertStatement(table, columns)
	return store.inTransaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(statement, values...)
		return err
	})
}

// InsertMany writes all rows in one transaction; a failing row rolls back
// every row before it.
func (store *Store) InsertMany(table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	statement := insertStatement(table, columns)
	return store.inTransaction(func(tx *sql.Tx) error {
		prepared, err := tx.Prepare(statement)
		if err != nil {
			return err
		}
		defer prepared.Close()

		for _, values := range rows {
			if _, err := prepared.Exec(values...); err != nil {
				return err
			}
		}
		return nil
	})
}

func insertStatement(table string, columns []string) string {
	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, column := range columns {
		quoted[i] = quoteIdent(column)
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
}

// Update applies the assignments to every row matching the conditions (every
// row when conditions is empty) and returns the affected row count. The whole
// statement commits or rolls back as one unit.
func (store *Store) Update(table string, assignments []Assignment, conditions []core.Condition) (int64, error) {
	sets := make([]string, len(assignments))
	args := make([]any, 0, len(assignments)+len(conditions))
	for i, assignment := range assignments {
		sets[i] = quoteIdent(assignment.Column) + " = ?"
		args = append(args, assignment.Value)
	}

	statement := fmt.Sprintf("UPDATE %s SET %s", quoteIdent(table), strings.Join(sets, ", "))
	predicate, predicateArgs := wherePredicate(conditions)
	statement += predicate
	args = append(args, predicateArgs...)

	var affected int64
	err := store.inTransaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(statement, args...)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	return affected, err
}

// Delete removes every row matching the conditions and returns the affected
// row count.
func (store *Store) Delete(table string, conditions []core.Condition) (int64, error) {
	statement := "DELETE FROM " + quoteIdent(table)
	predicate, args := wherePredicate(conditions)
	statement += predicate

	var affected int64
	err := store.inTransaction(func(tx *sql.Tx) error {
		result, err := tx.Exec(statement, args...)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	return affected, err
}

func (store *Store) inTransaction(fn func(tx *sql.Tx) error) error {
	tx, err := store.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// wherePredicate builds an AND-combined predicate with placeholder args.
// Condition operands are bound as the raw text from the statement; the engine
// casts them against the column type at comparison time.
func wherePredicate(conditions []core.Condition) (string, []any) {
	if len(conditions) == 0 {
		return "", nil
	}

	terms := make([]string, len(conditions))
	args := make([]any, len(conditions))
	for i, condition := range conditions {
		terms[i] = fmt.Sprintf("%s %s ?", quoteIdent(condition.Column), condition.Op)
		args[i] = condition.Value
	}
	return " WHERE " + strings.Join(terms, " AND "), args
}

func columnDDL(column core.Column) string {
	switch column.Type {
	case core.IntegerType:
		return "INTEGER"
	case core.BooleanType:
		return "BOOLEAN"
	case core.DecimalType:
		return "DECIMAL(18,3)"
	case core.DateTimeType:
		return "TIMESTAMP"
	default:
		if column.Length > 0 {
			return fmt.Sprintf("VARCHAR(%d)", column.Length)
		}
		return "VARCHAR"
	}
}

// storageType maps a catalog data_type string back to a storage type.
// Unrecognized engine types reflect as text.
func storageType(dataType string) core.StorageType {
	upper := strings.ToUpper(dataType)
	switch {
	case strings.HasPrefix(upper, "DECIMAL"), strings.HasPrefix(upper, "NUMERIC"):
		return core.DecimalType
	case upper == "INTEGER", upper == "BIGINT", upper == "SMALLINT", upper == "TINYINT":
		return core.IntegerType
	case upper == "BOOLEAN":
		return core.BooleanType
	case strings.HasPrefix(upper, "TIMESTAMP"):
		return core.DateTimeType
	default:
		return core.TextType
	}
}

// normalize converts driver-specific scan values into the shared value types.
func normalize(value any) any {
	switch v := value.(type) {
	case duckdb.Decimal:
		return decimal.NewFromBigInt(v.Value, -int32(v.Scale))
	case []byte:
		return string(v)
	default:
		return value
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
