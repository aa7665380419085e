package db

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Razielxkx/Database-editor/core"
	"github.com/Razielxkx/Database-editor/history"
	"github.com/Razielxkx/Database-editor/schema"
	"github.com/Razielxkx/Database-editor/sql"
	"github.com/Razielxkx/Database-editor/storage"
)

var testIdentity = core.Identity{Name: "Test User", Email: "test@example.com"}

func setupTestEngine(t *testing.T) *Engine {
	t.Helper()

	store, err := storage.OpenMemory()
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	journal, err := history.NewMemoryLog()
	if err != nil {
		t.Fatalf("failed to open journal: %v", err)
	}

	manager := schema.NewManager(store, journal)
	specs := []core.ColumnSpec{
		{Name: "id", TypeDesc: "int"},
		{Name: "name", TypeDesc: "varchar(100)", Nullable: true},
		{Name: "age", TypeDesc: "int", Nullable: true},
	}
	if err := manager.CreateTable("people", specs, testIdentity); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	return NewEngine(store, manager, journal, testIdentity)
}

func mustExecute(t *testing.T, engine *Engine, query string) Result {
	t.Helper()
	result, err := engine.Execute(query)
	if err != nil {
		t.Fatalf("execute %q failed: %v", query, err)
	}
	return result
}

func selectRows(t *testing.T, engine *Engine, query string) QueryResult {
	t.Helper()
	result := mustExecute(t, engine, query)
	queryResult, ok := result.(QueryResult)
	if !ok {
		t.Fatalf("expected QueryResult for %q, got %T", query, result)
	}
	return queryResult
}

func TestInsertAndSelect(t *testing.T) {
	engine := setupTestEngine(t)

	result := mustExecute(t, engine, "INSERT INTO people VALUES (1, 'Ana', 34)")
	commit, ok := result.(CommitResult)
	if !ok {
		t.Fatalf("expected CommitResult, got %T", result)
	}
	if commit.RecordsWritten != 1 {
		t.Errorf("expected 1 record written, got %d", commit.RecordsWritten)
	}
	if commit.Commit.Id == "" {
		t.Error("expected a journal commit id")
	}

	query := selectRows(t, engine, "SELECT * FROM people WHERE id = 1")
	if query.RecordsRead != 1 {
		t.Fatalf("expected 1 row, got %d", query.RecordsRead)
	}
	row := query.Rows[0]
	if row["name"] != "Ana" {
		t.Errorf("expected name Ana, got %v", row["name"])
	}
	if row["age"] != int32(34) && row["age"] != 34 {
		t.Errorf("expected age 34, got %v (%T)", row["age"], row["age"])
	}
}

func TestInsertWithColumnList(t *testing.T) {
	engine := setupTestEngine(t)

	mustExecute(t, engine, "INSERT INTO people (id, name) VALUES (2, 'Bo')")

	query := selectRows(t, engine, "SELECT * FROM people WHERE id = 2")
	if query.RecordsRead != 1 {
		t.Fatalf("expected 1 row, got %d", query.RecordsRead)
	}
	if query.Rows[0]["age"] != nil {
		t.Errorf("expected nil age, got %v", query.Rows[0]["age"])
	}
}

func TestInsertColumnCountMismatch(t *testing.T) {
	engine := setupTestEngine(t)

	_, err := engine.Execute("INSERT INTO people VALUES (1, 'Ana')")
	if !errors.Is(err, ErrColumnCountMismatch) {
		t.Fatalf("expected ErrColumnCountMismatch, got %v", err)
	}

	_, err = engine.Execute("INSERT INTO people (id, name) VALUES (1)")
	if !errors.Is(err, ErrColumnCountMismatch) {
		t.Fatalf("expected ErrColumnCountMismatch, got %v", err)
	}

	query := selectRows(t, engine, "SELECT * FROM people")
	if query.RecordsRead != 0 {
		t.Errorf("expected no rows after failed inserts, got %d", query.RecordsRead)
	}
}

func TestInsertUnknownColumn(t *testing.T) {
	engine := setupTestEngine(t)

	_, err := engine.Execute("INSERT INTO people (id, nickname) VALUES (1, 'Ana')")
	if !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestInsertBadLiteralLeavesTableUntouched(t *testing.T) {
	engine := setupTestEngine(t)

	_, err := engine.Execute("INSERT INTO people VALUES (1, 'Ana', 'old')")
	if !errors.Is(err, core.ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}

	query := selectRows(t, engine, "SELECT * FROM people")
	if query.RecordsRead != 0 {
		t.Errorf("expected no rows, got %d", query.RecordsRead)
	}
}

func TestUpdateWithWhere(t *testing.T) {
	engine := setupTestEngine(t)

	mustExecute(t, engine, "INSERT INTO people VALUES (1, 'Ana', 34)")
	mustExecute(t, engine, "INSERT INTO people VALUES (2, 'Bo', 51)")

	result := mustExecute(t, engine, "UPDATE people SET age = 35 WHERE id = 1")
	commit := result.(CommitResult)
	if commit.RecordsWritten != 1 {
		t.Errorf("expected 1 record written, got %d", commit.RecordsWritten)
	}

	query := selectRows(t, engine, "SELECT * FROM people WHERE id = 2")
	if query.Rows[0]["age"] != int32(51) && query.Rows[0]["age"] != 51 {
		t.Errorf("row 2 should be untouched, got %v", query.Rows[0]["age"])
	}
}

func TestUpdateWithoutWhereTouchesAllRows(t *testing.T) {
	engine := setupTestEngine(t)

	mustExecute(t, engine, "INSERT INTO people VALUES (1, 'Ana', 34)")
	mustExecute(t, engine, "INSERT INTO people VALUES (2, 'Bo', 51)")

	result := mustExecute(t, engine, "UPDATE people SET name = 'Dee'")
	commit := result.(CommitResult)
	if commit.RecordsWritten != 2 {
		t.Fatalf("expected 2 records written, got %d", commit.RecordsWritten)
	}

	query := selectRows(t, engine, "SELECT * FROM people")
	for _, row := range query.Rows {
		if row["name"] != "Dee" {
			t.Errorf("expected name Dee, got %v", row["name"])
		}
	}
}

func TestDeleteWithWhere(t *testing.T) {
	engine := setupTestEngine(t)

	mustExecute(t, engine, "INSERT INTO people VALUES (1, 'Ana', 34)")
	mustExecute(t, engine, "INSERT INTO people VALUES (2, 'Bo', 51)")

	result := mustExecute(t, engine, "DELETE FROM people WHERE age > 40")
	commit := result.(CommitResult)
	if commit.RecordsDeleted != 1 {
		t.Errorf("expected 1 record deleted, got %d", commit.RecordsDeleted)
	}

	query := selectRows(t, engine, "SELECT * FROM people")
	if query.RecordsRead != 1 {
		t.Fatalf("expected 1 remaining row, got %d", query.RecordsRead)
	}
}

func TestDeleteWithoutWhereIsRefused(t *testing.T) {
	engine := setupTestEngine(t)

	mustExecute(t, engine, "INSERT INTO people VALUES (1, 'Ana', 34)")

	result := mustExecute(t, engine, "DELETE FROM people")
	status, ok := result.(StatusResult)
	if !ok {
		t.Fatalf("expected StatusResult, got %T", result)
	}
	if status.Code != StatusMissingWhere {
		t.Errorf("expected StatusMissingWhere, got %v", status.Code)
	}

	query := selectRows(t, engine, "SELECT * FROM people")
	if query.RecordsRead != 1 {
		t.Errorf("expected row to survive, got %d rows", query.RecordsRead)
	}
}

func TestConditionUnknownColumn(t *testing.T) {
	engine := setupTestEngine(t)

	mustExecute(t, engine, "INSERT INTO people VALUES (1, 'Ana', 34)")

	for _, query := range []string{
		"SELECT * FROM people WHERE nickname = 'Ana'",
		"UPDATE people SET name = 'Dee' WHERE nickname = 'Ana'",
		"DELETE FROM people WHERE nickname = 'Ana'",
	} {
		if _, err := engine.Execute(query); !errors.Is(err, ErrColumnNotFound) {
			t.Errorf("%q: expected ErrColumnNotFound, got %v", query, err)
		}
	}

	result := selectRows(t, engine, "SELECT * FROM people")
	if result.RecordsRead != 1 {
		t.Errorf("expected row to survive, got %d rows", result.RecordsRead)
	}
}

func TestChainedConditions(t *testing.T) {
	engine := setupTestEngine(t)

	mustExecute(t, engine, "INSERT INTO people VALUES (1, 'Ana', 34)")
	mustExecute(t, engine, "INSERT INTO people VALUES (2, 'Bo', 51)")
	mustExecute(t, engine, "INSERT INTO people VALUES (3, 'Cy', 18)")

	query := selectRows(t, engine, "SELECT * FROM people WHERE age >= 18 AND age < 40")
	if query.RecordsRead != 2 {
		t.Fatalf("expected 2 rows, got %d", query.RecordsRead)
	}
}

func TestSelectUnknownTable(t *testing.T) {
	engine := setupTestEngine(t)

	_, err := engine.Execute("SELECT * FROM missing")
	if !errors.Is(err, schema.ErrNotFound) {
		t.Fatalf("expected schema.ErrNotFound, got %v", err)
	}
}

func TestUnrecognizedStatement(t *testing.T) {
	engine := setupTestEngine(t)

	_, err := engine.Execute("SELEC * FROM people")
	if !errors.Is(err, sql.ErrUnrecognizedStatement) {
		t.Fatalf("expected ErrUnrecognizedStatement, got %v", err)
	}
}

func TestExportImportCSV(t *testing.T) {
	engine := setupTestEngine(t)

	mustExecute(t, engine, "INSERT INTO people VALUES (1, 'Ana', 34)")
	mustExecute(t, engine, "INSERT INTO people VALUES (2, 'Bo', 51)")

	target := filepath.Join(t.TempDir(), "people.csv")
	exported, err := engine.ExportCSV("people", target, nil)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if exported != 2 {
		t.Fatalf("expected 2 exported rows, got %d", exported)
	}

	mustExecute(t, engine, "DELETE FROM people WHERE id >= 1")

	imported, err := engine.ImportCSV("people", target, nil)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if imported != 2 {
		t.Fatalf("expected 2 imported rows, got %d", imported)
	}

	query := selectRows(t, engine, "SELECT * FROM people WHERE id = 2")
	if query.RecordsRead != 1 || query.Rows[0]["name"] != "Bo" {
		t.Errorf("unexpected round-trip result: %+v", query.Rows)
	}
}

func TestImportCSVBadRowImportsNothing(t *testing.T) {
	engine := setupTestEngine(t)

	source := filepath.Join(t.TempDir(), "people.csv")
	csv := "id,name,age\n1,Ana,34\n2,Bo,not-a-number\n3,Cy,28\n"
	if err := os.WriteFile(source, []byte(csv), 0o644); err != nil {
		t.Fatalf("failed to write CSV: %v", err)
	}

	imported, err := engine.ImportCSV("people", source, nil)
	if !errors.Is(err, core.ErrTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
	if imported != 0 {
		t.Errorf("expected 0 imported rows, got %d", imported)
	}

	query := selectRows(t, engine, "SELECT * FROM people")
	if query.RecordsRead != 0 {
		t.Errorf("expected table untouched, found %d rows", query.RecordsRead)
	}
}
