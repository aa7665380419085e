package storage

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Razielxkx/Database-editor/core"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenMemory()
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func peopleTable() core.Table {
	return core.Table{
		Name: "people",
		Columns: []core.Column{
			{Name: "id", Type: core.IntegerType, PrimaryKey: true},
			{Name: "name", Type: core.TextType, Length: 100, Nullable: true},
			{Name: "balance", Type: core.DecimalType, Nullable: true},
		},
	}
}

func TestCreateAndReflectTable(t *testing.T) {
	store := setupTestStore(t)

	if err := store.CreateTable(peopleTable()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	exists, err := store.HasTable("people")
	if err != nil {
		t.Fatalf("catalog lookup failed: %v", err)
	}
	if !exists {
		t.Fatal("expected people table to exist")
	}

	columns, err := store.Columns("people")
	if err != nil {
		t.Fatalf("reflect failed: %v", err)
	}
	if len(columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(columns))
	}
	if columns[0].Name != "id" || !columns[0].PrimaryKey || columns[0].Type != core.IntegerType {
		t.Errorf("unexpected id column: %+v", columns[0])
	}
	if columns[1].Name != "name" || columns[1].Type != core.TextType || columns[1].Length != 100 {
		t.Errorf("unexpected name column: %+v", columns[1])
	}
	if columns[2].Type != core.DecimalType {
		t.Errorf("expected decimal balance column, got %+v", columns[2])
	}
}

func TestDropTable(t *testing.T) {
	store := setupTestStore(t)

	if err := store.CreateTable(peopleTable()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.DropTable("people"); err != nil {
		t.Fatalf("drop failed: %v", err)
	}

	exists, err := store.HasTable("people")
	if err != nil {
		t.Fatalf("catalog lookup failed: %v", err)
	}
	if exists {
		t.Fatal("expected people table to be gone")
	}
}

func TestInsertAndSelect(t *testing.T) {
	store := setupTestStore(t)

	if err := store.CreateTable(peopleTable()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	err := store.Insert("people", []string{"id", "name", "balance"},
		[]any{1, "Ana", decimal.RequireFromString("10.500")})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	columns, rows, err := store.Select("people", nil)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if len(columns) != 3 || len(rows) != 1 {
		t.Fatalf("expected 1 row of 3 columns, got %d rows of %d columns", len(rows), len(columns))
	}

	balance, ok := rows[0][2].(decimal.Decimal)
	if !ok {
		t.Fatalf("expected decimal balance, got %T", rows[0][2])
	}
	if !balance.Equal(decimal.RequireFromString("10.5")) {
		t.Errorf("expected balance 10.5, got %s", balance)
	}
}

func TestInsertManyRollsBackOnFailure(t *testing.T) {
	store := setupTestStore(t)

	if err := store.CreateTable(peopleTable()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Duplicate primary key in the last row fails the batch.
	err := store.InsertMany("people", []string{"id", "name"}, [][]any{
		{1, "Ana"},
		{2, "Bo"},
		{1, "Cy"},
	})
	if err == nil {
		t.Fatal("expected duplicate key to fail the batch")
	}

	_, rows, err := store.Select("people", nil)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no committed rows, got %d", len(rows))
	}
}

func TestSelectWithConditions(t *testing.T) {
	store := setupTestStore(t)

	if err := store.CreateTable(peopleTable()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	for i, name := range []string{"Ana", "Bo", "Cy"} {
		if err := store.Insert("people", []string{"id", "name"}, []any{i + 1, name}); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	_, rows, err := store.Select("people", []core.Condition{
		{Column: "id", Op: core.GreaterThanOrEqual, Value: "2"},
	})
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestUpdateAndDelete(t *testing.T) {
	store := setupTestStore(t)

	if err := store.CreateTable(peopleTable()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	for i, name := range []string{"Ana", "Bo"} {
		if err := store.Insert("people", []string{"id", "name"}, []any{i + 1, name}); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	affected, err := store.Update("people",
		[]Assignment{{Column: "name", Value: "Dee"}}, nil)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if affected != 2 {
		t.Errorf("expected 2 updated rows, got %d", affected)
	}

	affected, err = store.Delete("people", []core.Condition{
		{Column: "id", Op: core.Equals, Value: "1"},
	})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if affected != 1 {
		t.Errorf("expected 1 deleted row, got %d", affected)
	}

	_, rows, err := store.Select("people", nil)
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 remaining row, got %d", len(rows))
	}
}
