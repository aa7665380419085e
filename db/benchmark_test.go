package db

import (
	"fmt"
	"testing"

	"github.com/Razielxkx/Database-editor/core"
	"github.com/Razielxkx/Database-editor/history"
	"github.com/Razielxkx/Database-editor/schema"
	"github.com/Razielxkx/Database-editor/sql"
	"github.com/Razielxkx/Database-editor/storage"
)

func setupBenchmarkEngine(b *testing.B, rows int) *Engine {
	b.Helper()

	store, err := storage.OpenMemory()
	if err != nil {
		b.Fatalf("failed to open store: %v", err)
	}
	b.Cleanup(func() { store.Close() })

	journal, err := history.NewMemoryLog()
	if err != nil {
		b.Fatalf("failed to open journal: %v", err)
	}

	manager := schema.NewManager(store, journal)
	specs := []core.ColumnSpec{
		{Name: "id", TypeDesc: "int"},
		{Name: "name", TypeDesc: "varchar(100)", Nullable: true},
		{Name: "age", TypeDesc: "int", Nullable: true},
	}
	if err := manager.CreateTable("users", specs, testIdentity); err != nil {
		b.Fatalf("failed to create table: %v", err)
	}

	engine := NewEngine(store, manager, journal, testIdentity)
	for i := 1; i <= rows; i++ {
		query := fmt.Sprintf("INSERT INTO users VALUES (%d, 'User%d', %d)", i, i, 20+i%50)
		if _, err := engine.Execute(query); err != nil {
			b.Fatalf("seed insert failed: %v", err)
		}
	}
	return engine
}

func BenchmarkParsing(b *testing.B) {
	queries := []struct {
		name  string
		query string
	}{
		{"Select", "SELECT * FROM users"},
		{"SelectWhere", "SELECT * FROM users WHERE age >= 18 AND age < 40"},
		{"Insert", "INSERT INTO users (id, name, age) VALUES (1, 'Ana', 34)"},
		{"Update", "UPDATE users SET age = 35 WHERE id = 1"},
	}

	for _, query := range queries {
		b.Run(query.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := sql.NewParser(query.query).Parse(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSelect(b *testing.B) {
	engine := setupBenchmarkEngine(b, 1000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := engine.Execute("SELECT * FROM users WHERE age >= 30"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInsert(b *testing.B) {
	engine := setupBenchmarkEngine(b, 0)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		query := fmt.Sprintf("INSERT INTO users VALUES (%d, 'User%d', %d)", i+1, i+1, 20+i%50)
		if _, err := engine.Execute(query); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkUpdate(b *testing.B) {
	engine := setupBenchmarkEngine(b, 100)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := engine.Execute("UPDATE users SET age = 40 WHERE id = 50"); err != nil {
			b.Fatal(err)
		}
	}
}
