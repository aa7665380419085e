package history

import (
	"testing"
	"time"

	"github.com/Razielxkx/Database-editor/core"
)

var testIdentity = core.Identity{Name: "Test User", Email: "test@example.com"}

func TestEmptyLogHead(t *testing.T) {
	log, err := NewMemoryLog()
	if err != nil {
		t.Fatalf("failed to open log: %v", err)
	}

	head := log.Head()
	if head.Id != "" {
		t.Errorf("expected empty head, got %+v", head)
	}
}

func TestRecordAndHead(t *testing.T) {
	log, err := NewMemoryLog()
	if err != nil {
		t.Fatalf("failed to open log: %v", err)
	}

	entry := Entry{
		Kind:      KindInsert,
		Table:     "people",
		Statement: "INSERT INTO people VALUES (1, 'Ana')",
		Rows:      1,
		When:      time.Now(),
	}
	if err := log.Record(entry, testIdentity); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	head := log.Head()
	if head.Id == "" {
		t.Fatal("expected a head commit after recording")
	}
	if head.Author != "Test User <test@example.com>" {
		t.Errorf("unexpected author: %s", head.Author)
	}
}

func TestEntriesByTable(t *testing.T) {
	log, err := NewMemoryLog()
	if err != nil {
		t.Fatalf("failed to open log: %v", err)
	}

	base := time.Now()
	records := []Entry{
		{Kind: KindCreateTable, Table: "people", When: base},
		{Kind: KindInsert, Table: "people", Statement: "INSERT ...", Rows: 1, When: base.Add(time.Millisecond)},
		{Kind: KindCreateTable, Table: "orders", When: base.Add(2 * time.Millisecond)},
	}
	for _, entry := range records {
		if err := log.Record(entry, testIdentity); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	entries, err := log.Entries("people")
	if err != nil {
		t.Fatalf("entries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 people entries, got %d", len(entries))
	}
	if entries[0].Kind != KindCreateTable || entries[1].Kind != KindInsert {
		t.Errorf("entries out of order: %+v", entries)
	}

	all, err := log.Entries("")
	if err != nil {
		t.Fatalf("entries failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
}

func TestCommitsSince(t *testing.T) {
	log, err := NewMemoryLog()
	if err != nil {
		t.Fatalf("failed to open log: %v", err)
	}

	asof := time.Now().Add(-time.Minute)
	for i := 0; i < 3; i++ {
		entry := Entry{Kind: KindDelete, Table: "people", Rows: 1, When: time.Now()}
		if err := log.Record(entry, testIdentity); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	commits := log.CommitsSince(asof)
	if len(commits) != 3 {
		t.Fatalf("expected 3 commits, got %d", len(commits))
	}
}

func TestFileLogReopen(t *testing.T) {
	dir := t.TempDir()

	log, err := NewFileLog(dir)
	if err != nil {
		t.Fatalf("failed to open log: %v", err)
	}
	entry := Entry{Kind: KindCreateTable, Table: "people", When: time.Now()}
	if err := log.Record(entry, testIdentity); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	first := log.Head()

	reopened, err := NewFileLog(dir)
	if err != nil {
		t.Fatalf("failed to reopen log: %v", err)
	}
	if reopened.Head().Id != first.Id {
		t.Errorf("expected head %s after reopen, got %s", first.Id, reopened.Head().Id)
	}
}
