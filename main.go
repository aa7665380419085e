package dbeditor

import (
	"github.com/Razielxkx/Database-editor/core"
	"github.com/Razielxkx/Database-editor/db"
	"github.com/Razielxkx/Database-editor/history"
	"github.com/Razielxkx/Database-editor/schema"
	"github.com/Razielxkx/Database-editor/storage"
)

// Instance bundles an open store with its change journal.
type Instance struct {
	Store   *storage.Store
	Schema  *schema.Manager
	Journal *history.Log
}

// Open opens the database at dbPath (empty for in-memory) and the journal at
// journalDir (empty for in-memory).
func Open(dbPath, journalDir string) (*Instance, error) {
	var (
		store *storage.Store
		err   error
	)
	if dbPath == "" {
		store, err = storage.OpenMemory()
	} else {
		store, err = storage.Open(dbPath)
	}
	if err != nil {
		return nil, err
	}

	var journal *history.Log
	if journalDir == "" {
		journal, err = history.NewMemoryLog()
	} else {
		journal, err = history.NewFileLog(journalDir)
	}
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Instance{
		Store:   store,
		Schema:  schema.NewManager(store, journal),
		Journal: journal,
	}, nil
}

// Engine returns a query engine whose changes are journaled under identity.
func (instance *Instance) Engine(identity core.Identity) *db.Engine {
	return db.NewEngine(instance.Store, instance.Schema, instance.Journal, identity)
}

func (instance *Instance) Close() error {
	return instance.Store.Close()
}
