package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Razielxkx/Database-editor/core"
	"github.com/Razielxkx/Database-editor/history"
	"github.com/Razielxkx/Database-editor/storage"
)

var (
	ErrUnsupportedType = errors.New("unsupported column type")
	ErrSchemaConflict  = errors.New("table already exists")
	ErrNotFound        = errors.New("table not found")
)

// Manager translates user-facing column descriptors into storage columns and
// drives table lifecycle against the store, journaling every schema change.
type Manager struct {
	store   *storage.Store
	journal *history.Log
}

func NewManager(store *storage.Store, journal *history.Log) *Manager {
	return &Manager{store: store, journal: journal}
}

// MapType resolves a column type descriptor such as "int", "money" or
// "varchar(100)" into a storage type and optional length. The length suffix
// is only meaningful on the text aliases.
func MapType(descriptor string) (core.StorageType, int, error) {
	name := strings.ToLower(strings.TrimSpace(descriptor))
	length := 0

	if open := strings.Index(name, "("); open >= 0 {
		if !strings.HasSuffix(name, ")") {
			return 0, 0, fmt.Errorf("%w: %s", ErrUnsupportedType, descriptor)
		}
		parsed, err := strconv.Atoi(strings.TrimSpace(name[open+1 : len(name)-1]))
		if err != nil || parsed <= 0 {
			return 0, 0, fmt.Errorf("%w: %s", ErrUnsupportedType, descriptor)
		}
		length = parsed
		name = strings.TrimSpace(name[:open])
	}

	switch name {
	case "str", "varchar", "nvarchar", "string":
		return core.TextType, length, nil
	}

	// Only the text aliases take a length.
	if length > 0 {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnsupportedType, descriptor)
	}

	switch name {
	case "int", "integer":
		return core.IntegerType, 0, nil
	case "bool", "boolean":
		return core.BooleanType, 0, nil
	case "decimal", "money":
		return core.DecimalType, 0, nil
	case "datetime":
		return core.DateTimeType, 0, nil
	default:
		return 0, 0, fmt.Errorf("%w: %s", ErrUnsupportedType, descriptor)
	}
}

// ValidType reports whether a descriptor resolves to a storage type.
func ValidType(descriptor string) bool {
	_, _, err := MapType(descriptor)
	return err == nil
}

// CreateTable creates a table from the given column specs. A column named
// "id" becomes the primary key. Nothing is written when any spec fails to
// resolve.
func (manager *Manager) CreateTable(name string, specs []core.ColumnSpec, identity core.Identity) error {
	exists, err := manager.store.HasTable(name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrSchemaConflict, name)
	}

	columns := make([]core.Column, 0, len(specs))
	seen := make(map[string]bool)
	for _, spec := range specs {
		if seen[spec.Name] {
			return fmt.Errorf("%w: duplicate column %s", ErrSchemaConflict, spec.Name)
		}
		seen[spec.Name] = true

		columnType, length, err := MapType(spec.TypeDesc)
		if err != nil {
			return err
		}
		columns = append(columns, core.Column{
			Name:       spec.Name,
			Type:       columnType,
			Length:     length,
			PrimaryKey: spec.Name == "id",
			Nullable:   spec.Nullable && spec.Name != "id",
		})
	}

	table := core.Table{Name: name, Columns: columns}
	if err := manager.store.CreateTable(table); err != nil {
		return err
	}

	return manager.journal.Record(history.Entry{
		Kind:  history.KindCreateTable,
		Table: name,
		When:  time.Now(),
	}, identity)
}

// DropTable removes a table and journals the removal.
func (manager *Manager) DropTable(name string, identity core.Identity) error {
	exists, err := manager.store.HasTable(name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	if err := manager.store.DropTable(name); err != nil {
		return err
	}

	return manager.journal.Record(history.Entry{
		Kind:  history.KindDropTable,
		Table: name,
		When:  time.Now(),
	}, identity)
}

// ListTables returns the current table names.
func (manager *Manager) ListTables() ([]string, error) {
	return manager.store.Tables()
}

// ListColumns describes a table's columns in declared order.
func (manager *Manager) ListColumns(name string) ([]core.Column, error) {
	exists, err := manager.store.HasTable(name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return manager.store.Columns(name)
}
