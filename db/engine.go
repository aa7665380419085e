package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/Razielxkx/Database-editor/core"
	"github.com/Razielxkx/Database-editor/history"
	"github.com/Razielxkx/Database-editor/schema"
	"github.com/Razielxkx/Database-editor/sql"
	"github.com/Razielxkx/Database-editor/storage"
)

var (
	ErrColumnCountMismatch = errors.New("column count mismatch")
	ErrColumnNotFound      = errors.New("column not found")
)

// Engine executes parsed statements against the store. Values are coerced
// to their column type before any mutating call reaches the store, so a bad
// literal leaves the table untouched.
type Engine struct {
	store    *storage.Store
	schema   *schema.Manager
	journal  *history.Log
	identity core.Identity
}

func NewEngine(store *storage.Store, manager *schema.Manager, journal *history.Log, identity core.Identity) *Engine {
	return &Engine{
		store:    store,
		schema:   manager,
		journal:  journal,
		identity: identity,
	}
}

func (engine *Engine) Execute(query string) (Result, error) {
	parser := sql.NewParser(query)
	statement, err := parser.Parse()
	if err != nil {
		return nil, err
	}

	switch statement.Type() {
	case sql.SelectStatementType:
		return engine.executeSelectStatement(statement.(sql.SelectStatement))
	case sql.InsertStatementType:
		return engine.executeInsertStatement(statement.(sql.InsertStatement), query)
	case sql.UpdateStatementType:
		return engine.executeUpdateStatement(statement.(sql.UpdateStatement), query)
	case sql.DeleteStatementType:
		return engine.executeDeleteStatement(statement.(sql.DeleteStatement), query)
	default:
		return nil, fmt.Errorf("unsupported statement type: %v", statement.Type())
	}
}

func (engine *Engine) executeSelectStatement(statement sql.SelectStatement) (QueryResult, error) {
	startTime := time.Now()

	columns, err := engine.tableColumns(statement.Table)
	if err != nil {
		return QueryResult{}, err
	}
	if err := validateConditions(statement.Where, columns); err != nil {
		return QueryResult{}, err
	}

	names, rows, err := engine.store.Select(statement.Table, statement.Where)
	if err != nil {
		return QueryResult{}, err
	}

	data := make([]map[string]any, len(rows))
	for i, row := range rows {
		record := make(map[string]any, len(names))
		for j, name := range names {
			record[name] = core.ToDisplay(row[j])
		}
		data[i] = record
	}

	return QueryResult{
		Columns:          names,
		Rows:             data,
		RecordsRead:      len(rows),
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}

func (engine *Engine) executeInsertStatement(statement sql.InsertStatement, query string) (Result, error) {
	startTime := time.Now()

	columns, err := engine.tableColumns(statement.Table)
	if err != nil {
		return nil, err
	}

	// Nil Columns means the values follow the table's declared column order.
	targets := statement.Columns
	if targets == nil {
		if len(statement.Values) != len(columns) {
			return nil, fmt.Errorf("%w: table %s has %d columns, got %d values",
				ErrColumnCountMismatch, statement.Table, len(columns), len(statement.Values))
		}
		targets = make([]string, len(columns))
		for i, column := range columns {
			targets[i] = column.Name
		}
	} else if len(targets) != len(statement.Values) {
		return nil, fmt.Errorf("%w: %d columns, %d values",
			ErrColumnCountMismatch, len(targets), len(statement.Values))
	}

	values := make([]any, len(targets))
	for i, target := range targets {
		column, ok := findColumn(columns, target)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, target)
		}
		value, err := core.ToStorage(statement.Values[i], column.Type)
		if err != nil {
			return nil, err
		}
		values[i] = value
	}

	if err := engine.store.Insert(statement.Table, targets, values); err != nil {
		return nil, err
	}

	err = engine.journal.Record(history.Entry{
		Kind:      history.KindInsert,
		Table:     statement.Table,
		Statement: query,
		Rows:      1,
		When:      time.Now(),
	}, engine.identity)
	if err != nil {
		return nil, err
	}

	return CommitResult{
		Commit:           engine.journal.Head(),
		Table:            statement.Table,
		RecordsWritten:   1,
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}

func (engine *Engine) executeUpdateStatement(statement sql.UpdateStatement, query string) (Result, error) {
	startTime := time.Now()

	columns, err := engine.tableColumns(statement.Table)
	if err != nil {
		return nil, err
	}
	if err := validateConditions(statement.Where, columns); err != nil {
		return nil, err
	}

	assignments := make([]storage.Assignment, len(statement.Assignments))
	for i, clause := range statement.Assignments {
		column, ok := findColumn(columns, clause.Column)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, clause.Column)
		}
		value, err := core.ToStorage(clause.Value, column.Type)
		if err != nil {
			return nil, err
		}
		assignments[i] = storage.Assignment{Column: clause.Column, Value: value}
	}

	affected, err := engine.store.Update(statement.Table, assignments, statement.Where)
	if err != nil {
		return nil, err
	}

	err = engine.journal.Record(history.Entry{
		Kind:      history.KindUpdate,
		Table:     statement.Table,
		Statement: query,
		Rows:      affected,
		When:      time.Now(),
	}, engine.identity)
	if err != nil {
		return nil, err
	}

	return CommitResult{
		Commit:           engine.journal.Head(),
		Table:            statement.Table,
		RecordsWritten:   int(affected),
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}

func (engine *Engine) executeDeleteStatement(statement sql.DeleteStatement, query string) (Result, error) {
	startTime := time.Now()

	// A DELETE with no WHERE clause is refused before anything is touched;
	// truncating a table must be spelled out condition by condition.
	if statement.Where == nil {
		return StatusResult{
			Code:             StatusMissingWhere,
			Message:          "missing where statement",
			ExecutionTimeSec: time.Since(startTime).Seconds(),
		}, nil
	}

	columns, err := engine.tableColumns(statement.Table)
	if err != nil {
		return nil, err
	}
	if err := validateConditions(statement.Where, columns); err != nil {
		return nil, err
	}

	affected, err := engine.store.Delete(statement.Table, statement.Where)
	if err != nil {
		return nil, err
	}

	err = engine.journal.Record(history.Entry{
		Kind:      history.KindDelete,
		Table:     statement.Table,
		Statement: query,
		Rows:      affected,
		When:      time.Now(),
	}, engine.identity)
	if err != nil {
		return nil, err
	}

	return CommitResult{
		Commit:           engine.journal.Head(),
		Table:            statement.Table,
		RecordsDeleted:   int(affected),
		ExecutionTimeSec: time.Since(startTime).Seconds(),
	}, nil
}

func (engine *Engine) tableColumns(table string) ([]core.Column, error) {
	return engine.schema.ListColumns(table)
}

// validateConditions rejects conditions that name unknown columns before any
// statement reaches the store.
func validateConditions(conditions []core.Condition, columns []core.Column) error {
	for _, condition := range conditions {
		if _, ok := findColumn(columns, condition.Column); !ok {
			return fmt.Errorf("%w: %s", ErrColumnNotFound, condition.Column)
		}
	}
	return nil
}

func findColumn(columns []core.Column, name string) (core.Column, bool) {
	for _, column := range columns {
		if column.Name == name {
			return column, true
		}
	}
	return core.Column{}, false
}
