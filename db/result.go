package db

import (
	"fmt"
	"os"
	"strings"

	"github.com/Razielxkx/Database-editor/history"
)

type ResultType int

const (
	QueryResultType ResultType = iota
	CommitResultType
	StatusResultType
)

type Result interface {
	Type() ResultType
	Display()
}

// QueryResult holds the rows a SELECT produced, already converted to their
// display values.
type QueryResult struct {
	Columns          []string
	Rows             []map[string]any
	RecordsRead      int
	ExecutionTimeSec float64
}

// CommitResult reports a completed mutation and the journal commit it
// produced.
type CommitResult struct {
	Commit           history.Commit
	Table            string
	TablesCreated    int
	TablesDeleted    int
	RecordsWritten   int
	RecordsDeleted   int
	ExecutionTimeSec float64
}

// StatusCode labels a handled, non-error outcome.
type StatusCode int

const (
	StatusMissingWhere StatusCode = iota
)

// StatusResult reports a statement that was understood and refused without
// touching any data.
type StatusResult struct {
	Code             StatusCode
	Message          string
	ExecutionTimeSec float64
}

func (result QueryResult) Type() ResultType {
	return QueryResultType
}

func (result CommitResult) Type() ResultType {
	return CommitResultType
}

func (result StatusResult) Type() ResultType {
	return StatusResultType
}

// formatDuration formats a duration in human-readable form
func formatDuration(secs float64) string {
	if secs < 0.001 {
		return "<1ms"
	} else if secs < 1 {
		ms := secs * 1000
		if ms < 10 {
			return fmt.Sprintf("%.1fms", ms)
		}
		return fmt.Sprintf("%dms", int(ms))
	} else if secs < 60 {
		if secs < 10 {
			return fmt.Sprintf("%.1fs", secs)
		}
		return fmt.Sprintf("%ds", int(secs))
	}
	mins := int(secs / 60)
	remainSecs := int(secs) % 60
	if remainSecs == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dm%ds", mins, remainSecs)
}

func (result QueryResult) ExecutionTime() string {
	return formatDuration(result.ExecutionTimeSec)
}

func (result CommitResult) ExecutionTime() string {
	return formatDuration(result.ExecutionTimeSec)
}

func (result StatusResult) ExecutionTime() string {
	return formatDuration(result.ExecutionTimeSec)
}

func (result QueryResult) Display() {
	if len(result.Rows) > 0 {
		data := make([][]string, len(result.Rows))
		for i, row := range result.Rows {
			cells := make([]string, len(result.Columns))
			for j, column := range result.Columns {
				cells[j] = formatCell(row[column])
			}
			data[i] = cells
		}
		renderTable(os.Stdout, result.Columns, data)
	}

	fmt.Printf("%d rows (%s)\n", result.RecordsRead, result.ExecutionTime())
}

func (result CommitResult) Display() {
	var parts []string
	if result.TablesCreated > 0 {
		parts = append(parts, fmt.Sprintf("%d table(s) created", result.TablesCreated))
	}
	if result.TablesDeleted > 0 {
		parts = append(parts, fmt.Sprintf("%d table(s) deleted", result.TablesDeleted))
	}
	if result.RecordsWritten > 0 {
		parts = append(parts, fmt.Sprintf("%d record(s) written", result.RecordsWritten))
	}
	if result.RecordsDeleted > 0 {
		parts = append(parts, fmt.Sprintf("%d record(s) deleted", result.RecordsDeleted))
	}

	if len(parts) == 0 {
		fmt.Printf("OK (%s)\n", result.ExecutionTime())
	} else {
		fmt.Printf("%s (%s)\n", strings.Join(parts, ", "), result.ExecutionTime())
	}
}

func (result StatusResult) Display() {
	fmt.Printf("%s (%s)\n", result.Message, result.ExecutionTime())
}

func formatCell(value any) string {
	if value == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", value)
}
