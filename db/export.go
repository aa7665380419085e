package db

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/Razielxkx/Database-editor/core"
	"github.com/Razielxkx/Database-editor/history"
)

// ExportCSV writes a table's rows as CSV, header row first, to a local path,
// file://, or s3:// target. Cell values use their display form.
func (engine *Engine) ExportCSV(table, target string, cfg *S3Config) (int, error) {
	names, rows, err := engine.store.Select(table, nil)
	if err != nil {
		return 0, err
	}

	writer, err := openRemoteWriter(target, cfg)
	if err != nil {
		return 0, err
	}
	defer writer.Close()

	out := csv.NewWriter(writer)
	if err := out.Write(names); err != nil {
		return 0, err
	}

	for _, row := range rows {
		record := make([]string, len(row))
		for i, value := range row {
			record[i] = formatCell(core.ToDisplay(value))
		}
		if err := out.Write(record); err != nil {
			return 0, err
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// ImportCSV loads rows from a CSV source into a table. The header row names
// the target columns; every named column must exist and every data row must
// match the header width. Values are coerced against the column types before
// any write, the rows are inserted in a single transaction, and the load is
// journaled as one change. A bad row means nothing is imported.
func (engine *Engine) ImportCSV(table, source string, cfg *S3Config) (int, error) {
	columns, err := engine.tableColumns(table)
	if err != nil {
		return 0, err
	}

	reader, err := openRemoteReader(source, cfg)
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	in := csv.NewReader(reader)
	header, err := in.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	targets := make([]core.Column, len(header))
	for i, name := range header {
		column, ok := findColumn(columns, name)
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
		}
		targets[i] = column
	}

	var rows [][]any
	for {
		record, err := in.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if len(record) != len(header) {
			return 0, fmt.Errorf("%w: header has %d columns, row has %d",
				ErrColumnCountMismatch, len(header), len(record))
		}

		values := make([]any, len(record))
		for i, cell := range record {
			value, err := core.ToStorage(cell, targets[i].Type)
			if err != nil {
				return 0, err
			}
			values[i] = value
		}
		rows = append(rows, values)
	}

	if len(rows) == 0 {
		return 0, nil
	}

	if err := engine.store.InsertMany(table, header, rows); err != nil {
		return 0, err
	}

	err = engine.journal.Record(history.Entry{
		Kind:      history.KindInsert,
		Table:     table,
		Statement: fmt.Sprintf("IMPORT %s FROM %s", table, source),
		Rows:      int64(len(rows)),
		When:      time.Now(),
	}, engine.identity)
	if err != nil {
		return len(rows), err
	}
	return len(rows), nil
}
