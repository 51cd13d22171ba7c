package table

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// ExportSQLite loads the table into the SQLite database at dbPath,
// creating tableName with column affinities from the inferred codes.
// All rows go in as one transaction. Returns the number of rows
// written.
func ExportSQLite(t *Table, dbPath, tableName string) (int, error) {
	if t.Columns == nil {
		InferColumns(t, len(t.Rows))
	}
	if len(t.Columns) == 0 {
		return 0, fmt.Errorf("nothing to export: no columns")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return 0, fmt.Errorf("enable WAL mode: %w", err)
	}

	defs := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		defs[i] = fmt.Sprintf("%q %s", c.Name, c.Code.Affinity())
		marks[i] = "?"
	}
	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %q (%s)",
		tableName, strings.Join(defs, ", "))
	if _, err := db.Exec(create); err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	insert := fmt.Sprintf("INSERT INTO %q VALUES (%s)",
		tableName, strings.Join(marks, ", "))
	stmt, err := tx.Prepare(insert)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		args := make([]any, len(t.Columns))
		for i := range args {
			if i < len(row) && strings.TrimSpace(row[i]) != "" {
				args[i] = row[i]
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			return 0, fmt.Errorf("insert row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(t.Rows), nil
}

var tableNameSanitizer = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// TableNameFromPath derives a SQLite table name from a file path:
// base name without extension, non-identifier runs collapsed to "_".
func TableNameFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	name := tableNameSanitizer.ReplaceAllString(base, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return "csv_import"
	}
	return name
}
