package export

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"gopkg.in/yaml.v3"

	"github.com/Rana718/ddlview/internal/parser"
	"github.com/Rana718/ddlview/internal/sqlgen"
)

var ErrUnknownFormat = errors.New("unknown export format")

const snapshotVersion = "1.0"

// Formats lists the accepted values for Write's format argument.
var Formats = []string{"json", "yaml", "sql", "csv", "sqlite"}

// Snapshot is the envelope written by the json and yaml exporters.
type Snapshot struct {
	Timestamp string         `json:"timestamp" yaml:"timestamp"`
	Version   string         `json:"version" yaml:"version"`
	Comment   string         `json:"comment,omitempty" yaml:"comment,omitempty"`
	Tables    []parser.Table `json:"tables" yaml:"tables"`
}

// Write exports doc into exportPath and returns the path of the written file.
func Write(doc parser.Document, exportPath, format string) (string, error) {
	if doc.Empty() {
		log.Println("Warning: exporting a schema with no tables")
	}

	if err := os.MkdirAll(exportPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")

	switch format {
	case "json":
		return exportToJSON(doc, filepath.Join(exportPath, fmt.Sprintf("schema_%s.json", timestamp)))
	case "yaml", "yml":
		return exportToYAML(doc, filepath.Join(exportPath, fmt.Sprintf("schema_%s.yaml", timestamp)))
	case "sql":
		return exportToSQL(doc, filepath.Join(exportPath, fmt.Sprintf("schema_%s.sql", timestamp)))
	case "csv":
		return exportToCSV(doc, filepath.Join(exportPath, fmt.Sprintf("schema_%s.csv", timestamp)))
	case "sqlite":
		return exportToSQLite(doc, filepath.Join(exportPath, fmt.Sprintf("schema_%s.db", timestamp)))
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func newSnapshot(doc parser.Document) Snapshot {
	return Snapshot{
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
		Version:   snapshotVersion,
		Comment:   "Schema export",
		Tables:    doc.Tables,
	}
}

func exportToJSON(doc parser.Document, filePath string) (string, error) {
	jsonData, err := json.MarshalIndent(newSnapshot(doc), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}
	if err := os.WriteFile(filePath, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filePath, nil
}

func exportToYAML(doc parser.Document, filePath string) (string, error) {
	yamlData, err := yaml.Marshal(newSnapshot(doc))
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}
	if err := os.WriteFile(filePath, yamlData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filePath, nil
}

func exportToSQL(doc parser.Document, filePath string) (string, error) {
	content := sqlgen.Document(doc)
	if content != "" {
		content += "\n"
	}
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return filePath, nil
}

var csvHeader = []string{"table", "field", "type", "required", "primary_key", "description"}

func exportToCSV(doc parser.Document, filePath string) (string, error) {
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, table := range doc.Tables {
		for _, field := range table.Fields {
			record := []string{
				table.Name,
				field.Name,
				field.Type,
				strconv.FormatBool(field.Required),
				strconv.FormatBool(field.PrimaryKey),
				field.Description,
			}
			if err := writer.Write(record); err != nil {
				return "", fmt.Errorf("failed to write CSV row for %s.%s: %w", table.Name, field.Name, err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV file: %w", err)
	}
	return filePath, nil
}

const sqliteCatalogDDL = `
CREATE TABLE schema_tables (
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	field_count INTEGER NOT NULL
);
CREATE TABLE schema_fields (
	table_name TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	type TEXT NOT NULL,
	required INTEGER NOT NULL,
	primary_key INTEGER NOT NULL,
	description TEXT
);`

func exportToSQLite(doc parser.Document, filePath string) (string, error) {
	if err := os.Remove(filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to replace existing database: %w", err)
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create SQLite database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteCatalogDDL); err != nil {
		return "", fmt.Errorf("failed to create catalog tables: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := insertCatalog(tx, doc); err != nil {
		tx.Rollback()
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit catalog: %w", err)
	}
	return filePath, nil
}

func insertCatalog(tx *sql.Tx, doc parser.Document) error {
	qb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question).RunWith(tx)

	for i, table := range doc.Tables {
		if _, err := qb.Insert("schema_tables").
			Columns("position", "name", "field_count").
			Values(i, table.Name, len(table.Fields)).
			Exec(); err != nil {
			return fmt.Errorf("failed to insert table %s: %w", table.Name, err)
		}

		for j, field := range table.Fields {
			var description any
			if field.Description != "" {
				description = field.Description
			}
			if _, err := qb.Insert("schema_fields").
				Columns("table_name", "position", "name", "type", "required", "primary_key", "description").
				Values(table.Name, j, field.Name, field.Type, field.Required, field.PrimaryKey, description).
				Exec(); err != nil {
				return fmt.Errorf("failed to insert field %s.%s: %w", table.Name, field.Name, err)
			}
		}
	}
	return nil
}
