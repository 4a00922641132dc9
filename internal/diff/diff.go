// Package diff compares two parsed schemas.
package diff

import (
	"strings"

	"github.com/Rana718/ddlview/internal/parser"
)

type FieldChange struct {
	Name string       `json:"name"`
	Old  parser.Field `json:"old"`
	New  parser.Field `json:"new"`
}

type TableDiff struct {
	Name          string         `json:"name"`
	AddedFields   []parser.Field `json:"added_fields,omitempty"`
	RemovedFields []parser.Field `json:"removed_fields,omitempty"`
	ChangedFields []FieldChange  `json:"changed_fields,omitempty"`
}

func (t TableDiff) Empty() bool {
	return len(t.AddedFields) == 0 && len(t.RemovedFields) == 0 && len(t.ChangedFields) == 0
}

type Result struct {
	AddedTables    []parser.Table `json:"added_tables,omitempty"`
	RemovedTables  []parser.Table `json:"removed_tables,omitempty"`
	ModifiedTables []TableDiff    `json:"modified_tables,omitempty"`
}

func (r Result) Empty() bool {
	return len(r.AddedTables) == 0 && len(r.RemovedTables) == 0 && len(r.ModifiedTables) == 0
}

// Compare reports how newDoc differs from oldDoc. Tables and fields are
// matched by name, ignoring case; when a name repeats only the first
// occurrence takes part.
func Compare(oldDoc, newDoc parser.Document) Result {
	var result Result
	oldIdx := parser.NewIndexedDocument(oldDoc)
	newIdx := parser.NewIndexedDocument(newDoc)

	seen := make(map[string]bool, len(newDoc.Tables))
	for _, table := range newDoc.Tables {
		key := strings.ToLower(table.Name)
		if seen[key] {
			continue
		}
		seen[key] = true

		oldTable, ok := oldIdx.GetTable(table.Name)
		if !ok {
			result.AddedTables = append(result.AddedTables, table)
			continue
		}
		if td := compareTables(oldTable, table); !td.Empty() {
			result.ModifiedTables = append(result.ModifiedTables, td)
		}
	}

	for _, table := range oldDoc.Tables {
		if !newIdx.HasTable(table.Name) {
			result.RemovedTables = append(result.RemovedTables, table)
		}
	}
	return result
}

func compareTables(oldTable, newTable parser.Table) TableDiff {
	td := TableDiff{Name: newTable.Name}

	oldFields := indexFields(oldTable)
	newFields := indexFields(newTable)

	seen := make(map[string]bool, len(newTable.Fields))
	for _, field := range newTable.Fields {
		key := strings.ToLower(field.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		prev, ok := oldFields[key]
		switch {
		case !ok:
			td.AddedFields = append(td.AddedFields, field)
		case prev != field:
			td.ChangedFields = append(td.ChangedFields, FieldChange{Name: field.Name, Old: prev, New: field})
		}
	}

	clear(seen)
	for _, field := range oldTable.Fields {
		key := strings.ToLower(field.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, ok := newFields[key]; !ok {
			td.RemovedFields = append(td.RemovedFields, field)
		}
	}
	return td
}

func indexFields(table parser.Table) map[string]parser.Field {
	fields := make(map[string]parser.Field, len(table.Fields))
	for _, f := range table.Fields {
		key := strings.ToLower(f.Name)
		if _, ok := fields[key]; !ok {
			fields[key] = f
		}
	}
	return fields
}
