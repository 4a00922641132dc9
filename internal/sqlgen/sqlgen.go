// Package sqlgen renders a parsed Document back into simplified PostgreSQL
// CREATE TABLE statements.
package sqlgen

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/Rana718/ddlview/internal/parser"
)

// Document renders every table, separated by a blank line.
func Document(doc parser.Document) string {
	stmts := make([]string, len(doc.Tables))
	for i, table := range doc.Tables {
		stmts[i] = Table(table)
	}
	return strings.Join(stmts, "\n\n")
}

// Table renders one CREATE TABLE statement. Descriptions become trailing
// line comments so that parsing the output yields the same table.
func Table(table parser.Table) string {
	lines := make([]string, 0, len(table.Fields)+2)
	lines = append(lines, fmt.Sprintf("CREATE TABLE %s (", pq.QuoteIdentifier(table.Name)))

	for i, field := range table.Fields {
		line := fmt.Sprintf("  %s %s", pq.QuoteIdentifier(field.Name), FormatColumnType(field))
		if i < len(table.Fields)-1 {
			line += ","
		}
		if desc := singleLine(field.Description); desc != "" {
			line += " -- " + desc
		}
		lines = append(lines, line)
	}

	lines = append(lines, ");")
	return strings.Join(lines, "\n")
}

// FormatColumnType returns the type followed by the column constraints the
// field carries.
func FormatColumnType(field parser.Field) string {
	colType := field.Type
	if colType == "" {
		colType = "TEXT"
	}
	if field.PrimaryKey {
		colType += " PRIMARY KEY"
	}
	if field.Required {
		colType += " NOT NULL"
	}
	return colType
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
