package parser

import (
	"fmt"
	"strings"
)

// Document is the parsed schema: tables in source order.
type Document struct {
	Tables []Table `json:"tables" yaml:"tables"`
}

type Table struct {
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Field is one column definition. PrimaryKey implies Required.
type Field struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Required    bool   `json:"required" yaml:"required"`
	PrimaryKey  bool   `json:"primaryKey,omitempty" yaml:"primary_key,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type DiagnosticKind string

const (
	DiagLexError     DiagnosticKind = "lex_error"
	DiagMalformed    DiagnosticKind = "malformed_statement"
	DiagUnterminated DiagnosticKind = "unterminated_statement"
	DiagNoSemicolon  DiagnosticKind = "missing_semicolon"
	DiagConstraint   DiagnosticKind = "constraint_clause"
	DiagUnrecognized DiagnosticKind = "unrecognized_clause"
	DiagEmptyTable   DiagnosticKind = "empty_table"
)

// Diagnostic describes input the parser skipped. Line and Column are 1-based.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	Table   string         `json:"table,omitempty" yaml:"table,omitempty"`
	Line    int            `json:"line" yaml:"line"`
	Column  int            `json:"column" yaml:"column"`
	Text    string         `json:"text,omitempty" yaml:"text,omitempty"`
	Message string         `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string {
	msg := string(d.Kind)
	if d.Line > 0 {
		msg += fmt.Sprintf(" at %d:%d", d.Line, d.Column)
	}
	if d.Table != "" {
		msg += " in " + d.Table
	}
	return msg + ": " + d.Message
}

func (k DiagnosticKind) String() string { return string(k) }

func (d Document) Empty() bool { return len(d.Tables) == 0 }

func (d Document) FieldCount() int {
	n := 0
	for _, t := range d.Tables {
		n += len(t.Fields)
	}
	return n
}

func (d Document) TableNames() []string {
	names := make([]string, len(d.Tables))
	for i, t := range d.Tables {
		names[i] = t.Name
	}
	return names
}

// Table returns the first table whose name matches, ignoring case.
func (d Document) Table(name string) (Table, bool) {
	for _, t := range d.Tables {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return Table{}, false
}

func (t Table) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Field{}, false
}
