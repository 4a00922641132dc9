package parser

import "strings"

// parseState carries the input text and the diagnostics of a single parse.
type parseState struct {
	src   string
	diags []Diagnostic
}

func (s *parseState) report(kind DiagnosticKind, table string, at token, message string) {
	s.diags = append(s.diags, Diagnostic{
		Kind:    kind,
		Table:   table,
		Line:    at.line,
		Column:  at.column,
		Text:    excerpt(s.src, at),
		Message: message,
	})
}

// excerpt returns the source line a token starts on.
func excerpt(src string, at token) string {
	if at.offset < 0 || at.offset > len(src) {
		return ""
	}
	start := strings.LastIndexByte(src[:at.offset], '\n') + 1
	end := strings.IndexByte(src[at.offset:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += at.offset
	}
	return strings.TrimSpace(src[start:end])
}

// Parse converts PostgreSQL CREATE TABLE statements into a Document. It never
// fails: anything it cannot recognize is left out.
func Parse(sql string) Document {
	doc, _ := ParseWithDiagnostics(sql)
	return doc
}

// ParseWithDiagnostics is Parse plus a report of every skipped statement and
// clause.
func ParseWithDiagnostics(sql string) (Document, []Diagnostic) {
	doc := Document{Tables: []Table{}}
	s := &parseState{src: sql}

	tokens, err := tokenize(sql)
	if err != nil {
		return doc, []Diagnostic{{Kind: DiagLexError, Line: 1, Column: 1, Message: err.Error()}}
	}

	for _, stmt := range s.extractStatements(tokens) {
		table := Table{Name: stmt.name}
		for _, c := range s.splitClauses(stmt.body) {
			if field, ok := s.classifyClause(stmt.name, c); ok {
				table.Fields = append(table.Fields, field)
			}
		}
		if len(table.Fields) == 0 {
			s.diags = append(s.diags, Diagnostic{
				Kind:    DiagEmptyTable,
				Table:   stmt.name,
				Line:    stmt.line,
				Column:  1,
				Message: "table has no recognizable columns",
			})
			continue
		}
		doc.Tables = append(doc.Tables, table)
	}
	return doc, s.diags
}
