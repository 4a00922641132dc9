package parser

import "strings"

// columnKeywords end the type portion of a column definition.
var columnKeywords = map[string]bool{
	"NOT": true, "NULL": true, "DEFAULT": true, "PRIMARY": true,
	"REFERENCES": true, "UNIQUE": true, "CHECK": true, "CONSTRAINT": true,
	"COLLATE": true, "GENERATED": true, "STORAGE": true, "COMPRESSION": true,
}

const primaryKeyDescription = "Primary key"

func isTableConstraint(tokens []token) bool {
	first := tokens[0]
	switch {
	case first.is("CONSTRAINT"), first.is("UNIQUE"), first.is("CHECK"):
		return true
	case first.is("PRIMARY"), first.is("FOREIGN"):
		return len(tokens) > 1 && tokens[1].is("KEY")
	}
	return false
}

// typeEnd returns the index one past the last token of the column type that
// starts at tokens[start].
func typeEnd(tokens []token, start int) int {
	depth := 0
	i := start
	for ; i < len(tokens); i++ {
		t := tokens[i]
		if depth > 0 {
			switch {
			case t.isPunct("("), t.isPunct("["):
				depth++
			case t.isPunct(")"), t.isPunct("]"):
				depth--
			}
			continue
		}

		switch {
		case t.kind == tokIdent:
			if columnKeywords[strings.ToUpper(t.text)] {
				return i
			}
		case t.kind == tokQuotedIdent, t.isPunct("."):
		case t.isPunct("("), t.isPunct("["):
			depth++
		default:
			return i
		}
	}
	return i
}

// phraseAt returns the index of the first depth-0 occurrence of the keyword
// sequence, or -1.
func phraseAt(tokens []token, words ...string) int {
	depth := 0
	for i, t := range tokens {
		switch {
		case t.isPunct("("), t.isPunct("["):
			depth++
			continue
		case t.isPunct(")"), t.isPunct("]"):
			depth--
			continue
		}
		if depth != 0 || i+len(words) > len(tokens) {
			continue
		}
		match := true
		for k, w := range words {
			if !tokens[i+k].is(w) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// classifyClause turns a column clause into a Field. Table constraints and
// clauses without a name and type are reported and skipped.
func (s *parseState) classifyClause(table string, c clause) (Field, bool) {
	if isTableConstraint(c.tokens) {
		s.report(DiagConstraint, table, c.first(), "table constraint skipped: "+c.text)
		return Field{}, false
	}

	name, ok := identValue(c.first())
	if !ok {
		s.report(DiagUnrecognized, table, c.first(), "clause does not start with a column name: "+c.text)
		return Field{}, false
	}
	end := typeEnd(c.tokens, 1)
	if end <= 1 {
		s.report(DiagUnrecognized, table, c.first(), "column "+name+" has no type")
		return Field{}, false
	}

	rawType := s.src[c.tokens[1].offset:c.tokens[end-1].end()]
	field := Field{
		Name:        name,
		Type:        NormalizeType(rawType),
		Description: c.comment,
	}

	// NOT NULL only counts when no DEFAULT precedes it in the clause.
	if notNull := phraseAt(c.tokens, "NOT", "NULL"); notNull >= 0 {
		field.Required = phraseAt(c.tokens[1:notNull], "DEFAULT") < 0
	}

	if name == "id" || phraseAt(c.tokens, "PRIMARY", "KEY") >= 0 {
		field.PrimaryKey = true
		field.Required = true
		if field.Description == "" {
			field.Description = primaryKeyDescription
		}
	}
	return field, true
}
