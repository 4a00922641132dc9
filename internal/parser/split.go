package parser

import "strings"

// clause is one comma-separated entry of a table body.
type clause struct {
	tokens  []token
	text    string
	comment string
}

func (c clause) first() token { return c.tokens[0] }

// splitClauses cuts a table body at commas outside parentheses and brackets.
// A line comment sharing a line with the last significant token before it
// belongs to the clause owning that token; other comments are dropped.
func (s *parseState) splitClauses(body []token) []clause {
	var (
		clauses  []clause
		cur      clause
		depth    int
		lastLine = -1
	)

	closeClause := func() {
		if len(cur.tokens) > 0 {
			last := cur.tokens[len(cur.tokens)-1]
			cur.text = s.src[cur.tokens[0].offset:last.end()]
			clauses = append(clauses, cur)
		}
		cur = clause{}
	}

	for _, t := range body {
		switch {
		case t.kind == tokSpace:
			continue
		case t.kind == tokComment:
			if t.line != lastLine {
				continue
			}
			note := commentText(t.text)
			if len(cur.tokens) > 0 {
				if cur.comment == "" {
					cur.comment = note
				}
			} else if n := len(clauses); n > 0 && clauses[n-1].comment == "" {
				clauses[n-1].comment = note
			}
			continue
		}

		lastLine = t.line
		switch {
		case t.isPunct("("), t.isPunct("["):
			depth++
		case t.isPunct(")"), t.isPunct("]"):
			if depth > 0 {
				depth--
			}
		case t.isPunct(",") && depth == 0:
			closeClause()
			continue
		}
		cur.tokens = append(cur.tokens, t)
	}
	closeClause()
	return clauses
}

func commentText(raw string) string {
	return strings.TrimSpace(strings.TrimPrefix(raw, "--"))
}
