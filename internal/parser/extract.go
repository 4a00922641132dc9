package parser

// statement is one CREATE TABLE recognized in the input. body holds every
// token between the outer parentheses, trivia included.
type statement struct {
	name string
	line int
	body []token
}

// significant returns the indexes of all non-trivia tokens.
func significant(tokens []token) []int {
	idx := make([]int, 0, len(tokens))
	for i, t := range tokens {
		if !t.trivia() {
			idx = append(idx, i)
		}
	}
	return idx
}

// extractStatements finds every complete CREATE TABLE statement in source
// order. Anything that is not a CREATE TABLE is ignored without comment;
// CREATE TABLE headers that cannot be completed are reported.
func (s *parseState) extractStatements(tokens []token) []statement {
	sig := significant(tokens)
	at := func(k int) token {
		if k < len(sig) {
			return tokens[sig[k]]
		}
		return token{}
	}

	var stmts []statement
	for i := 0; i+1 < len(sig); {
		create := at(i)
		if !create.is("CREATE") || !at(i+1).is("TABLE") {
			i++
			continue
		}
		stmt, next, ok := s.createTable(tokens, sig, i+2, create)
		if ok {
			stmts = append(stmts, stmt)
		}
		i = next
	}
	return stmts
}

// createTable parses a CREATE TABLE header starting at significant index j
// (just past TABLE). It returns the index where scanning should resume.
func (s *parseState) createTable(tokens []token, sig []int, j int, create token) (statement, int, bool) {
	at := func(k int) token {
		if k < len(sig) {
			return tokens[sig[k]]
		}
		return token{}
	}

	if at(j).is("IF") && at(j+1).is("NOT") && at(j+2).is("EXISTS") {
		j += 3
	}

	name, ok := identValue(at(j))
	if !ok {
		s.report(DiagMalformed, "", create, "CREATE TABLE without a table name")
		return statement{}, j, false
	}
	j++
	if at(j).isPunct(".") {
		qualified, ok := identValue(at(j + 1))
		if !ok {
			s.report(DiagMalformed, name, create, "schema qualifier without a table name")
			return statement{}, j, false
		}
		name = qualified
		j += 2
	}

	if !at(j).isPunct("(") {
		s.report(DiagMalformed, name, create, "CREATE TABLE without a column list")
		return statement{}, j, false
	}
	open := j

	depth, closing := 0, -1
	for k := open; k < len(sig); k++ {
		t := tokens[sig[k]]
		switch {
		case t.isPunct("("):
			depth++
		case t.isPunct(")"):
			depth--
		}
		if depth == 0 {
			closing = k
			break
		}
	}
	if closing < 0 {
		s.report(DiagUnterminated, name, create, "no closing parenthesis for column list")
		return statement{}, open + 1, false
	}
	if !at(closing + 1).isPunct(";") {
		s.report(DiagNoSemicolon, name, create, "statement is not terminated by ';'")
		return statement{}, closing + 1, false
	}

	return statement{
		name: name,
		line: create.line,
		body: tokens[sig[open]+1 : sig[closing]],
	}, closing + 2, true
}
