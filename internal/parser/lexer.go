package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// ddlLexer splits PostgreSQL DDL into tokens. Rules are tried in order and the
// trailing Other rule accepts any rune, so lexing arbitrary text cannot fail.
var ddlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `--[^\n]*`},
	{Name: "BlockComment", Pattern: `/\*(?:[^*]|\*+[^*/])*\*+/`},
	{Name: "String", Pattern: `[eE]?'(?:[^']|'')*'`},
	{Name: "QuotedIdent", Pattern: `"(?:[^"]|"")*"`},
	{Name: "DollarString", Pattern: `\$\$(?:[^$]|\$[^$])*\$\$`},
	{Name: "Number", Pattern: `[0-9]+(?:\.[0-9]+)?(?:[eE][-+]?[0-9]+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_$]*`},
	{Name: "Cast", Pattern: `::`},
	{Name: "Punct", Pattern: `[(),;.\[\]]`},
	{Name: "Operator", Pattern: `[-+*/<>=!~^%&|:@#?$]`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Other", Pattern: `.`},
})

type tokenKind int

const (
	tokOther tokenKind = iota
	tokIdent
	tokQuotedIdent
	tokString
	tokNumber
	tokPunct
	tokOperator
	tokComment
	tokSpace
)

var kindByType = func() map[lexer.TokenType]tokenKind {
	names := map[string]tokenKind{
		"Comment":      tokComment,
		"BlockComment": tokSpace,
		"String":       tokString,
		"QuotedIdent":  tokQuotedIdent,
		"DollarString": tokString,
		"Number":       tokNumber,
		"Ident":        tokIdent,
		"Cast":         tokOperator,
		"Punct":        tokPunct,
		"Operator":     tokOperator,
		"Whitespace":   tokSpace,
		"Other":        tokOther,
	}
	kinds := make(map[lexer.TokenType]tokenKind, len(names))
	for name, typ := range ddlLexer.Symbols() {
		if kind, ok := names[name]; ok {
			kinds[typ] = kind
		}
	}
	return kinds
}()

type token struct {
	kind   tokenKind
	text   string
	offset int
	line   int
	column int
}

func (t token) end() int { return t.offset + len(t.text) }

// is reports whether t is the bare keyword kw, ignoring case.
func (t token) is(kw string) bool {
	return t.kind == tokIdent && strings.EqualFold(t.text, kw)
}

func (t token) isPunct(p string) bool {
	return t.kind == tokPunct && t.text == p
}

// trivia tokens never influence structure: whitespace and comments.
func (t token) trivia() bool {
	return t.kind == tokSpace || t.kind == tokComment
}

func tokenize(sql string) ([]token, error) {
	lex, err := ddlLexer.LexString("", sql)
	if err != nil {
		return nil, err
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}

	tokens := make([]token, 0, len(raw))
	for _, t := range raw {
		if t.EOF() {
			break
		}
		tokens = append(tokens, token{
			kind:   kindByType[t.Type],
			text:   t.Value,
			offset: t.Pos.Offset,
			line:   t.Pos.Line,
			column: t.Pos.Column,
		})
	}
	return tokens, nil
}

// identValue returns the identifier a token names. Quoted identifiers are
// unquoted with "" collapsed to ".
func identValue(t token) (string, bool) {
	switch t.kind {
	case tokIdent:
		return t.text, true
	case tokQuotedIdent:
		inner := t.text[1 : len(t.text)-1]
		return strings.ReplaceAll(inner, `""`, `"`), inner != ""
	default:
		return "", false
	}
}
