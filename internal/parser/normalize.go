package parser

import (
	"regexp"
	"strings"
)

type typeRule struct {
	pattern *regexp.Regexp
	label   string
}

// typeRules is consulted in order; the first match wins. Labels may refer to
// submatches with $n.
var typeRules = []typeRule{
	{regexp.MustCompile(`(?i)(?:character\s+varying|varchar)\s*\(\s*(\d+)\s*\)`), "VARCHAR($1)"},
	{regexp.MustCompile(`(?i)character\s+varying`), "VARCHAR"},
	{regexp.MustCompile(`(?i)\[[^\]]*\]|\barray\b`), "ARRAY"},
	{regexp.MustCompile(`(?i)jsonb`), "JSONB"},
	{regexp.MustCompile(`(?i)timestamp\s+with\s+time\s+zone`), "TIMESTAMP WITH TIME ZONE"},
	{regexp.MustCompile(`(?i)timestamp`), "TIMESTAMP"},
	{regexp.MustCompile(`(?i)bigint`), "BIGINT"},
	{regexp.MustCompile(`(?i)boolean`), "BOOLEAN"},
	{regexp.MustCompile(`(?i)uuid`), "UUID"},
	{regexp.MustCompile(`(?i)numeric`), "NUMERIC"},
	{regexp.MustCompile(`(?i)text`), "TEXT"},
}

var paramListRegex = regexp.MustCompile(`\([^()]*\)`)

// NormalizeType maps a raw column type to its display label.
func NormalizeType(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, rule := range typeRules {
		loc := rule.pattern.FindStringSubmatchIndex(raw)
		if loc == nil {
			continue
		}
		return string(rule.pattern.ExpandString(nil, rule.label, raw, loc))
	}

	stripped := raw
	for {
		next := paramListRegex.ReplaceAllString(stripped, "")
		if next == stripped {
			break
		}
		stripped = next
	}
	return strings.ToUpper(strings.Join(strings.Fields(stripped), " "))
}
