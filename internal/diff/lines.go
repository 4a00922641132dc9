package diff

import (
	"sort"
	"strings"

	"github.com/Rana718/ddlview/internal/parser"
	"github.com/Rana718/ddlview/internal/sqlgen"
)

type Op byte

const (
	Equal  Op = ' '
	Delete Op = '-'
	Insert Op = '+'
)

type Line struct {
	Op   Op
	Text string
}

func (l Line) String() string { return string(l.Op) + l.Text }

// Lines returns an LCS line diff turning a into b. Lines compare equal when
// they match after trimming surrounding whitespace.
func Lines(a, b []string) []Line {
	dp := findLCS(a, b)
	i, j := len(a), len(b)

	var out []Line
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && sameLine(a[i-1], b[j-1]):
			out = append(out, Line{Op: Equal, Text: b[j-1]})
			i--
			j--
		case i > 0 && (j == 0 || dp[i-1][j] >= dp[i][j-1]):
			out = append(out, Line{Op: Delete, Text: a[i-1]})
			i--
		default:
			out = append(out, Line{Op: Insert, Text: b[j-1]})
			j--
		}
	}

	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

// SQL diffs the generated DDL of two documents, tables sorted by name.
func SQL(oldDoc, newDoc parser.Document) []Line {
	return Lines(sqlLines(oldDoc), sqlLines(newDoc))
}

// Changed reports whether any line was inserted or deleted.
func Changed(lines []Line) bool {
	for _, l := range lines {
		if l.Op != Equal {
			return true
		}
	}
	return false
}

func sqlLines(doc parser.Document) []string {
	tables := make([]parser.Table, len(doc.Tables))
	copy(tables, doc.Tables)
	sort.SliceStable(tables, func(i, j int) bool {
		return strings.ToLower(tables[i].Name) < strings.ToLower(tables[j].Name)
	})

	text := sqlgen.Document(parser.Document{Tables: tables})
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func findLCS(a, b []string) [][]int {
	m, n := len(a), len(b)
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if sameLine(a[i-1], b[j-1]) {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] > dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}
	return dp
}

func sameLine(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}
