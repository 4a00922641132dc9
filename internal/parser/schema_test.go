package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tasksDDL = `CREATE TABLE public.tasks (
  id uuid NOT NULL DEFAULT uuid_generate_v4(),
  title character varying NOT NULL,
  status character varying NOT NULL DEFAULT 'pending'::character varying,
  due_date timestamp with time zone,
  CONSTRAINT tasks_pkey PRIMARY KEY (id)
);`

func TestParse_TasksScenario(t *testing.T) {
	doc := Parse(tasksDDL)

	require.Len(t, doc.Tables, 1)
	table := doc.Tables[0]
	assert.Equal(t, "tasks", table.Name)
	assert.Equal(t, []Field{
		{Name: "id", Type: "UUID", Required: true, PrimaryKey: true, Description: "Primary key"},
		{Name: "title", Type: "VARCHAR", Required: true},
		{Name: "status", Type: "VARCHAR", Required: true},
		{Name: "due_date", Type: "TIMESTAMP WITH TIME ZONE"},
	}, table.Fields)
}

func TestParse_Idempotent(t *testing.T) {
	first := Parse(tasksDDL)
	second := Parse(tasksDDL)
	assert.Equal(t, first, second)
}

func TestParse_NestedCommasStayInOneClause(t *testing.T) {
	doc := Parse(`CREATE TABLE products (
		price numeric(10,2) NOT NULL,
		status text CHECK (status IN ('a','b')),
		meta jsonb DEFAULT '{}'::jsonb,
		tags text[] DEFAULT ARRAY['x','y'],
		note varchar(255)
	);`)

	require.Len(t, doc.Tables, 1)
	fields := doc.Tables[0].Fields
	require.Len(t, fields, 5)
	assert.Equal(t, Field{Name: "price", Type: "NUMERIC", Required: true}, fields[0])
	assert.Equal(t, "TEXT", fields[1].Type)
	assert.Equal(t, "JSONB", fields[2].Type)
	assert.Equal(t, "ARRAY", fields[3].Type)
	assert.Equal(t, "VARCHAR(255)", fields[4].Type)
}

func TestParse_ConstraintsExcluded(t *testing.T) {
	doc, diags := ParseWithDiagnostics(`CREATE TABLE orders (
		user_id uuid NOT NULL,
		unique_code text,
		CONSTRAINT fk_user FOREIGN KEY (user_id) REFERENCES users(id),
		PRIMARY KEY (user_id),
		UNIQUE (unique_code),
		CHECK (unique_code <> '')
	);`)

	require.Len(t, doc.Tables, 1)
	assert.Equal(t, []string{"user_id", "unique_code"}, fieldNames(doc.Tables[0]))
	assert.Equal(t, 4, countKind(diags, DiagConstraint))
}

func TestParse_PrimaryKeyHeuristic(t *testing.T) {
	doc := Parse(`CREATE TABLE users (
		id uuid,
		code integer PRIMARY KEY,
		email text NOT NULL -- login address
	);`)

	require.Len(t, doc.Tables, 1)
	fields := doc.Tables[0].Fields
	assert.Equal(t, Field{Name: "id", Type: "UUID", Required: true, PrimaryKey: true, Description: "Primary key"}, fields[0])
	assert.Equal(t, Field{Name: "code", Type: "INTEGER", Required: true, PrimaryKey: true, Description: "Primary key"}, fields[1])
	assert.Equal(t, Field{Name: "email", Type: "TEXT", Required: true, Description: "login address"}, fields[2])
}

func TestParse_ExplicitCommentBeatsPrimaryKeyDescription(t *testing.T) {
	doc := Parse("CREATE TABLE t (id bigint -- surrogate\n);")
	require.Len(t, doc.Tables, 1)
	assert.Equal(t, "surrogate", doc.Tables[0].Fields[0].Description)
	assert.True(t, doc.Tables[0].Fields[0].Required)
}

func TestParse_OrderPreserved(t *testing.T) {
	doc := Parse(`
		CREATE TABLE A (x int, y int, z int);
		CREATE TABLE B (x int);
		CREATE TABLE C (x int, y int);
	`)
	assert.Equal(t, []string{"A", "B", "C"}, doc.TableNames())
}

func TestParse_EmptyTableElided(t *testing.T) {
	doc, diags := ParseWithDiagnostics(`CREATE TABLE empty ( CONSTRAINT c1 CHECK (1=1) );
CREATE TABLE kept (name text);`)

	assert.Equal(t, []string{"kept"}, doc.TableNames())
	require.Equal(t, 1, countKind(diags, DiagEmptyTable))
	assert.Equal(t, "empty", findKind(diags, DiagEmptyTable).Table)
}

func TestParse_NoStatements(t *testing.T) {
	for _, input := range []string{"", "   \n", "SELECT 1;", "-- CREATE TABLE x (a int);"} {
		doc, diags := ParseWithDiagnostics(input)
		assert.NotNil(t, doc.Tables, "input %q", input)
		assert.True(t, doc.Empty(), "input %q", input)
		assert.Empty(t, diags, "input %q", input)
	}
}

func TestParse_RequiredAsymmetry(t *testing.T) {
	doc := Parse(`CREATE TABLE flags (
		a boolean NOT NULL DEFAULT false,
		b boolean DEFAULT false NOT NULL,
		c boolean NULL
	);`)

	require.Len(t, doc.Tables, 1)
	fields := doc.Tables[0].Fields
	assert.True(t, fields[0].Required)
	assert.False(t, fields[1].Required)
	assert.False(t, fields[2].Required)
}

func TestParse_NotNullInsideCheckIsIgnored(t *testing.T) {
	doc := Parse(`CREATE TABLE t (v text CHECK (v IS NOT NULL));`)
	require.Len(t, doc.Tables, 1)
	assert.False(t, doc.Tables[0].Fields[0].Required)
}

func TestParse_IfNotExistsAndQuotedNames(t *testing.T) {
	doc := Parse(`CREATE TABLE IF NOT EXISTS "Audit Log" (
		"Event Id" bigint NOT NULL,
		"say ""hi""" text
	);
	create table if not exists app."Users" (name text);`)

	assert.Equal(t, []string{"Audit Log", "Users"}, doc.TableNames())
	assert.Equal(t, []string{"Event Id", `say "hi"`}, fieldNames(doc.Tables[0]))
	assert.Equal(t, "BIGINT", doc.Tables[0].Fields[0].Type)
}

func TestParse_CommentAfterComma(t *testing.T) {
	doc := Parse(`CREATE TABLE notes (
		-- this line stands alone
		body text NOT NULL, -- the note body
		author text -- who wrote it
	);`)

	require.Len(t, doc.Tables, 1)
	fields := doc.Tables[0].Fields
	require.Len(t, fields, 2)
	assert.Equal(t, "the note body", fields[0].Description)
	assert.Equal(t, "who wrote it", fields[1].Description)
}

func TestParse_QuotesAndCommentsDoNotConfuseDepth(t *testing.T) {
	doc := Parse(`CREATE TABLE tricky (
		label text DEFAULT 'a), b (',
		other text /* , not a split ) */ NOT NULL,
		last int -- trailing ) , (
	);
	CREATE TABLE after (x int);`)

	assert.Equal(t, []string{"tricky", "after"}, doc.TableNames())
	assert.Equal(t, []string{"label", "other", "last"}, fieldNames(doc.Tables[0]))
	assert.True(t, doc.Tables[0].Fields[1].Required)
}

func TestParseWithDiagnostics_StatementProblems(t *testing.T) {
	input := `CREATE TABLE no_semi (a int)
CREATE TABLE ok (a int);
CREATE TABLE AS SELECT 1;
CREATE TABLE broken (a int,
	b int;`

	doc, diags := ParseWithDiagnostics(input)

	assert.Equal(t, []string{"ok"}, doc.TableNames())
	semi := findKind(diags, DiagNoSemicolon)
	require.NotNil(t, semi)
	assert.Equal(t, "no_semi", semi.Table)
	assert.Equal(t, 1, semi.Line)

	malformed := findKind(diags, DiagMalformed)
	require.NotNil(t, malformed)
	assert.Equal(t, 3, malformed.Line)

	unterminated := findKind(diags, DiagUnterminated)
	require.NotNil(t, unterminated)
	assert.Equal(t, "broken", unterminated.Table)
	assert.Equal(t, 4, unterminated.Line)
}

func TestParseWithDiagnostics_UnrecognizedClause(t *testing.T) {
	doc, diags := ParseWithDiagnostics(`CREATE TABLE t (a int, lonely, 'x' text);`)

	require.Len(t, doc.Tables, 1)
	assert.Equal(t, []string{"a"}, fieldNames(doc.Tables[0]))
	assert.Equal(t, 2, countKind(diags, DiagUnrecognized))
}

func TestNormalizeType(t *testing.T) {
	cases := map[string]string{
		"character varying(120)":       "VARCHAR(120)",
		"VARCHAR ( 8 )":                "VARCHAR(8)",
		"character varying":            "VARCHAR",
		"varchar":                      "VARCHAR",
		"integer[]":                    "ARRAY",
		"text ARRAY":                   "ARRAY",
		"jsonb":                        "JSONB",
		"timestamp with time zone":     "TIMESTAMP WITH TIME ZONE",
		"timestamp  without time zone": "TIMESTAMP",
		"timestamp(3)":                 "TIMESTAMP",
		"bigint":                       "BIGINT",
		"boolean":                      "BOOLEAN",
		"uuid":                         "UUID",
		"numeric(12, 4)":               "NUMERIC",
		"text":                         "TEXT",
		"double   precision":           "DOUBLE PRECISION",
		"decimal(10,2)":                "DECIMAL",
		"int4":                         "INT4",
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeType(raw), "raw type %q", raw)
	}
}

func TestDocumentLookups(t *testing.T) {
	doc := Parse(tasksDDL + "\nCREATE TABLE Tags (label text NOT NULL);")

	assert.False(t, doc.Empty())
	assert.Equal(t, 5, doc.FieldCount())

	table, ok := doc.Table("TASKS")
	require.True(t, ok)
	field, ok := table.Field("Title")
	require.True(t, ok)
	assert.Equal(t, "VARCHAR", field.Type)

	_, ok = doc.Table("missing")
	assert.False(t, ok)

	idx := NewIndexedDocument(doc)
	assert.True(t, idx.HasTable("tags"))
	assert.True(t, idx.HasField("Tags", "LABEL"))
	assert.False(t, idx.HasField("tags", "nope"))
	got, ok := idx.GetField("tasks", "due_date")
	require.True(t, ok)
	assert.False(t, got.Required)
}

func fieldNames(t Table) []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

func countKind(diags []Diagnostic, kind DiagnosticKind) int {
	n := 0
	for _, d := range diags {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

func findKind(diags []Diagnostic, kind DiagnosticKind) *Diagnostic {
	for i := range diags {
		if diags[i].Kind == kind {
			return &diags[i]
		}
	}
	return nil
}
