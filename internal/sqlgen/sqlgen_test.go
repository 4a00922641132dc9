package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rana718/ddlview/internal/parser"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS public.tasks (
  id uuid NOT NULL DEFAULT uuid_generate_v4(),
  title character varying(200) NOT NULL, -- short summary
  tags text[],
  budget numeric(10,2) DEFAULT 0 NOT NULL,
  due_date timestamp with time zone,
  CONSTRAINT tasks_pkey PRIMARY KEY (id)
);

CREATE TABLE "Audit ""Log""" (
  seq bigint PRIMARY KEY,
  payload jsonb NOT NULL,
  weight double precision
);`

func TestTable(t *testing.T) {
	table := parser.Table{
		Name: "users",
		Fields: []parser.Field{
			{Name: "id", Type: "UUID", Required: true, PrimaryKey: true, Description: "Primary key"},
			{Name: "email", Type: "VARCHAR(255)", Required: true},
			{Name: "bio", Type: "TEXT", Description: "free\nform"},
		},
	}

	want := `CREATE TABLE "users" (
  "id" UUID PRIMARY KEY NOT NULL, -- Primary key
  "email" VARCHAR(255) NOT NULL,
  "bio" TEXT -- free form
);`
	assert.Equal(t, want, Table(table))
}

func TestDocument_SeparatesTables(t *testing.T) {
	doc := parser.Document{Tables: []parser.Table{
		{Name: "a", Fields: []parser.Field{{Name: "x", Type: "INTEGER"}}},
		{Name: "b", Fields: []parser.Field{{Name: "y", Type: "TEXT"}}},
	}}

	assert.Equal(t, "CREATE TABLE \"a\" (\n  \"x\" INTEGER\n);\n\nCREATE TABLE \"b\" (\n  \"y\" TEXT\n);", Document(doc))
	assert.Equal(t, "", Document(parser.Document{}))
}

func TestDocument_RoundTrip(t *testing.T) {
	doc := parser.Parse(schemaSQL)
	require.Len(t, doc.Tables, 2)

	again := parser.Parse(Document(doc))
	assert.Equal(t, doc, again)
}

func TestFormatColumnType(t *testing.T) {
	assert.Equal(t, "TEXT", FormatColumnType(parser.Field{Name: "x"}))
	assert.Equal(t, "BIGINT NOT NULL", FormatColumnType(parser.Field{Type: "BIGINT", Required: true}))
}
