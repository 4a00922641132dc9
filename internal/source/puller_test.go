package source

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Rana718/ddlview/internal/parser"
)

func TestRenderDDL_ParsesBack(t *testing.T) {
	tables := []*pulledTable{
		{
			name: "tasks",
			columns: []pulledColumn{
				{name: "id", dataType: "uuid", def: sql.NullString{String: "gen_random_uuid()", Valid: true}},
				{name: "title", dataType: "character varying", charLength: sql.NullInt64{Int64: 120, Valid: true},
					description: sql.NullString{String: "task\ntitle", Valid: true}},
				{name: "labels", dataType: "ARRAY", udtName: "_text", nullable: true},
				{name: "cost", dataType: "numeric", nullable: true,
					precision: sql.NullInt64{Int64: 10, Valid: true}, scale: sql.NullInt64{Int64: 2, Valid: true}},
			},
			pkName:    "tasks_pkey",
			pkColumns: []string{"id"},
		},
	}

	ddl := renderDDL("public", tables)
	assert.Contains(t, ddl, `CREATE TABLE "public"."tasks" (`)
	assert.Contains(t, ddl, `CONSTRAINT "tasks_pkey" PRIMARY KEY ("id")`)

	doc := parser.Parse(ddl)
	require.Len(t, doc.Tables, 1)
	assert.Equal(t, []parser.Field{
		{Name: "id", Type: "UUID", Required: true, PrimaryKey: true, Description: "Primary key"},
		{Name: "title", Type: "VARCHAR(120)", Required: true, Description: "task title"},
		{Name: "labels", Type: "ARRAY"},
		{Name: "cost", Type: "NUMERIC"},
	}, doc.Tables[0].Fields)
}

func TestPuller_PullDDL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("ddlview"),
		postgres.WithUsername("ddlview"),
		postgres.WithPassword("ddlview"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	url, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	puller, err := NewPuller(ctx, url)
	require.NoError(t, err)
	defer puller.Close()
	require.NoError(t, puller.Ping(ctx))

	_, err = puller.pool.Exec(ctx, `
		CREATE TABLE users (
			id bigserial PRIMARY KEY,
			email varchar(200) NOT NULL,
			settings jsonb,
			created_at timestamp with time zone NOT NULL DEFAULT now()
		);
		COMMENT ON COLUMN users.email IS 'login address';
		CREATE VIEW active_users AS SELECT id FROM users;`)
	require.NoError(t, err)

	ddl, err := puller.PullDDL(ctx, "public")
	require.NoError(t, err)

	doc := parser.Parse(ddl)
	require.Equal(t, []string{"users"}, doc.TableNames())
	assert.Equal(t, []parser.Field{
		{Name: "id", Type: "BIGINT", Required: true, PrimaryKey: true, Description: "Primary key"},
		{Name: "email", Type: "VARCHAR(200)", Required: true, Description: "login address"},
		{Name: "settings", Type: "JSONB"},
		{Name: "created_at", Type: "TIMESTAMP WITH TIME ZONE", Required: true},
	}, doc.Tables[0].Fields)
}
