package source

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Puller reads table definitions from a live PostgreSQL database and renders
// them as DDL text.
type Puller struct {
	pool *pgxpool.Pool
	qb   squirrel.StatementBuilderType
}

type pulledColumn struct {
	name        string
	dataType    string
	udtName     string
	nullable    bool
	def         sql.NullString
	charLength  sql.NullInt64
	precision   sql.NullInt64
	scale       sql.NullInt64
	description sql.NullString
}

type pulledTable struct {
	name      string
	columns   []pulledColumn
	pkName    string
	pkColumns []string
}

func NewPuller(ctx context.Context, url string) (*Puller, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection URL: %w", err)
	}

	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	config.MaxConns = 2
	config.MinConns = 0
	config.MaxConnLifetime = 15 * time.Minute
	config.MaxConnIdleTime = 3 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &Puller{
		pool: pool,
		qb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

func (p *Puller) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *Puller) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// PullDDL returns one CREATE TABLE statement per base table in schema.
func (p *Puller) PullDDL(ctx context.Context, schema string) (string, error) {
	if schema == "" {
		schema = "public"
	}

	tables, err := p.pullColumns(ctx, schema)
	if err != nil {
		return "", err
	}
	if err := p.pullPrimaryKeys(ctx, schema, tables); err != nil {
		return "", err
	}
	return renderDDL(schema, tables), nil
}

func (p *Puller) pullColumns(ctx context.Context, schema string) ([]*pulledTable, error) {
	query, args, err := p.qb.
		Select(
			"c.table_name", "c.column_name", "c.data_type", "c.udt_name", "c.is_nullable",
			"c.column_default", "c.character_maximum_length", "c.numeric_precision", "c.numeric_scale",
			"col_description(format('%I.%I', c.table_schema, c.table_name)::regclass, c.ordinal_position::int)",
		).
		From("information_schema.columns c").
		Join("information_schema.tables t ON t.table_schema = c.table_schema AND t.table_name = c.table_name").
		Where(squirrel.Eq{"c.table_schema": schema, "t.table_type": "BASE TABLE"}).
		OrderBy("c.table_name", "c.ordinal_position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build column query: %w", err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	var tables []*pulledTable
	byName := make(map[string]*pulledTable)
	for rows.Next() {
		var tableName, isNullable string
		var col pulledColumn
		if err := rows.Scan(&tableName, &col.name, &col.dataType, &col.udtName, &isNullable,
			&col.def, &col.charLength, &col.precision, &col.scale, &col.description); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		col.nullable = isNullable == "YES"

		table, ok := byName[tableName]
		if !ok {
			table = &pulledTable{name: tableName}
			byName[tableName] = table
			tables = append(tables, table)
		}
		table.columns = append(table.columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	return tables, nil
}

func (p *Puller) pullPrimaryKeys(ctx context.Context, schema string, tables []*pulledTable) error {
	query, args, err := p.qb.
		Select("tc.table_name", "tc.constraint_name", "kcu.column_name").
		From("information_schema.table_constraints tc").
		Join("information_schema.key_column_usage kcu ON tc.constraint_name = kcu.constraint_name " +
			"AND tc.table_schema = kcu.table_schema AND tc.table_name = kcu.table_name").
		Where(squirrel.Eq{"tc.table_schema": schema, "tc.constraint_type": "PRIMARY KEY"}).
		OrderBy("tc.table_name", "kcu.ordinal_position").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build primary key query: %w", err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query primary keys: %w", err)
	}
	defer rows.Close()

	byName := make(map[string]*pulledTable, len(tables))
	for _, t := range tables {
		byName[t.name] = t
	}
	for rows.Next() {
		var tableName, constraint, column string
		if err := rows.Scan(&tableName, &constraint, &column); err != nil {
			return fmt.Errorf("failed to scan primary key: %w", err)
		}
		if table, ok := byName[tableName]; ok {
			table.pkName = constraint
			table.pkColumns = append(table.pkColumns, column)
		}
	}
	return rows.Err()
}

func renderDDL(schema string, tables []*pulledTable) string {
	stmts := make([]string, 0, len(tables))
	for _, table := range tables {
		stmts = append(stmts, renderTable(schema, table))
	}
	return strings.Join(stmts, "\n\n")
}

func renderTable(schema string, table *pulledTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", pgx.Identifier{schema, table.name}.Sanitize())

	for i, col := range table.columns {
		b.WriteString("    ")
		b.WriteString(pgx.Identifier{col.name}.Sanitize())
		b.WriteString(" ")
		b.WriteString(columnType(col))
		if !col.nullable {
			b.WriteString(" NOT NULL")
		}
		if col.def.Valid {
			b.WriteString(" DEFAULT ")
			b.WriteString(col.def.String)
		}
		if i < len(table.columns)-1 || len(table.pkColumns) > 0 {
			b.WriteString(",")
		}
		if col.description.Valid {
			if desc := strings.Join(strings.Fields(col.description.String), " "); desc != "" {
				b.WriteString(" -- ")
				b.WriteString(desc)
			}
		}
		b.WriteString("\n")
	}

	if len(table.pkColumns) > 0 {
		quoted := make([]string, len(table.pkColumns))
		for i, c := range table.pkColumns {
			quoted[i] = pgx.Identifier{c}.Sanitize()
		}
		fmt.Fprintf(&b, "    CONSTRAINT %s PRIMARY KEY (%s)\n",
			pgx.Identifier{table.pkName}.Sanitize(), strings.Join(quoted, ", "))
	}

	b.WriteString(");")
	return b.String()
}

// columnType rebuilds a declared type from information_schema fields.
func columnType(col pulledColumn) string {
	switch col.dataType {
	case "ARRAY":
		return strings.TrimPrefix(col.udtName, "_") + "[]"
	case "USER-DEFINED":
		return col.udtName
	case "character varying", "character", "bit", "bit varying":
		if col.charLength.Valid {
			return fmt.Sprintf("%s(%d)", col.dataType, col.charLength.Int64)
		}
	case "numeric":
		if col.precision.Valid && col.scale.Valid {
			return fmt.Sprintf("numeric(%d,%d)", col.precision.Int64, col.scale.Int64)
		}
	}
	return col.dataType
}
