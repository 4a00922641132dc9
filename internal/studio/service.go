package studio

import (
	"context"
	"fmt"

	"github.com/Rana718/ddlview/internal/parser"
	"github.com/Rana718/ddlview/internal/source"
	"github.com/Rana718/ddlview/internal/sqlgen"
	"github.com/Rana718/ddlview/internal/studio/common"
)

type Service struct {
	store      ParseStore
	schemaPath string
}

func NewService(store ParseStore, schemaPath string) *Service {
	return &Service{
		store:      store,
		schemaPath: schemaPath,
	}
}

func (s *Service) Parse(ctx context.Context, sql string) (common.ParseResult, error) {
	result, err := s.store.Parse(ctx, sql)
	if err != nil {
		return common.ParseResult{}, fmt.Errorf("failed to parse schema: %w", err)
	}
	return result, nil
}

// Schema parses the configured schema path. The files are re-read on every
// call so edits show up without a restart; unchanged text hits the cache.
func (s *Service) Schema(ctx context.Context) (common.ParseResult, error) {
	text, err := source.ReadPath(s.schemaPath)
	if err != nil {
		return common.ParseResult{}, err
	}
	return s.Parse(ctx, text)
}

func (s *Service) SchemaSQL(ctx context.Context) (string, error) {
	result, err := s.Schema(ctx)
	if err != nil {
		return "", err
	}
	return sqlgen.Document(result.Document), nil
}

func (s *Service) Tables(ctx context.Context) ([]common.TableSummary, error) {
	result, err := s.Schema(ctx)
	if err != nil {
		return nil, err
	}

	tables := make([]common.TableSummary, len(result.Document.Tables))
	for i, t := range result.Document.Tables {
		tables[i] = common.TableSummary{Name: t.Name, FieldCount: len(t.Fields)}
	}
	return tables, nil
}

func (s *Service) Table(ctx context.Context, name string) (parser.Table, bool, error) {
	result, err := s.Schema(ctx)
	if err != nil {
		return parser.Table{}, false, err
	}
	table, ok := parser.NewIndexedDocument(result.Document).GetTable(name)
	return table, ok, nil
}

func (s *Service) StoreName() string {
	return s.store.Name()
}
