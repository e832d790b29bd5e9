package medium

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/bundle"
	"github.com/avalon-project/avalon/internal/component/medium"
	"github.com/avalon-project/avalon/internal/docs"
)

func init() {
	must(bundle.AllMediums.Add(bundle.MediumSpec{
		Meta: bundle.Meta{
			Title: "sql",
			Args: docs.ArgSpecs{
				{Dest: "sql_dsn", Type: docs.FieldString, Description: "data source name; scheme selects the driver (mysql://, postgres://, clickhouse://, sqlite://)", Required: true},
				{Dest: "sql_table", Type: docs.FieldString, Description: "table batches are inserted into, one row per batch, into its payload and record_count columns", Required: true},
			},
		},
		AutoSelectFlag: "sql_dsn",
		Constructor:    newSQL,
	}))
}

// driverFor maps a DSN scheme to the registered database/sql driver name,
// the same dispatch-by-scheme rule the medium table documents.
func driverFor(dsn string) (string, error) {
	scheme, _, ok := strings.Cut(dsn, "://")
	if !ok {
		return "", fmt.Errorf("sql medium: dsn %q has no scheme", dsn)
	}
	switch scheme {
	case "mysql":
		return "mysql", nil
	case "postgres", "postgresql":
		return "postgres", nil
	case "clickhouse":
		return "clickhouse", nil
	case "sqlite":
		return "sqlite", nil
	default:
		return "", fmt.Errorf("sql medium: unrecognized dsn scheme %q", scheme)
	}
}

type sqlMedium struct {
	db    *sql.DB
	table string
	query string
}

func newSQL(attrs map[string]any) (medium.Type, error) {
	dsn, _ := attrs["dsn"].(string)
	table, _ := attrs["table"].(string)

	driverName, err := driverFor(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql medium: open: %w", err)
	}
	placeholders := "?, ?"
	if driverName == "postgres" {
		placeholders = "$1, $2"
	}
	query := fmt.Sprintf("INSERT INTO %s (payload, record_count) VALUES (%s)", table, placeholders)
	return &sqlMedium{db: db, table: table, query: query}, nil
}

func (m *sqlMedium) Write(ctx context.Context, b batch.Batch) error {
	if b.Empty() {
		return nil
	}
	if _, err := m.db.ExecContext(ctx, m.query, b.Payload, b.Count); err != nil {
		return &medium.WriteFailed{Cause: err, Retriable: true}
	}
	return nil
}

func (m *sqlMedium) Close(ctx context.Context) error {
	return m.db.Close()
}
