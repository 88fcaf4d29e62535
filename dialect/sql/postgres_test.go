package sql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/stretchr/testify/require"
)

// values returns the named arguments as sqlmock expectations.
func values(args []any) []driver.Value {
	vs := make([]driver.Value, len(args))
	for i, a := range args {
		vs[i] = a
	}
	return vs
}

// TestPostgresArgs passes the statements through database/sql with
// PostgreSQL array parameters, checking statement text and argument names.
func TestPostgresArgs(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	t.Run("List", func(t *testing.T) {
		c := commands(t, "product")
		args := []any{
			sql.Named("productids", pq.Array([]string{})),
			sql.Named("brand_ids", pq.Array([]string{"acme", "globex"})),
			sql.Named("category_ids", pq.Array([]int64{1})),
			sql.Named("limit", 10),
			sql.Named("offset", 0),
		}
		mock.ExpectQuery(c.List()).
			WithArgs(values(args)...).
			WillReturnRows(sqlmock.NewRows([]string{"productid", "name"}).AddRow("p1", "item"))

		rows, err := db.QueryContext(ctx, c.List(), args...)
		require.NoError(t, err)
		require.True(t, rows.Next())
		require.NoError(t, rows.Close())
	})

	t.Run("Create", func(t *testing.T) {
		c := commands(t, "Brand")
		args := []any{
			sql.Named("brand_id", "acme"),
			sql.Named("name", "Acme"),
			sql.Named("description", nil),
		}
		mock.ExpectExec(c.Create()).WithArgs(values(args)...).WillReturnResult(sqlmock.NewResult(0, 1))
		_, err := db.ExecContext(ctx, c.Create(), args...)
		require.NoError(t, err)
	})

	t.Run("CompositeKey", func(t *testing.T) {
		c := commands(t, "product_order")
		args := []any{sql.Named("order_id", 1), sql.Named("product_id", 7)}
		mock.ExpectExec(c.Delete()).WithArgs(values(args)...).WillReturnResult(sqlmock.NewResult(0, 1))
		_, err := db.ExecContext(ctx, c.Delete(), args...)
		require.NoError(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
