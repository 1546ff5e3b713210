package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiosk/m/internal/database"
)

type column struct {
	CID        int     `db:"cid"`
	Name       string  `db:"name"`
	Type       string  `db:"type"`
	NotNull    bool    `db:"notnull"`
	Default    *string `db:"dflt_value"`
	PrimaryKey int     `db:"pk"`
}

func openDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Connect(context.Background(), filepath.Join(t.TempDir(), "kiosk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func columns(t *testing.T, db *sqlx.DB, table string) map[string]column {
	t.Helper()
	var cols []column
	require.NoError(t, db.Select(&cols, `SELECT cid, name, type, "notnull", dflt_value, pk FROM pragma_table_info(?)`, table))
	out := make(map[string]column, len(cols))
	for _, c := range cols {
		out[c.Name] = c
	}
	return out
}

func TestRunCreatesKioskTables(t *testing.T) {
	db := openDB(t)
	require.NoError(t, Run(context.Background(), db))

	inventory := columns(t, db, "frozen_inventory")
	require.Len(t, inventory, 6)
	assert.Equal(t, "INTEGER", inventory["exists"].Type)
	assert.True(t, inventory["exists"].NotNull)
	assert.Equal(t, 1, inventory["id"].PrimaryKey)

	product := columns(t, db, "kiosk_product")
	require.Len(t, product, 10)
	assert.Equal(t, "NUMERIC", product["price"].Type)
	assert.Equal(t, "BLOB", product["picture"].Type)
	assert.False(t, product["picture"].NotNull)
	assert.False(t, product["total_pieces_used"].NotNull)
	assert.True(t, product["exist"].NotNull)

	require.Len(t, columns(t, db, "set_product"), 5)
}

func TestRunIsIdempotent(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	require.NoError(t, Run(ctx, db))
	require.NoError(t, Run(ctx, db))
}

func TestKioskProductReferencesInventoryByIDOnly(t *testing.T) {
	db := openDB(t)
	require.NoError(t, Run(context.Background(), db))

	var refs []struct {
		From string `db:"from"`
		To   string `db:"to"`
	}
	require.NoError(t, db.Select(&refs, `SELECT "from", "to" FROM pragma_foreign_key_list('kiosk_product')`))
	require.Len(t, refs, 1)
	assert.Equal(t, "frozen_id", refs[0].From)
	assert.Equal(t, "id", refs[0].To)
}
