package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Connect(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)
	return db
}

func countItems(t *testing.T, db *sqlx.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM items`))
	return n
}

func TestConnectRequiresDSN(t *testing.T) {
	_, err := Connect(context.Background(), "")
	assert.Error(t, err)
}

func TestConnectEnablesForeignKeys(t *testing.T) {
	db := newTestDB(t)

	var enabled int
	require.NoError(t, db.Get(&enabled, `PRAGMA foreign_keys`))
	assert.Equal(t, 1, enabled)
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	err := WithTx(ctx, db, func(tx *sqlx.Tx) error {
		_, err := tx.Exec(`INSERT INTO items (name) VALUES (?)`, "committed")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countItems(t, db))

	err = WithTx(ctx, db, func(tx *sqlx.Tx) error {
		if _, err := tx.Exec(`INSERT INTO items (name) VALUES (?)`, "rolled"); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 1, countItems(t, db))
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := newTestDB(t)

	assert.Panics(t, func() {
		_ = WithTx(context.Background(), db, func(tx *sqlx.Tx) error {
			_, _ = tx.Exec(`INSERT INTO items (name) VALUES (?)`, "panicked")
			panic("boom")
		})
	})
	assert.Equal(t, 0, countItems(t, db))
}

func TestIsConstraintViolation(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Exec(`INSERT INTO items (name) VALUES (?)`, "dup")
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO items (name) VALUES (?)`, "dup")
	require.Error(t, err)
	assert.True(t, IsConstraintViolation(err))

	_, err = db.Exec(`INSERT INTO missing_table (name) VALUES (?)`, "x")
	require.Error(t, err)
	assert.False(t, IsConstraintViolation(err))
	assert.False(t, IsConstraintViolation(nil))
}

func TestIsConnectionGone(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Close())

	_, err := db.Exec(`SELECT 1`)
	require.Error(t, err)
	assert.True(t, IsConnectionGone(err))
	assert.False(t, IsConnectionGone(errors.New("disk I/O error")))
	assert.True(t, IsConnectionGone(fmt.Errorf("begin: %w", sql.ErrConnDone)))
	assert.False(t, IsConnectionGone(nil))
}
