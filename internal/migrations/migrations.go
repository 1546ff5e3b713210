package migrations

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema is the kiosk database layout. kiosk_product references its parent by
// id only; the older layout also tied kiosk_product.exist to
// frozen_inventory.exists, which SQLite rejects as a foreign key mismatch
// because that column is not unique.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS "frozen_inventory" (
            "id"            INTEGER NOT NULL UNIQUE,
            "product_name"  TEXT NOT NULL,
            "category"      TEXT NOT NULL,
            "total_pieces"  INTEGER NOT NULL,
            "total_stocks"  INTEGER NOT NULL,
            "exists"        INTEGER NOT NULL,
            PRIMARY KEY("id" AUTOINCREMENT)
        );`,
	`CREATE TABLE IF NOT EXISTS "kiosk_product" (
            "id"                 INTEGER NOT NULL UNIQUE,
            "frozen_id"          INTEGER NOT NULL,
            "product_name"       TEXT NOT NULL,
            "picture"            BLOB,
            "category"           TEXT NOT NULL,
            "price"              NUMERIC NOT NULL,
            "total_stocks"       INTEGER NOT NULL,
            "total_pieces"       INTEGER NOT NULL,
            "total_pieces_used"  INTEGER,
            "exist"              INTEGER NOT NULL,
            PRIMARY KEY("id" AUTOINCREMENT),
            FOREIGN KEY("frozen_id") REFERENCES "frozen_inventory"("id") ON DELETE CASCADE
        );`,
	`CREATE TABLE IF NOT EXISTS "set_product" (
            "id"         INTEGER NOT NULL UNIQUE,
            "name"       TEXT NOT NULL,
            "price"      REAL NOT NULL,
            "set_items"  TEXT NOT NULL,
            "exist"      INTEGER NOT NULL,
            PRIMARY KEY("id" AUTOINCREMENT)
        );`,
}

// Run creates the kiosk tables. It is safe to call on an existing database.
func Run(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range Schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
