package store

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/jmoiron/sqlx"

	"kiosk/m/domain"
	"kiosk/m/internal/database"
	kerrors "kiosk/m/internal/errors"
	"kiosk/m/internal/logger"
	"kiosk/m/internal/validators"
)

const (
	insertInventorySQL = `INSERT INTO frozen_inventory (product_name, category, total_pieces, total_stocks, "exists")
VALUES (?, ?, ?, ?, 1)`

	insertProductSQL = `INSERT INTO kiosk_product
(frozen_id, product_name, picture, category, price, total_stocks, total_pieces, total_pieces_used, exist)
VALUES (?, ?, ?, ?, ?, ?, ?, 0, 1)`

	selectInventorySQL = `SELECT id, product_name, category, total_pieces, total_stocks, "exists"
FROM frozen_inventory WHERE id = ?`

	selectProductSQL = `SELECT id, frozen_id, product_name, picture, category, price, total_stocks, total_pieces, total_pieces_used, exist
FROM kiosk_product WHERE frozen_id = ? ORDER BY id LIMIT 1`
)

// Store writes inventory records and their sellable products. It owns a single
// connection and runs one operation at a time.
type Store struct {
	mu  sync.Mutex
	db  *sqlx.DB
	log *logger.Logger
}

// New constructs a Store. A nil db yields a Store whose operations all fail
// with CONNECTION_UNAVAILABLE.
func New(db *sqlx.DB, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{db: db, log: log}
}

// CreateProduct inserts the inventory record and its sellable product in one
// transaction and returns both generated ids. On any failure nothing is
// persisted and the zero ProductIDs is returned.
func (s *Store) CreateProduct(ctx context.Context, p domain.NewProduct) (domain.ProductIDs, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return domain.ProductIDs{}, errConnectionUnavailable()
	}
	if err := validators.Struct(p); err != nil {
		return domain.ProductIDs{}, err
	}

	var ids domain.ProductIDs
	err := database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, insertInventorySQL, p.ProductName, p.Category, p.TotalPieces, p.TotalStocks)
		if err != nil {
			return classify(err, "insert inventory record")
		}
		inventoryID, err := res.LastInsertId()
		if err != nil {
			return classify(err, "read inventory id")
		}

		res, err = tx.ExecContext(ctx, insertProductSQL,
			inventoryID, p.ProductName, blob(p.Picture), p.Category, p.Price, p.TotalStocks, p.TotalPieces)
		if err != nil {
			return classify(err, "insert kiosk product")
		}
		productID, err := res.LastInsertId()
		if err != nil {
			return classify(err, "read kiosk product id")
		}

		ids = domain.ProductIDs{InventoryID: inventoryID, ProductID: productID}
		return nil
	})
	if err != nil {
		err = classify(err, "commit product")
		ctx = s.log.WithFields(ctx, map[string]any{
			"product_name": p.ProductName,
			"kind":         kerrors.As(err).Code(),
		})
		s.log.Error(ctx, "product insert rolled back", err)
		return domain.ProductIDs{}, err
	}
	return ids, nil
}

// UpdateProduct applies the supplied fields to the inventory record and to
// the sellable product that references it. Absent fields are left untouched
// and a table with nothing to change is skipped; an empty update succeeds
// without touching the database.
func (s *Store) UpdateProduct(ctx context.Context, inventoryID int64, u domain.ProductUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return errConnectionUnavailable()
	}
	if u.IsEmpty() {
		return nil
	}
	if err := validators.Struct(u); err != nil {
		return err
	}

	statements := []updateStatement{
		buildUpdate(inventoryTable, inventoryAssignments(u), inventoryID),
		buildUpdate(productTable, productAssignments(u), inventoryID),
	}

	ctx = s.log.WithField(ctx, "inventory_id", inventoryID)
	var matched int64
	err := database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		for _, stmt := range statements {
			if stmt.empty() {
				continue
			}
			res, err := tx.NamedExecContext(ctx, stmt.query, stmt.args)
			if err != nil {
				return classify(err, "update "+stmt.table)
			}
			if n, err := res.RowsAffected(); err == nil {
				matched += n
			}
		}
		return nil
	})
	if err != nil {
		err = classify(err, "commit product update")
		s.log.Error(s.log.WithField(ctx, "kind", kerrors.As(err).Code()), "product update rolled back", err)
		return err
	}
	if matched == 0 {
		s.log.Warn(ctx, "product update matched no rows")
	}
	return nil
}

// Inventory returns the inventory record with the given id.
func (s *Store) Inventory(ctx context.Context, id int64) (domain.InventoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec domain.InventoryRecord
	if s.db == nil {
		return rec, errConnectionUnavailable()
	}
	if err := s.db.GetContext(ctx, &rec, selectInventorySQL, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, kerrors.New(kerrors.CodeNotFound, "inventory record not found")
		}
		return rec, classify(err, "read inventory record")
	}
	return rec, nil
}

// ProductByInventory returns the sellable product created for the given
// inventory record.
func (s *Store) ProductByInventory(ctx context.Context, inventoryID int64) (domain.SellableProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var p domain.SellableProduct
	if s.db == nil {
		return p, errConnectionUnavailable()
	}
	if err := s.db.GetContext(ctx, &p, selectProductSQL, inventoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, kerrors.New(kerrors.CodeNotFound, "kiosk product not found")
		}
		return p, classify(err, "read kiosk product")
	}
	return p, nil
}

// Close releases the connection. Calling it more than once is harmless.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func errConnectionUnavailable() error {
	return kerrors.New(kerrors.CodeConnectionUnavailable, "database connection is not open")
}

// classify maps a database error onto an error kind. Errors that already carry
// a kind pass through unchanged.
func classify(err error, op string) error {
	if err == nil || kerrors.As(err) != nil {
		return err
	}
	switch {
	case database.IsConstraintViolation(err):
		return kerrors.Wrap(kerrors.CodeConstraintViolation, err, op)
	case database.IsConnectionGone(err):
		return kerrors.Wrap(kerrors.CodeConnectionUnavailable, err, op)
	default:
		return kerrors.Wrap(kerrors.CodeTransactionFailure, err, op)
	}
}
