package domain

import "github.com/shopspring/decimal"

// SellableProduct is the kiosk-facing copy of an InventoryRecord (kiosk_product).
type SellableProduct struct {
	ID              int64           `db:"id" json:"id"`
	FrozenID        int64           `db:"frozen_id" json:"frozen_id"`
	ProductName     string          `db:"product_name" json:"product_name"`
	Picture         []byte          `db:"picture" json:"picture,omitempty"`
	Category        string          `db:"category" json:"category"`
	Price           decimal.Decimal `db:"price" json:"price"`
	TotalStocks     int64           `db:"total_stocks" json:"total_stocks"`
	TotalPieces     int64           `db:"total_pieces" json:"total_pieces"`
	TotalPiecesUsed *int64          `db:"total_pieces_used" json:"total_pieces_used,omitempty"`
	Exist           bool            `db:"exist" json:"exist"`
}

// NewProduct carries the fields needed to create an inventory record and its
// sellable product in one go.
type NewProduct struct {
	ProductName string          `json:"product_name" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	TotalPieces int64           `json:"total_pieces" validate:"min=0"`
	TotalStocks int64           `json:"total_stocks" validate:"min=0"`
	Price       decimal.Decimal `json:"price" validate:"min=0"`
	Picture     []byte          `json:"picture,omitempty"`
}

// ProductIDs is the identifier pair produced by a successful create. The zero
// value means nothing was persisted.
type ProductIDs struct {
	InventoryID int64 `json:"inventory_id"`
	ProductID   int64 `json:"product_id"`
}

// IsZero reports whether no identifiers were assigned.
func (p ProductIDs) IsZero() bool {
	return p.InventoryID == 0 && p.ProductID == 0
}

// ProductUpdate lists the fields to change. A nil field is left untouched.
type ProductUpdate struct {
	ProductName *string          `json:"product_name,omitempty" validate:"omitnil,min=1"`
	Category    *string          `json:"category,omitempty" validate:"omitnil,min=1"`
	TotalPieces *int64           `json:"total_pieces,omitempty" validate:"omitnil,min=0"`
	TotalStocks *int64           `json:"total_stocks,omitempty" validate:"omitnil,min=0"`
	Price       *decimal.Decimal `json:"price,omitempty" validate:"omitnil,min=0"`
	Picture     []byte           `json:"picture,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u ProductUpdate) IsEmpty() bool {
	return u.ProductName == nil &&
		u.Category == nil &&
		u.TotalPieces == nil &&
		u.TotalStocks == nil &&
		u.Price == nil &&
		u.Picture == nil
}
