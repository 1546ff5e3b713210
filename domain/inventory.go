package domain

// InventoryRecord is the raw stock of a product (frozen_inventory).
type InventoryRecord struct {
	ID          int64  `db:"id" json:"id"`
	ProductName string `db:"product_name" json:"product_name"`
	Category    string `db:"category" json:"category"`
	TotalPieces int64  `db:"total_pieces" json:"total_pieces"`
	TotalStocks int64  `db:"total_stocks" json:"total_stocks"`
	Exists      bool   `db:"exists" json:"exists"`
}
