package store

import (
	"fmt"
	"strings"

	"kiosk/m/domain"
)

const (
	inventoryTable = "frozen_inventory"
	productTable   = "kiosk_product"

	keyParam = "inventory_id"
)

// keyColumn is how each table is matched to the inventory id: the parent by
// its own id, the product by its foreign key.
var keyColumn = map[string]string{
	inventoryTable: "id",
	productTable:   "frozen_id",
}

// assignment is one "column = :column" pair. Column names only ever come from
// the constants below, never from caller input.
type assignment struct {
	column string
	value  any
}

type updateStatement struct {
	table string
	query string
	args  map[string]any
}

func (u updateStatement) empty() bool {
	return u.query == ""
}

// inventoryAssignments lists the frozen_inventory columns present in u.
func inventoryAssignments(u domain.ProductUpdate) []assignment {
	var set []assignment
	if u.ProductName != nil {
		set = append(set, assignment{"product_name", *u.ProductName})
	}
	if u.Category != nil {
		set = append(set, assignment{"category", *u.Category})
	}
	if u.TotalPieces != nil {
		set = append(set, assignment{"total_pieces", *u.TotalPieces})
	}
	if u.TotalStocks != nil {
		set = append(set, assignment{"total_stocks", *u.TotalStocks})
	}
	return set
}

// productAssignments lists the kiosk_product columns present in u. Price and
// picture only exist on this table.
func productAssignments(u domain.ProductUpdate) []assignment {
	set := inventoryAssignments(u)
	if u.Price != nil {
		set = append(set, assignment{"price", *u.Price})
	}
	if u.Picture != nil {
		set = append(set, assignment{"picture", u.Picture})
	}
	return set
}

// buildUpdate renders a named-parameter UPDATE for table. With no assignments
// the statement is empty and must not be executed.
func buildUpdate(table string, set []assignment, inventoryID int64) updateStatement {
	stmt := updateStatement{table: table}
	if len(set) == 0 {
		return stmt
	}

	parts := make([]string, 0, len(set))
	stmt.args = make(map[string]any, len(set)+1)
	for _, a := range set {
		parts = append(parts, fmt.Sprintf("%s = :%s", a.column, a.column))
		stmt.args[a.column] = a.value
	}
	stmt.args[keyParam] = inventoryID
	stmt.query = fmt.Sprintf("UPDATE %s SET %s WHERE %s = :%s",
		table, strings.Join(parts, ", "), keyColumn[table], keyParam)
	return stmt
}

// blob binds a missing picture as NULL rather than an empty blob.
func blob(b []byte) any {
	if b == nil {
		return nil
	}
	return b
}
