package models

import "time"

// Article is the subset of the articles table the service reads.
type Article struct {
	ArticleID string `db:"article_id"`
	Name      string `db:"name"`
	Location  string `db:"location"`
	Stock     int    `db:"stock"`
}

// StockMovement is the row shape of the stock_movements table.
type StockMovement struct {
	MovementID   string    `db:"movement_id"`
	ArticleID    string    `db:"article_id"`
	UserID       string    `db:"user_id"`
	Amount       int       `db:"amount"`
	MovementType string    `db:"movement_type"`
	Reference    string    `db:"reference"`
	CreatedAt    time.Time `db:"created_at"`
}

// Supplier is the row shape of the suppliers table.
type Supplier struct {
	SupplierID string `db:"supplier_id"`
	Name       string `db:"name"`
}
