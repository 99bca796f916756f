package domain

import "time"

// StockMovementCommission is the movement type written by the ledger.
const StockMovementCommission = "commission"

// Article is the warehouse catalog entry an item draws from. Only Stock is
// ever written by this service.
type Article struct {
	ArticleID string `json:"articleID"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	Stock     int    `json:"stock"`
}

// StockMovement is an immutable ledger row. Amount is signed.
type StockMovement struct {
	MovementID string    `json:"movementID"`
	ArticleID  string    `json:"articleID"`
	UserID     string    `json:"userID"`
	Amount     int       `json:"amount"`
	Type       string    `json:"type"`
	Reference  string    `json:"reference"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DeductionResult is what happened to one stock item on fulfilment.
type DeductionResult string

const (
	DeductionDeducted    DeductionResult = "Deducted"
	DeductionBackordered DeductionResult = "Backordered"
)

// DeductionOutcome reports the ledger result for a single stock item.
type DeductionOutcome struct {
	ItemID      string          `json:"itemID"`
	ArticleID   string          `json:"articleID"`
	Amount      int             `json:"amount"`
	Result      DeductionResult `json:"result"`
	StockBefore int             `json:"stockBefore"`
	StockAfter  int             `json:"stockAfter"`
}

// Supplier is the read-only supplier record used on return labels.
type Supplier struct {
	SupplierID string `json:"supplierID"`
	Name       string `json:"name"`
}
