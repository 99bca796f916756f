package domain

import "fmt"

// ItemType distinguishes warehouse articles from externally sourced items.
type ItemType string

const (
	ItemTypeStock    ItemType = "Stock"
	ItemTypeExternal ItemType = "External"
)

// CommissionItem is one line of a commission.
type CommissionItem struct {
	ItemID            string   `json:"itemID"`
	CommissionID      string   `json:"commissionID"`
	Type              ItemType `json:"type"`
	ArticleID         *string  `json:"articleID"`
	CustomName        string   `json:"customName"`
	ExternalReference string   `json:"externalReference"`
	Amount            int      `json:"amount"`
	IsPicked          bool     `json:"isPicked"`
	IsBackorder       bool     `json:"isBackorder"`
	Notes             string   `json:"notes"`
	AttachmentData    *string  `json:"attachmentData,omitempty"`
}

// Validate checks the type-dependent fields of an item.
func (i CommissionItem) Validate() error {
	if i.Amount < 1 {
		return fmt.Errorf("%w: amount must be at least 1", ErrInvalidItem)
	}
	switch i.Type {
	case ItemTypeStock:
		if i.ArticleID == nil || *i.ArticleID == "" {
			return fmt.Errorf("%w: stock items need an article", ErrInvalidItem)
		}
		if i.IsBackorder {
			return ErrBackorderStockItem
		}
	case ItemTypeExternal:
		if i.CustomName == "" {
			return fmt.Errorf("%w: external items need a name", ErrInvalidItem)
		}
	default:
		return fmt.Errorf("%w: unknown item type %q", ErrInvalidItem, i.Type)
	}
	return nil
}

// PickSummary counts picked and backordered items.
type PickSummary struct {
	Total       int `json:"total"`
	Picked      int `json:"picked"`
	Backordered int `json:"backordered"`
}

// Summarize returns pick progress for a set of items.
func Summarize(items []CommissionItem) PickSummary {
	s := PickSummary{Total: len(items)}
	for _, it := range items {
		if it.IsPicked {
			s.Picked++
		}
		if it.IsBackorder {
			s.Backordered++
		}
	}
	return s
}

// CommissionWithItems is a commission together with its item lines.
type CommissionWithItems struct {
	Commission
	Items   []CommissionItem `json:"items"`
	Summary PickSummary      `json:"summary"`
}
