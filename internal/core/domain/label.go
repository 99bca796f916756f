package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	qrPrefix        = "COMM:"
	backorderMarker = "[RÜCKSTAND]"
)

// QRPayload is the string encoded in the QR code of every commission label.
func QRPayload(commissionID string) string {
	return qrPrefix + commissionID
}

// ParseScanPayload accepts either a QR payload or a bare commission id.
func ParseScanPayload(payload string) (string, bool) {
	p := strings.TrimSpace(payload)
	p = strings.TrimSpace(strings.TrimPrefix(p, qrPrefix))
	if p == "" {
		return "", false
	}
	return p, true
}

// LabelLine is one printed item line.
type LabelLine struct {
	Type        ItemType `json:"type"`
	Amount      int      `json:"amount"`
	Name        string   `json:"name"`
	Location    string   `json:"location,omitempty"`
	Reference   string   `json:"reference,omitempty"`
	Backordered bool     `json:"backordered"`
}

func (l LabelLine) String() string {
	var b strings.Builder
	switch l.Type {
	case ItemTypeStock:
		fmt.Fprintf(&b, "%d × %s", l.Amount, l.Name)
		if l.Location != "" {
			fmt.Fprintf(&b, " (%s)", l.Location)
		}
	default:
		b.WriteString(l.Name)
		if l.Reference != "" {
			fmt.Fprintf(&b, " (%s)", l.Reference)
		}
	}
	if l.Backordered {
		b.WriteString(" " + backorderMarker)
	}
	return b.String()
}

// PickLabel holds the data encoded on a pick label. Layout is up to the printer.
type PickLabel struct {
	CommissionID  string      `json:"commissionID"`
	Name          string      `json:"name"`
	OrderNumber   string      `json:"orderNumber"`
	Notes         string      `json:"notes"`
	QRPayload     string      `json:"qrPayload"`
	StockLines    []LabelLine `json:"stockLines"`
	ExternalLines []LabelLine `json:"externalLines"`
}

// Lines renders all item lines, stock first.
func (p PickLabel) Lines() []string {
	out := make([]string, 0, len(p.StockLines)+len(p.ExternalLines))
	for _, l := range p.StockLines {
		out = append(out, l.String())
	}
	for _, l := range p.ExternalLines {
		out = append(out, l.String())
	}
	return out
}

// BuildPickLabel assembles the label for a commission. articles is keyed by
// article id; a missing article falls back to the id as its name.
func BuildPickLabel(c Commission, items []CommissionItem, articles map[string]Article) PickLabel {
	label := PickLabel{
		CommissionID:  c.CommissionID,
		Name:          c.Name,
		OrderNumber:   c.OrderNumber,
		Notes:         c.Notes,
		QRPayload:     QRPayload(c.CommissionID),
		StockLines:    []LabelLine{},
		ExternalLines: []LabelLine{},
	}
	for _, it := range items {
		switch it.Type {
		case ItemTypeStock:
			line := LabelLine{Type: ItemTypeStock, Amount: it.Amount, Backordered: it.IsBackorder}
			if it.ArticleID != nil {
				line.Name = *it.ArticleID
				if a, ok := articles[*it.ArticleID]; ok {
					line.Name = a.Name
					line.Location = a.Location
				}
			}
			label.StockLines = append(label.StockLines, line)
		case ItemTypeExternal:
			label.ExternalLines = append(label.ExternalLines, LabelLine{
				Type:        ItemTypeExternal,
				Amount:      it.Amount,
				Name:        it.CustomName,
				Reference:   it.ExternalReference,
				Backordered: it.IsBackorder,
			})
		}
	}
	return label
}

// ReturnLabel is printed when a supplier return is ready for pickup.
type ReturnLabel struct {
	CommissionID      string    `json:"commissionID"`
	Name              string    `json:"name"`
	OrderNumber       string    `json:"orderNumber"`
	SupplierName      string    `json:"supplierName"`
	SupplierReference string    `json:"supplierReference"`
	Notes             string    `json:"notes"`
	ReturnReason      string    `json:"returnReason"`
	QRPayload         string    `json:"qrPayload"`
	Date              time.Time `json:"date"`
}

// BuildReturnLabel assembles the supplier return label.
func BuildReturnLabel(c Commission, supplier Supplier, at time.Time) ReturnLabel {
	ref := ""
	if c.SupplierOrderNumber != nil {
		ref = *c.SupplierOrderNumber
	}
	return ReturnLabel{
		CommissionID:      c.CommissionID,
		Name:              c.Name,
		OrderNumber:       c.OrderNumber,
		SupplierName:      supplier.Name,
		SupplierReference: ref,
		Notes:             c.Notes,
		ReturnReason:      c.ReturnReason,
		QRPayload:         QRPayload(c.CommissionID),
		Date:              at,
	}
}

// BatchFailure records one commission a bulk operation could not process.
type BatchFailure struct {
	CommissionID string `json:"commissionID"`
	Error        string `json:"error"`
}

// PrintBatchResult is the outcome of marking a batch of labels as printed.
type PrintBatchResult struct {
	Labels  []PickLabel    `json:"labels"`
	Printed []string       `json:"printed"`
	Failed  []BatchFailure `json:"failed"`
}
