package domain

import "github.com/shopspring/decimal"

// AuditReport partitions the audit population of a warehouse.
type AuditReport struct {
	WarehouseID string          `json:"warehouseID"`
	Missing     []Commission    `json:"missing"`
	Verified    []Commission    `json:"verified"`
	Open        []Commission    `json:"open"`
	Progress    decimal.Decimal `json:"progress"` // percent of verified in verified+open
}

// AuditStatuses is the population the audit engine looks at.
var AuditStatuses = []CommissionStatus{StatusReady, StatusReturnReady, StatusMissing}

// Classify splits commissions into the three audit buckets. Commissions
// outside the population or in the trash are ignored.
func Classify(warehouseID string, commissions []Commission) AuditReport {
	r := AuditReport{
		WarehouseID: warehouseID,
		Missing:     []Commission{},
		Verified:    []Commission{},
		Open:        []Commission{},
	}
	for _, c := range commissions {
		if c.IsDeleted() || !c.Status.IsAuditable() {
			continue
		}
		switch {
		case c.Status == StatusMissing:
			r.Missing = append(r.Missing, c)
		case c.Status == StatusReady || c.Status == StatusReturnReady:
			if c.IsVerified() {
				r.Verified = append(r.Verified, c)
			} else {
				r.Open = append(r.Open, c)
			}
		}
	}
	r.Progress = auditProgress(len(r.Verified), len(r.Open))
	return r
}

func auditProgress(verified, open int) decimal.Decimal {
	total := verified + open
	if total == 0 {
		return decimal.NewFromInt(100)
	}
	return decimal.NewFromInt(int64(verified)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(1)
}
