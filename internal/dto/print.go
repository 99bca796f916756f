package dto

import "github.com/SscSPs/commission_app/internal/core/domain"

// MarkPrintedRequest lists the commissions whose labels were printed.
type MarkPrintedRequest struct {
	CommissionIDs []string `json:"commissionIDs" binding:"required,min=1,dive,required"`
}

// PrintHistoryEntry is one labels_printed event.
type PrintHistoryEntry struct {
	CommissionID   string `json:"commissionID"`
	CommissionName string `json:"commissionName"`
	PrintedBy      string `json:"printedBy"`
	PrintedAt      string `json:"printedAt"`
}

// ToPrintHistory converts events to history entries.
func ToPrintHistory(events []domain.CommissionEvent) []PrintHistoryEntry {
	list := make([]PrintHistoryEntry, len(events))
	for i, e := range events {
		list[i] = PrintHistoryEntry{
			CommissionID:   e.CommissionID,
			CommissionName: e.CommissionName,
			PrintedBy:      e.UserID,
			PrintedAt:      e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	return list
}

// PickLabelResponse renders a pick label with its text lines.
type PickLabelResponse struct {
	domain.PickLabel
	Lines []string `json:"lines"`
}

// ToPickLabelResponse converts a label to DTO.
func ToPickLabelResponse(l domain.PickLabel) PickLabelResponse {
	return PickLabelResponse{PickLabel: l, Lines: l.Lines()}
}

// PrintBatchResponse is the result of a print batch.
type PrintBatchResponse struct {
	Labels  []PickLabelResponse   `json:"labels"`
	Printed []string              `json:"printed"`
	Failed  []domain.BatchFailure `json:"failed"`
}

// ToPrintBatchResponse converts the batch result to DTO.
func ToPrintBatchResponse(r *domain.PrintBatchResult) PrintBatchResponse {
	labels := make([]PickLabelResponse, len(r.Labels))
	for i, l := range r.Labels {
		labels[i] = ToPickLabelResponse(l)
	}
	failed := r.Failed
	if failed == nil {
		failed = []domain.BatchFailure{}
	}
	printed := r.Printed
	if printed == nil {
		printed = []string{}
	}
	return PrintBatchResponse{Labels: labels, Printed: printed, Failed: failed}
}

// PrintHistoryParams defines query parameters for the print history.
type PrintHistoryParams struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}
