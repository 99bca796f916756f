package domain

import "fmt"

// allowedTransitions is the static state machine. Item and disposition
// conditions are checked by the services on top of this table.
var allowedTransitions = map[CommissionStatus][]CommissionStatus{
	StatusDraft:         {StatusPreparing, StatusReady, StatusReturnPending},
	StatusPreparing:     {StatusReady, StatusReturnPending},
	StatusReady:         {StatusPreparing, StatusWithdrawn, StatusReturnPending, StatusMissing},
	StatusWithdrawn:     {StatusReady, StatusReturnPending},
	StatusReturnPending: {StatusReturnReady, StatusReturnComplete},
	StatusReturnReady:   {StatusReturnComplete, StatusMissing},
	StatusMissing:       {StatusPreparing, StatusReturnPending},
}

// CanTransition reports whether from -> to is part of the state machine.
func CanTransition(from, to CommissionStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s CommissionStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// TransitionResult is returned by status changes that may touch stock.
type TransitionResult struct {
	Commission Commission         `json:"commission"`
	OldStatus  CommissionStatus   `json:"oldStatus"`
	NewStatus  CommissionStatus   `json:"newStatus"`
	Deductions []DeductionOutcome `json:"deductions"`
}

// HasBackorderedDeductions reports whether any stock item could not be deducted.
func (r TransitionResult) HasBackorderedDeductions() bool {
	for _, d := range r.Deductions {
		if d.Result == DeductionBackordered {
			return true
		}
	}
	return false
}

// StatusChangeDetails is the details text of a status_changed event.
func StatusChangeDetails(from, to CommissionStatus, note string) string {
	s := fmt.Sprintf("%s -> %s", from, to)
	if note != "" {
		s += " (" + note + ")"
	}
	return s
}
