package domain

import "fmt"

// CommissionStatus is the lifecycle state of a commission. The string value is
// what gets persisted and sent over the wire.
type CommissionStatus string

const (
	StatusDraft          CommissionStatus = "Draft"
	StatusPreparing      CommissionStatus = "Preparing"
	StatusReady          CommissionStatus = "Ready"
	StatusWithdrawn      CommissionStatus = "Withdrawn"
	StatusReturnPending  CommissionStatus = "ReturnPending"
	StatusReturnReady    CommissionStatus = "ReturnReady"
	StatusReturnComplete CommissionStatus = "ReturnComplete"
	StatusMissing        CommissionStatus = "Missing"
)

var statusLabels = map[CommissionStatus]string{
	StatusDraft:          "Entwurf",
	StatusPreparing:      "In Vorbereitung",
	StatusReady:          "Bereit",
	StatusWithdrawn:      "Entnommen",
	StatusReturnPending:  "Angemeldet",
	StatusReturnReady:    "Abholbereit",
	StatusReturnComplete: "Retoure Abgeschlossen",
	StatusMissing:        "Vermisst",
}

// AllStatuses lists every status in lifecycle order.
func AllStatuses() []CommissionStatus {
	return []CommissionStatus{
		StatusDraft, StatusPreparing, StatusReady, StatusWithdrawn,
		StatusReturnPending, StatusReturnReady, StatusReturnComplete, StatusMissing,
	}
}

// IsValid reports whether s is one of the known statuses.
func (s CommissionStatus) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the German display label shown on screens and labels.
func (s CommissionStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// IsReturnTrack reports whether s belongs to the storno sub-workflow.
func (s CommissionStatus) IsReturnTrack() bool {
	return s == StatusReturnPending || s == StatusReturnReady || s == StatusReturnComplete
}

// IsPickable reports whether items may be picked or flagged in this status.
func (s CommissionStatus) IsPickable() bool {
	return s == StatusDraft || s == StatusPreparing || s == StatusReady
}

// IsAuditable reports whether a commission in this status belongs to the
// audit population.
func (s CommissionStatus) IsAuditable() bool {
	return s == StatusReady || s == StatusReturnReady || s == StatusMissing
}

// ParseCommissionStatus converts a wire value into a status.
func ParseCommissionStatus(v string) (CommissionStatus, error) {
	s := CommissionStatus(v)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: unknown commission status %q", ErrInvalidStatus, v)
	}
	return s, nil
}
