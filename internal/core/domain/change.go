package domain

import "time"

// ChangeEvent is published after a write to a commission has been committed.
// Subscribers use it as a hint to re-read; it carries no full state.
type ChangeEvent struct {
	CommissionID string           `json:"commissionID"`
	WarehouseID  string           `json:"warehouseID"`
	Action       EventAction      `json:"action"`
	Status       CommissionStatus `json:"status"`
	ActorID      string           `json:"actorID"`
	OccurredAt   time.Time        `json:"occurredAt"`
}

// NewChangeEvent builds the notification for c.
func NewChangeEvent(c Commission, action EventAction, actorID string, at time.Time) ChangeEvent {
	return ChangeEvent{
		CommissionID: c.CommissionID,
		WarehouseID:  c.WarehouseID,
		Action:       action,
		Status:       c.Status,
		ActorID:      actorID,
		OccurredAt:   at,
	}
}
