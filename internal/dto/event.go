package dto

import "github.com/SscSPs/commission_app/internal/core/domain"

// ListEventsParams defines query parameters for event history.
type ListEventsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// ListEventsResponse wraps a page of events.
type ListEventsResponse struct {
	Events    []domain.CommissionEvent `json:"events"`
	NextToken *string                  `json:"nextToken,omitempty"`
}

// PurgeResponse reports how many commissions were removed for good.
type PurgeResponse struct {
	Purged int64 `json:"purged"`
}
