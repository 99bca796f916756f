package dto

import "github.com/SscSPs/commission_app/internal/core/domain"

// ListMovementsParams defines query parameters for an article's stock ledger.
type ListMovementsParams struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

// ListMovementsResponse wraps an article's ledger rows, newest first.
type ListMovementsResponse struct {
	ArticleID string                 `json:"articleID"`
	Movements []domain.StockMovement `json:"movements"`
}

func ToListMovementsResponse(articleID string, movements []domain.StockMovement) ListMovementsResponse {
	if movements == nil {
		movements = []domain.StockMovement{}
	}
	return ListMovementsResponse{ArticleID: articleID, Movements: movements}
}
