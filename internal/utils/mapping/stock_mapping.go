package mapping

import (
	"github.com/SscSPs/commission_app/internal/core/domain"
	"github.com/SscSPs/commission_app/internal/models"
)

// ToDomainArticle converts a model Article to a domain Article
func ToDomainArticle(m models.Article) domain.Article {
	return domain.Article{
		ArticleID: m.ArticleID,
		Name:      m.Name,
		Location:  m.Location,
		Stock:     m.Stock,
	}
}

// ToDomainStockMovement converts a model StockMovement to a domain StockMovement
func ToDomainStockMovement(m models.StockMovement) domain.StockMovement {
	return domain.StockMovement{
		MovementID: m.MovementID,
		ArticleID:  m.ArticleID,
		UserID:     m.UserID,
		Amount:     m.Amount,
		Type:       m.MovementType,
		Reference:  m.Reference,
		CreatedAt:  m.CreatedAt,
	}
}

// ToDomainSupplier converts a model Supplier to a domain Supplier
func ToDomainSupplier(m models.Supplier) domain.Supplier {
	return domain.Supplier{SupplierID: m.SupplierID, Name: m.Name}
}
