package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/commission_app/internal/apperrors"
	"github.com/SscSPs/commission_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commission_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	defaultMovementLimit = 50
	maxMovementLimit     = 500
)

type stockLedgerService struct {
	BaseService
}

// NewStockLedgerService creates the ledger. Deduct joins the caller's
// transaction when there is one.
func NewStockLedgerService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.StockLedgerSvc {
	return &stockLedgerService{BaseService: newBaseService(repos, options...)}
}

// Deduct takes amount off the article's stock and books a movement. When the
// stock is short nothing is written and the outcome is Backordered.
func (s *stockLedgerService) Deduct(ctx context.Context, articleID string, amount int, reference, actorID string) (domain.DeductionOutcome, error) {
	outcome := domain.DeductionOutcome{ArticleID: articleID, Amount: amount}
	if amount < 1 {
		return outcome, apperrors.NewValidationFailedError("deduction amount must be at least 1")
	}

	err := s.repos.TxManager.WithinTx(ctx, func(ctx context.Context) error {
		article, err := s.repos.ArticleRepo.FindArticleForUpdate(ctx, articleID)
		if err != nil {
			return err
		}
		outcome.StockBefore = article.Stock
		outcome.StockAfter = article.Stock

		if article.Stock < amount {
			outcome.Result = domain.DeductionBackordered
			s.GetLogger(ctx).Warn("Insufficient stock, item goes on backorder",
				slog.String("article_id", articleID),
				slog.Int("stock", article.Stock),
				slog.Int("amount", amount))
			return nil
		}

		newStock := article.Stock - amount
		if err := s.repos.ArticleRepo.SetArticleStock(ctx, articleID, newStock); err != nil {
			return fmt.Errorf("failed to update stock of article %s: %w", articleID, err)
		}
		movement := domain.StockMovement{
			MovementID: uuid.NewString(),
			ArticleID:  articleID,
			UserID:     actorID,
			Amount:     -amount,
			Type:       domain.StockMovementCommission,
			Reference:  reference,
			CreatedAt:  s.now(),
		}
		if err := s.repos.MovementRepo.AppendMovement(ctx, movement); err != nil {
			return fmt.Errorf("failed to record stock movement for article %s: %w", articleID, err)
		}
		outcome.StockAfter = newStock
		outcome.Result = domain.DeductionDeducted
		return nil
	})
	if err != nil {
		s.logUnexpected(ctx, err, "Stock deduction failed", slog.String("article_id", articleID))
		return domain.DeductionOutcome{}, err
	}
	return outcome, nil
}

func (s *stockLedgerService) ListMovements(ctx context.Context, articleID string, limit int) ([]domain.StockMovement, error) {
	limit = pagination.ClampLimit(limit, defaultMovementLimit, maxMovementLimit)
	articles, err := s.repos.ArticleRepo.FindArticlesByIDs(ctx, []string{articleID})
	if err != nil {
		s.LogError(ctx, err, "Failed to look up article", slog.String("article_id", articleID))
		return nil, err
	}
	if _, ok := articles[articleID]; !ok {
		return nil, apperrors.NewNotFoundError("article " + articleID + " not found")
	}
	movements, err := s.repos.MovementRepo.ListMovementsByArticle(ctx, articleID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list stock movements", slog.String("article_id", articleID))
		return nil, err
	}
	return movements, nil
}
