package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// stockHandler exposes the stock ledger read side.
type stockHandler struct {
	stockLedger portssvc.StockLedgerSvc
}

func registerStockRoutes(rg *gin.RouterGroup, stockLedger portssvc.StockLedgerSvc) {
	h := &stockHandler{stockLedger: stockLedger}
	rg.GET("/articles/:id/movements", h.listMovements)
}

// listMovements godoc
// @Summary List stock movements of an article
// @Description Newest first. Rows are written when a commission becomes Ready for the first time.
// @Tags stock
// @Produce  json
// @Param   id path string true "Article ID"
// @Param   limit query int false "Maximum rows (default 50, max 500)"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 400 {object} map[string]string "Invalid limit"
// @Failure 404 {object} map[string]string "Article not found"
// @Security BearerAuth
// @Router /articles/{id}/movements [get]
func (h *stockHandler) listMovements(c *gin.Context) {
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	articleID := c.Param("id")
	movements, err := h.stockLedger.ListMovements(c.Request.Context(), articleID, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to list stock movements")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMovementsResponse(articleID, movements))
}
