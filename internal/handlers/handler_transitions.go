package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/commission_app/internal/core/domain"
	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/dto"
	"github.com/SscSPs/commission_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transitionHandler exposes the status state machine.
type transitionHandler struct {
	transitionService portssvc.TransitionSvc
}

func registerTransitionRoutes(rg *gin.RouterGroup, transitionService portssvc.TransitionSvc) {
	h := &transitionHandler{transitionService: transitionService}
	commission := rg.Group("/commissions/:id")
	{
		commission.POST("/ready", h.setReady)
		commission.POST("/reset", h.simple("reset", transitionService.ResetToPreparing))
		commission.POST("/withdraw", h.simple("withdraw", transitionService.Withdraw))
		commission.POST("/revert-withdrawal", h.simple("revert withdrawal", transitionService.RevertWithdrawal))
		commission.POST("/missing", h.simple("mark missing", transitionService.MarkMissing))
	}
}

// setReady godoc
// @Summary Set a commission Ready
// @Description Requires all items picked and no open backorders. Deducts stock once per lifecycle.
// @Tags transitions
// @Produce  json
// @Param   id path string true "Commission ID"
// @Success 200 {object} dto.TransitionResponse
// @Failure 404 {object} map[string]string "Commission not found"
// @Failure 409 {object} map[string]string "Guard failed or transition not allowed"
// @Failure 500 {object} map[string]string "Failed to set commission ready"
// @Security BearerAuth
// @Router /commissions/{id}/ready [post]
func (h *transitionHandler) setReady(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	result, err := h.transitionService.SetReady(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to set commission ready")
		return
	}
	if result.HasBackorderedDeductions() {
		logger.Warn("Commission ready with stock shortfall", slog.String("commission_id", result.Commission.CommissionID))
	}
	c.JSON(http.StatusOK, dto.ToTransitionResponse(result))
}

// simple wraps the transitions that take only the commission id:
// reset, withdraw, revert-withdrawal and missing.
func (h *transitionHandler) simple(name string, fn func(ctx context.Context, commissionID, actorID string) (*domain.Commission, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		commission, err := fn(c.Request.Context(), c.Param("id"), userID)
		if err != nil {
			respondError(c, err, "Failed to "+name+" commission")
			return
		}
		c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
	}
}
