package handlers

import (
	"net/http"

	"github.com/SscSPs/commission_app/internal/core/domain"
	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// returnHandler handles the storno workflow.
type returnHandler struct {
	returnService portssvc.ReturnSvc
}

func registerReturnRoutes(rg *gin.RouterGroup, returnService portssvc.ReturnSvc) {
	h := &returnHandler{returnService: returnService}
	ret := rg.Group("/commissions/:id/return")
	{
		ret.POST("", h.initiateReturn)
		ret.POST("/ready", h.markReturnReady)
		ret.POST("/complete", h.completeReturn)
		ret.GET("/label", h.getReturnLabel)
	}
}

// initiateReturn godoc
// @Summary Start a return
// @Description Moves the commission to ReturnPending with a disposition (restock or return_supplier)
// @Tags returns
// @Accept  json
// @Produce  json
// @Param   id path string true "Commission ID"
// @Param   return body dto.InitiateReturnRequest true "Disposition and reason"
// @Success 200 {object} dto.CommissionResponse
// @Failure 400 {object} map[string]string "Invalid disposition or missing supplier"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /commissions/{id}/return [post]
func (h *returnHandler) initiateReturn(c *gin.Context) {
	var req dto.InitiateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	commission, err := h.returnService.InitiateReturn(c.Request.Context(), c.Param("id"), domain.ReturnDisposition(req.Disposition), req.Reason, userID)
	if err != nil {
		respondError(c, err, "Failed to initiate return")
		return
	}
	c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
}

// markReturnReady godoc
// @Summary Supplier return ready for pickup
// @Description Generates the return label and moves the commission to ReturnReady
// @Tags returns
// @Produce  json
// @Param   id path string true "Commission ID"
// @Success 200 {object} dto.ReturnReadyResponse
// @Failure 409 {object} map[string]string "Not a pending supplier return"
// @Security BearerAuth
// @Router /commissions/{id}/return/ready [post]
func (h *returnHandler) markReturnReady(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	commission, label, err := h.returnService.MarkReturnReady(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to mark return ready")
		return
	}
	c.JSON(http.StatusOK, dto.ReturnReadyResponse{Commission: dto.ToCommissionResponse(commission), Label: *label})
}

// completeReturn godoc
// @Summary Complete a return
// @Tags returns
// @Produce  json
// @Param   id path string true "Commission ID"
// @Success 200 {object} dto.CommissionResponse
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /commissions/{id}/return/complete [post]
func (h *returnHandler) completeReturn(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	commission, err := h.returnService.CompleteReturn(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to complete return")
		return
	}
	c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
}

// getReturnLabel godoc
// @Summary Reprint the return label
// @Tags returns
// @Produce  json
// @Param   id path string true "Commission ID"
// @Success 200 {object} domain.ReturnLabel
// @Failure 409 {object} map[string]string "Commission has no return label"
// @Security BearerAuth
// @Router /commissions/{id}/return/label [get]
func (h *returnHandler) getReturnLabel(c *gin.Context) {
	label, err := h.returnService.GetReturnLabel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to build return label")
		return
	}
	c.JSON(http.StatusOK, label)
}
