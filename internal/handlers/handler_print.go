package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/dto"
	"github.com/SscSPs/commission_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// printHandler handles the label queue.
type printHandler struct {
	printService portssvc.PrintQueueSvc
}

func registerPrintRoutes(rg *gin.RouterGroup, printService portssvc.PrintQueueSvc) {
	h := &printHandler{printService: printService}

	rg.POST("/commissions/:id/label", h.queueLabel)
	rg.GET("/commissions/:id/label", h.getPickLabel)

	queue := rg.Group("/print-queue")
	{
		queue.GET("", h.listQueue)
		queue.POST("/print", h.markAsPrinted)
		queue.GET("/history", h.printHistory)
	}
}

// queueLabel godoc
// @Summary Queue a label reprint
// @Tags print
// @Produce  json
// @Param   id path string true "Commission ID"
// @Success 200 {object} dto.CommissionResponse
// @Failure 404 {object} map[string]string "Commission not found"
// @Security BearerAuth
// @Router /commissions/{id}/label [post]
func (h *printHandler) queueLabel(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	commission, err := h.printService.QueueLabel(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to queue label")
		return
	}
	c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
}

// getPickLabel godoc
// @Summary Preview the pick label
// @Tags print
// @Produce  json
// @Param   id path string true "Commission ID"
// @Success 200 {object} dto.PickLabelResponse
// @Failure 404 {object} map[string]string "Commission not found"
// @Security BearerAuth
// @Router /commissions/{id}/label [get]
func (h *printHandler) getPickLabel(c *gin.Context) {
	label, err := h.printService.GetPickLabel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to build label")
		return
	}
	c.JSON(http.StatusOK, dto.ToPickLabelResponse(*label))
}

// listQueue godoc
// @Summary Commissions waiting for a label
// @Tags print
// @Produce  json
// @Param   warehouseID query string false "Warehouse"
// @Success 200 {object} dto.ListCommissionsResponse
// @Security BearerAuth
// @Router /print-queue [get]
func (h *printHandler) listQueue(c *gin.Context) {
	commissions, err := h.printService.ListQueue(c.Request.Context(), c.Query("warehouseID"))
	if err != nil {
		respondError(c, err, "Failed to list print queue")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCommissionsResponse(commissions))
}

// markAsPrinted godoc
// @Summary Mark labels as printed
// @Description Each commission is handled on its own. Answers 207 when only part of the batch succeeded.
// @Tags print
// @Accept  json
// @Produce  json
// @Param   batch body dto.MarkPrintedRequest true "Commission IDs"
// @Success 200 {object} dto.PrintBatchResponse
// @Success 207 {object} dto.PrintBatchResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /print-queue/print [post]
func (h *printHandler) markAsPrinted(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.MarkPrintedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MarkAsPrinted", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	result, err := h.printService.MarkAsPrinted(c.Request.Context(), req.CommissionIDs, userID)
	switch {
	case result == nil:
		respondError(c, err, "Failed to mark labels as printed")
	case len(result.Failed) == 0:
		c.JSON(http.StatusOK, dto.ToPrintBatchResponse(result))
	case len(result.Printed) == 0:
		respondError(c, err, "Failed to mark labels as printed")
	default:
		logger.Warn("Print batch partially failed", slog.Int("failed", len(result.Failed)))
		c.JSON(http.StatusMultiStatus, dto.ToPrintBatchResponse(result))
	}
}

// printHistory godoc
// @Summary Recently printed labels
// @Tags print
// @Produce  json
// @Param   limit query int false "Limit" default(50)
// @Success 200 {array} dto.PrintHistoryEntry
// @Security BearerAuth
// @Router /print-queue/history [get]
func (h *printHandler) printHistory(c *gin.Context) {
	var params dto.PrintHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	events, err := h.printService.PrintHistory(c.Request.Context(), params.Limit)
	if err != nil {
		respondError(c, err, "Failed to load print history")
		return
	}
	c.JSON(http.StatusOK, dto.ToPrintHistory(events))
}
