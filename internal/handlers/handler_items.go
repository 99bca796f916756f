package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/dto"
	"github.com/SscSPs/commission_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// addItem godoc
// @Summary Add an item line
// @Tags items
// @Accept  json
// @Produce  json
// @Param   id path string true "Commission ID"
// @Param   item body dto.CreateItemRequest true "Item"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Items are locked in this status"
// @Security BearerAuth
// @Router /commissions/{id}/items [post]
func (h *commissionHandler) addItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	item, err := h.commissionService.AddItem(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to add item")
		return
	}
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

// updateItem godoc
// @Summary Update an item line
// @Tags items
// @Accept  json
// @Produce  json
// @Param   id path string true "Commission ID"
// @Param   itemID path string true "Item ID"
// @Param   item body dto.UpdateItemRequest true "Fields to change"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Items are locked in this status"
// @Security BearerAuth
// @Router /commissions/{id}/items/{itemID} [patch]
func (h *commissionHandler) updateItem(c *gin.Context) {
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	item, err := h.commissionService.UpdateItem(c.Request.Context(), c.Param("id"), c.Param("itemID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update item")
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// removeItem godoc
// @Summary Remove an item line
// @Tags items
// @Param   id path string true "Commission ID"
// @Param   itemID path string true "Item ID"
// @Success 204
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Items are locked in this status"
// @Security BearerAuth
// @Router /commissions/{id}/items/{itemID} [delete]
func (h *commissionHandler) removeItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.commissionService.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("itemID"), userID); err != nil {
		respondError(c, err, "Failed to remove item")
		return
	}
	c.Status(http.StatusNoContent)
}

// pickHandler handles the per-item toggles of the picking screen.
type pickHandler struct {
	transitionService portssvc.TransitionSvc
}

func registerPickRoutes(rg *gin.RouterGroup, transitionService portssvc.TransitionSvc) {
	h := &pickHandler{transitionService: transitionService}
	items := rg.Group("/commissions/:id/items/:itemID")
	{
		items.POST("/pick", h.togglePicked)
		items.POST("/backorder", h.toggleBackorder)
	}
}

// togglePicked godoc
// @Summary Toggle the picked flag
// @Description The first pick of a Draft commission moves it to Preparing
// @Tags items
// @Produce  json
// @Param   id path string true "Commission ID"
// @Param   itemID path string true "Item ID"
// @Success 200 {object} dto.ToggleResponse
// @Failure 400 {object} map[string]string "Item is on backorder"
// @Failure 409 {object} map[string]string "Commission cannot be picked in this status"
// @Security BearerAuth
// @Router /commissions/{id}/items/{itemID}/pick [post]
func (h *pickHandler) togglePicked(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	commission, item, err := h.transitionService.TogglePicked(c.Request.Context(), c.Param("id"), c.Param("itemID"), userID)
	if err != nil {
		respondError(c, err, "Failed to toggle picked")
		return
	}
	c.JSON(http.StatusOK, dto.ToggleResponse{Commission: dto.ToCommissionResponse(commission), Item: dto.ToItemResponse(item)})
}

// toggleBackorder godoc
// @Summary Toggle the backorder flag of an external item
// @Tags items
// @Produce  json
// @Param   id path string true "Commission ID"
// @Param   itemID path string true "Item ID"
// @Success 200 {object} dto.ToggleResponse
// @Failure 400 {object} map[string]string "Only external items can be backordered"
// @Security BearerAuth
// @Router /commissions/{id}/items/{itemID}/backorder [post]
func (h *pickHandler) toggleBackorder(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	commission, item, err := h.transitionService.ToggleBackorder(c.Request.Context(), c.Param("id"), c.Param("itemID"), userID)
	if err != nil {
		respondError(c, err, "Failed to toggle backorder")
		return
	}
	c.JSON(http.StatusOK, dto.ToggleResponse{Commission: dto.ToCommissionResponse(commission), Item: dto.ToItemResponse(item)})
}
