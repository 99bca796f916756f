package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/commission_app/internal/core/domain"
	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/dto"
	"github.com/SscSPs/commission_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// commissionHandler handles HTTP requests related to commissions.
type commissionHandler struct {
	commissionService portssvc.CommissionSvcFacade
}

func newCommissionHandler(cs portssvc.CommissionSvcFacade) *commissionHandler {
	return &commissionHandler{commissionService: cs}
}

// registerCommissionRoutes registers commission CRUD and item routes.
func registerCommissionRoutes(rg *gin.RouterGroup, commissionService portssvc.CommissionSvcFacade) {
	h := newCommissionHandler(commissionService)

	commissions := rg.Group("/commissions")
	{
		commissions.POST("", h.createCommission)
		commissions.GET("", h.listCommissions)
		commissions.GET("/:id", h.getCommission)
		commissions.PATCH("/:id", h.updateCommission)
		commissions.PUT("/:id/office", h.setOfficeProcessed)
		commissions.GET("/:id/events", h.listEvents)

		commissions.POST("/:id/items", h.addItem)
		commissions.PATCH("/:id/items/:itemID", h.updateItem)
		commissions.DELETE("/:id/items/:itemID", h.removeItem)
	}
}

// createCommission godoc
// @Summary Create a commission
// @Description Creates a Draft commission with its item lines
// @Tags commissions
// @Accept  json
// @Produce  json
// @Param   commission body dto.CreateCommissionRequest true "Commission details"
// @Success 201 {object} dto.CommissionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create commission"
// @Security BearerAuth
// @Router /commissions [post]
func (h *commissionHandler) createCommission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCommission", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	commission, err := h.commissionService.CreateCommission(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create commission")
		return
	}

	logger.Info("Commission created successfully", slog.String("commission_id", commission.CommissionID))
	c.JSON(http.StatusCreated, dto.ToCommissionDetailResponse(commission))
}

// listCommissions godoc
// @Summary List commissions
// @Description Lists active commissions, newest first
// @Tags commissions
// @Produce  json
// @Param   warehouseID query string false "Warehouse"
// @Param   status query []string false "Statuses" collectionFormat(multi)
// @Param   q query string false "Search in name and order number"
// @Param   needsLabel query bool false "Only commissions waiting for a label"
// @Param   limit query int false "Limit" default(100)
// @Success 200 {object} dto.ListCommissionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list commissions"
// @Security BearerAuth
// @Router /commissions [get]
func (h *commissionHandler) listCommissions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListCommissionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListCommissions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.CommissionFilter{
		WarehouseID: params.WarehouseID,
		Search:      params.Query,
		NeedsLabel:  params.NeedsLabel,
		Limit:       params.Limit,
	}
	for _, raw := range params.Status {
		status, err := domain.ParseCommissionStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	commissions, err := h.commissionService.ListCommissions(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list commissions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCommissionsResponse(commissions))
}

// getCommission godoc
// @Summary Get a commission
// @Description Retrieves a commission with its items and pick summary
// @Tags commissions
// @Produce  json
// @Param   id path string true "Commission ID"
// @Success 200 {object} dto.CommissionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Commission not found"
// @Failure 500 {object} map[string]string "Failed to retrieve commission"
// @Security BearerAuth
// @Router /commissions/{id} [get]
func (h *commissionHandler) getCommission(c *gin.Context) {
	commission, err := h.commissionService.GetCommission(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve commission")
		return
	}
	c.JSON(http.StatusOK, dto.ToCommissionDetailResponse(commission))
}

// updateCommission godoc
// @Summary Update commission details
// @Description Changes name, order number, notes or supplier. Marks the label as stale.
// @Tags commissions
// @Accept  json
// @Produce  json
// @Param   id path string true "Commission ID"
// @Param   commission body dto.UpdateCommissionRequest true "Fields to change"
// @Success 200 {object} dto.CommissionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Commission not found"
// @Failure 500 {object} map[string]string "Failed to update commission"
// @Security BearerAuth
// @Router /commissions/{id} [patch]
func (h *commissionHandler) updateCommission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCommission", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	commission, err := h.commissionService.UpdateCommission(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update commission")
		return
	}
	c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
}

// setOfficeProcessed godoc
// @Summary Set the office flag
// @Description Records whether the office has booked the commission
// @Tags commissions
// @Accept  json
// @Produce  json
// @Param   id path string true "Commission ID"
// @Param   office body dto.OfficeRequest true "Office flag and notes"
// @Success 200 {object} dto.CommissionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Commission not found"
// @Security BearerAuth
// @Router /commissions/{id}/office [put]
func (h *commissionHandler) setOfficeProcessed(c *gin.Context) {
	var req dto.OfficeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	commission, err := h.commissionService.SetOfficeProcessed(c.Request.Context(), c.Param("id"), req.IsProcessed, req.OfficeNotes, userID)
	if err != nil {
		respondError(c, err, "Failed to update office flag")
		return
	}
	c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
}

// listEvents godoc
// @Summary Commission history
// @Description Pages through the event log of a commission, newest first
// @Tags commissions
// @Produce  json
// @Param   id path string true "Commission ID"
// @Param   limit query int false "Limit" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListEventsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /commissions/{id}/events [get]
func (h *commissionHandler) listEvents(c *gin.Context) {
	var params dto.ListEventsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	events, next, err := h.commissionService.ListEvents(c.Request.Context(), c.Param("id"), params.Limit, params.NextToken)
	if err != nil {
		respondError(c, err, "Failed to list commission events")
		return
	}
	c.JSON(http.StatusOK, dto.ListEventsResponse{Events: events, NextToken: next})
}
