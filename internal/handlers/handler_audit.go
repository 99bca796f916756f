package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/dto"
	"github.com/SscSPs/commission_app/internal/export"
	"github.com/gin-gonic/gin"
)

// auditHandler handles the stock-take endpoints.
type auditHandler struct {
	auditService portssvc.AuditSvc
}

func registerAuditRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvc) {
	h := &auditHandler{auditService: auditService}
	audit := rg.Group("/audit")
	{
		audit.GET("", h.overview)
		audit.POST("/scan", h.scan)
		audit.POST("/reset", h.reset)
		audit.GET("/export", h.exportReport)
	}
}

// overview godoc
// @Summary Audit overview
// @Description Missing, verified and open commissions of a warehouse with progress in percent
// @Tags audit
// @Produce  json
// @Param   warehouseID query string false "Warehouse"
// @Success 200 {object} dto.AuditReportResponse
// @Security BearerAuth
// @Router /audit [get]
func (h *auditHandler) overview(c *gin.Context) {
	var params dto.AuditParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	report, err := h.auditService.Overview(c.Request.Context(), params.WarehouseID)
	if err != nil {
		respondError(c, err, "Failed to load audit overview")
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditReportResponse(report))
}

// scan godoc
// @Summary Record an audit scan
// @Tags audit
// @Accept  json
// @Produce  json
// @Param   scan body dto.ScanRequest true "QR payload or commission id"
// @Success 200 {object} dto.CommissionResponse
// @Failure 404 {object} map[string]string "Commission not found"
// @Failure 409 {object} map[string]string "Commission is not part of the audit"
// @Security BearerAuth
// @Router /audit/scan [post]
func (h *auditHandler) scan(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	commission, err := h.auditService.RecordScan(c.Request.Context(), req.Payload, userID)
	if err != nil {
		respondError(c, err, "Failed to record scan")
		return
	}
	c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
}

// reset godoc
// @Summary Start a new audit round
// @Description Clears every scan mark of the warehouse. Nothing becomes Missing.
// @Tags audit
// @Produce  json
// @Param   warehouseID query string false "Warehouse"
// @Success 200 {object} dto.AuditResetResponse
// @Security BearerAuth
// @Router /audit/reset [post]
func (h *auditHandler) reset(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	n, err := h.auditService.ResetAudit(c.Request.Context(), c.Query("warehouseID"), userID)
	if err != nil {
		respondError(c, err, "Failed to reset audit")
		return
	}
	c.JSON(http.StatusOK, dto.AuditResetResponse{Reset: n})
}

// exportReport godoc
// @Summary Download the audit report
// @Tags audit
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   warehouseID query string false "Warehouse"
// @Success 200 {file} file
// @Security BearerAuth
// @Router /audit/export [get]
func (h *auditHandler) exportReport(c *gin.Context) {
	warehouseID := c.Query("warehouseID")
	// buffered so a failed export can still answer with a JSON error
	var buf bytes.Buffer
	if err := h.auditService.ExportReport(c.Request.Context(), warehouseID, &buf); err != nil {
		respondError(c, err, "Failed to export audit report")
		return
	}
	name := "audit.xlsx"
	if warehouseID != "" {
		name = fmt.Sprintf("audit-%s.xlsx", warehouseID)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}
