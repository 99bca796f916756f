package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/dto"
	"github.com/SscSPs/commission_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// trashHandler handles soft deletion and the trash.
type trashHandler struct {
	trashService portssvc.TrashSvc
}

func registerTrashRoutes(rg *gin.RouterGroup, trashService portssvc.TrashSvc) {
	h := &trashHandler{trashService: trashService}

	rg.DELETE("/commissions/:id", h.softDelete)
	rg.POST("/commissions/:id/restore", h.restore)

	trash := rg.Group("/trash")
	{
		trash.GET("", h.listTrash)
		trash.POST("/purge", h.purge)
	}
}

// softDelete godoc
// @Summary Move a commission to the trash
// @Tags trash
// @Param   id path string true "Commission ID"
// @Success 204
// @Failure 404 {object} map[string]string "Commission not found"
// @Security BearerAuth
// @Router /commissions/{id} [delete]
func (h *trashHandler) softDelete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.trashService.SoftDelete(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to delete commission")
		return
	}
	c.Status(http.StatusNoContent)
}

// restore godoc
// @Summary Restore a commission from the trash
// @Tags trash
// @Produce  json
// @Param   id path string true "Commission ID"
// @Success 200 {object} dto.CommissionResponse
// @Failure 404 {object} map[string]string "Not found or past the restore window"
// @Failure 409 {object} map[string]string "Commission is not in the trash"
// @Security BearerAuth
// @Router /commissions/{id}/restore [post]
func (h *trashHandler) restore(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	commission, err := h.trashService.Restore(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to restore commission")
		return
	}
	c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
}

// listTrash godoc
// @Summary List the trash
// @Tags trash
// @Produce  json
// @Success 200 {object} dto.ListCommissionsResponse
// @Security BearerAuth
// @Router /trash [get]
func (h *trashHandler) listTrash(c *gin.Context) {
	commissions, err := h.trashService.ListTrash(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list trash")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCommissionsResponse(commissions))
}

// purge godoc
// @Summary Purge expired commissions now
// @Tags trash
// @Produce  json
// @Success 200 {object} dto.PurgeResponse
// @Security BearerAuth
// @Router /trash/purge [post]
func (h *trashHandler) purge(c *gin.Context) {
	n, err := h.trashService.PurgeExpired(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to purge trash")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Trash purged on request", slog.Int64("purged", n))
	c.JSON(http.StatusOK, dto.PurgeResponse{Purged: n})
}
