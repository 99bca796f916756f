package handlers

import (
	"io"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/commission_app/internal/core/ports/services"
	"github.com/SscSPs/commission_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const changeFeedHeartbeat = 25 * time.Second

// changesHandler streams committed changes as Server-Sent Events.
type changesHandler struct {
	changes   portssvc.ChangeSubscriber
	heartbeat time.Duration
}

func registerChangeRoutes(rg *gin.RouterGroup, changes portssvc.ChangeSubscriber) {
	h := &changesHandler{changes: changes, heartbeat: changeFeedHeartbeat}
	rg.GET("/changes", h.stream)
}

// stream godoc
// @Summary Change feed
// @Description Server-Sent Events, one "change" event per committed write. Clients re-fetch the commission on each event.
// @Tags changes
// @Produce  text/event-stream
// @Param   commissionID query string false "Only this commission"
// @Param   warehouseID query string false "Only this warehouse"
// @Success 200 {object} domain.ChangeEvent
// @Security BearerAuth
// @Router /changes [get]
func (h *changesHandler) stream(c *gin.Context) {
	if h.changes == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Change feed not available"})
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	warehouseID := c.Query("warehouseID")

	events, cancel := h.changes.Subscribe(c.Query("commissionID"))
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	logger.Info("Change feed subscribed")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case event, ok := <-events:
			if !ok {
				return false
			}
			if warehouseID != "" && event.WarehouseID != warehouseID {
				return true
			}
			c.SSEvent("change", event)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		}
	})
	logger.Info("Change feed closed")
}
