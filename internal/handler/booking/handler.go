package booking

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minatoh/spa-desk/internal/handler"
	"github.com/minatoh/spa-desk/internal/model"
	"github.com/minatoh/spa-desk/internal/service/queue"
)

type Handler struct {
	queue *queue.Service
}

func NewHandler(queueSvc *queue.Service) *Handler {
	return &Handler{queue: queueSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/bookings", h.Create)
}

// Create checks in a booked client. The scheduled time drives the lateness
// flag once it passes the configured threshold.
func (h *Handler) Create(c *gin.Context) {
	var req model.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}
	if req.ScheduledTime == nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "scheduled_time is required for bookings"})
		return
	}

	client, err := h.queue.CheckIn(c.Request.Context(), &req, time.Now())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	handler.RespondOK(c, http.StatusCreated, client)
}
